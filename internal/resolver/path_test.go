package resolver

import "testing"

func TestRelativePathSameDirectory(t *testing.T) {
	got := RelativePath("apps/v1/Deployment.ncl", "apps/v1/PodSpec.ncl")
	want := "./PodSpec.ncl"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRelativePathSiblingDirectory(t *testing.T) {
	got := RelativePath("apps/v1/index.ncl", "apps/v1beta1/DeploymentSpec.ncl")
	want := "../v1beta1/DeploymentSpec.ncl"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRelativePathRootModule(t *testing.T) {
	got := RelativePath("index.ncl", "apps/v1/Deployment.ncl")
	want := "./apps/v1/Deployment.ncl"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
