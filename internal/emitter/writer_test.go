package emitter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/ir"
)

func TestWriteModuleCreatesNestedDirectories(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)
	module := &ir.Module{
		Path: "apps/v1/Deployment.ncl",
		Types: []ir.TypeDef{{
			Name: ir.QualifiedName{Namespace: "io.k8s.api.apps", Version: "v1", Name: "Deployment"},
			Type: ir.NewRecord(nil, false),
		}},
	}

	require.NoError(t, writer.WriteModule(module))

	content, err := os.ReadFile(filepath.Join(root, "apps", "v1", "Deployment.ncl"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "let Deployment = {} in")
}

func TestWritePackageAggregatesFailures(t *testing.T) {
	writer := NewWriter(t.TempDir())
	modules := map[string]*ir.Module{
		"bad.ncl": {
			Path: "bad.ncl",
			Types: []ir.TypeDef{{
				Name: ir.QualifiedName{Name: "Bad"},
				Type: ir.NewRecord([]ir.Field{
					{Name: "x", Type: ir.NewReference(ir.QualifiedName{Name: "Unresolved"})},
				}, false),
			}},
		},
	}
	err := writer.WritePackage(modules)
	require.Error(t, err)
}

func TestWriteModuleRejectsEmptyRoot(t *testing.T) {
	writer := NewWriter("")
	err := writer.WriteModule(&ir.Module{Path: "a.ncl"})
	require.Error(t, err)
}

func TestWriteManifestWritesDependencyFile(t *testing.T) {
	root := t.TempDir()
	writer := NewWriter(root)
	manifest := ir.PackageManifest{Dependencies: []ir.PackageDependency{
		{PackageID: "github:host/repo/pkgs/k8s_io", Version: "v1.17.2"},
	}}

	require.NoError(t, writer.WriteManifest(manifest))

	content, err := os.ReadFile(filepath.Join(root, PackageManifestFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), "github:host/repo/pkgs/k8s_io")
	assert.Contains(t, string(content), "v1.17.2")
}
