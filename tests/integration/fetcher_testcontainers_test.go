//go:build integration

package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"schemaforge/internal/adapters"
)

const crdFixture = `apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
metadata:
  name: widgets.example.com
spec:
  group: example.com
  versions:
    - name: v1
      schema:
        openAPIV3Schema:
          type: object
          properties:
            name:
              type: string
`

// TestFetcherAdapterFetchesOverHTTPFromContainer serves a CRD document
// from a real nginx container and asserts FetcherAdapter.Fetch
// retrieves it byte-for-byte, exercising the HTTP branch of Fetch that
// a local-path fixture can't reach.
func TestFetcherAdapterFetchesOverHTTPFromContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers integration test in short mode")
	}
	ctx := context.Background()

	docsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "widget.crd.yaml"), []byte(crdFixture), 0644))

	req := testcontainers.ContainerRequest{
		Image:        "nginx:alpine",
		ExposedPorts: []string{"80/tcp"},
		WaitingFor:   wait.ForListeningPort("80/tcp"),
		Files: []testcontainers.ContainerFile{
			{
				HostFilePath:      filepath.Join(docsDir, "widget.crd.yaml"),
				ContainerFilePath: "/usr/share/nginx/html/widget.crd.yaml",
				FileMode:          0o644,
			},
		},
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "80/tcp")
	require.NoError(t, err)

	fetcher := adapters.NewFetcherAdapter()
	data, err := fetcher.Fetch(ctx, "http://"+host+":"+port.Port()+"/widget.crd.yaml")
	require.NoError(t, err)
	require.Equal(t, crdFixture, string(data))
}
