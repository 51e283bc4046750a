package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/ir"
)

const widgetCRD = `
apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
metadata:
  name: widgets.apps.example.com
spec:
  group: apps.example.com
  names:
    kind: Widget
    plural: widgets
  scope: Namespaced
  versions:
    - name: v1
      served: true
      storage: true
      schema:
        openAPIV3Schema:
          type: object
          properties:
            spec:
              type: object
              required: ["replicas"]
              properties:
                replicas:
                  type: integer
                  minimum: 1
                mode:
                  type: string
                  enum: ["Fast", "Slow"]
    - name: v1beta1
      served: false
      storage: false
      schema:
        openAPIV3Schema:
          type: object
`

func TestCompileCRDProducesOneRecordPerServedVersion(t *testing.T) {
	defs, err := CompileCRD([]byte(widgetCRD))
	require.NoError(t, err)

	var found bool
	for _, def := range defs {
		if def.Name.Name == "Widget" && def.Name.Version == "v1" {
			found = true
			assert.Equal(t, "apps.example.com", def.Name.Namespace)
			require.Equal(t, ir.KindRecord, def.Type.Kind)
		}
		assert.NotEqual(t, "v1beta1", def.Name.Version, "unserved version must be skipped")
	}
	assert.True(t, found, "expected a Widget/v1 definition")
}

func TestCompileCRDIgnoresRequiredMarkingFieldsOptional(t *testing.T) {
	defs, err := CompileCRD([]byte(widgetCRD))
	require.NoError(t, err)

	widget, ok := findByName(defs, "Widget")
	require.True(t, ok, "expected a Widget definition")
	require.NotNil(t, widget.Type.Record)
	var spec *ir.Field
	for i := range widget.Type.Record.Fields {
		if widget.Type.Record.Fields[i].Name == "spec" {
			spec = &widget.Type.Record.Fields[i]
		}
	}
	require.NotNil(t, spec, "nested spec object should be embedded as a field of Widget")
	require.Equal(t, ir.KindRecord, spec.Type.Kind)
	for _, field := range spec.Type.Record.Fields {
		assert.True(t, field.Optional)
	}
}

func TestCompileCRDRejectsMissingKind(t *testing.T) {
	_, err := CompileCRD([]byte(`
apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
spec:
  group: apps.example.com
  versions: []
`))
	assert.Error(t, err)
}

func TestCompileCRDRejectsServedVersionWithoutSchema(t *testing.T) {
	_, err := CompileCRD([]byte(`
apiVersion: apiextensions.k8s.io/v1
kind: CustomResourceDefinition
spec:
  group: apps.example.com
  names:
    kind: Widget
  versions:
    - name: v1
      served: true
      storage: true
`))
	assert.Error(t, err)
}

func findByName(defs []ir.TypeDef, name string) (ir.TypeDef, bool) {
	for _, d := range defs {
		if d.Name.Name == name {
			return d, true
		}
	}
	return ir.TypeDef{}, false
}
