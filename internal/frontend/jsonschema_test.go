package frontend

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemaforge/internal/ir"
)

const widgetJSONSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "replicas": {"type": "integer", "minimum": 1},
    "mode": {"type": "string", "enum": ["Fast", "Slow"]}
  }
}`

func TestCompileJSONSchemaProducesOptionalFields(t *testing.T) {
	defs, err := CompileJSONSchema("example.com", "v1", "Widget", []byte(widgetJSONSchema))
	require.NoError(t, err)

	widget, ok := findByName(defs, "Widget")
	require.True(t, ok)
	require.Equal(t, ir.KindRecord, widget.Type.Kind)
	for _, field := range widget.Type.Record.Fields {
		assert.True(t, field.Optional)
	}
}

func TestCompileJSONSchemaAppliesVersionSentinelWhenUnset(t *testing.T) {
	defs, err := CompileJSONSchema("example.com", "", "Widget", []byte(widgetJSONSchema))
	require.NoError(t, err)

	widget, ok := findByName(defs, "Widget")
	require.True(t, ok)
	assert.Equal(t, ir.UnversionedSentinel, widget.Name.Version)
}

func TestCompileJSONSchemaRejectsInvalidDocument(t *testing.T) {
	_, err := CompileJSONSchema("example.com", "v1", "Widget", []byte(`{"type": `))
	assert.Error(t, err)
}

func TestBigRatToStringPtr(t *testing.T) {
	assert.Nil(t, bigRatToStringPtr(nil))
	r := big.NewRat(7, 2)
	got := bigRatToStringPtr(r)
	require.NotNil(t, got)
	assert.Equal(t, "7/2", *got)
}
