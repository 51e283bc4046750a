package policies

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeQuotesReservedWord(t *testing.T) {
	assert.Equal(t, `"let"`, Escape("let"))
}

func TestEscapeQuotesDollarPrefixedField(t *testing.T) {
	assert.Equal(t, `"$ref"`, Escape("$ref"))
}

func TestEscapeLeavesOrdinaryNameUnchanged(t *testing.T) {
	assert.Equal(t, "metadata", Escape("metadata"))
}

func TestIsReservedFalseForOrdinaryName(t *testing.T) {
	assert.False(t, IsReserved("spec"))
}
