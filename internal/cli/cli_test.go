package cli

import (
	"testing"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"import", "generate-from-manifest", "vendor", "validate"}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestImportCommandFlags(t *testing.T) {
	cmd := newImportCommand()
	flags := []string{
		"source", "package-id", "namespace", "version", "type-name",
		"allow-unpinned", "skip-typecheck", "typecheck-binary",
		"output", "fingerprint-dir",
	}
	for _, name := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestGenerateFromManifestCommandFlags(t *testing.T) {
	cmd := newGenerateFromManifestCommand()
	flags := []string{
		"manifest", "allow-unpinned", "force-rebuild",
		"skip-typecheck", "typecheck-binary", "output", "fingerprint-dir",
	}
	for _, name := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestVendorCommandFlags(t *testing.T) {
	cmd := newVendorCommand()
	assert.NotNil(t, cmd.Flags().Lookup("manifest"))
	assert.NotNil(t, cmd.Flags().Lookup("vendor-dir"))
	assert.NotNil(t, cmd.Flags().Lookup("allow-unpinned"))
}

func TestValidateCommandFlags(t *testing.T) {
	cmd := newValidateCommand()
	assert.NotNil(t, cmd.Flags().Lookup("path"))
	assert.NotNil(t, cmd.Flags().Lookup("typecheck-binary"))
}

// ---------- Helper function tests ----------

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{name: "nil cmd with value returns value", cmd: nil, value: "explicit", expected: "explicit"},
		{name: "nil cmd empty value returns empty", cmd: nil, value: "", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		values   []string
		expected []string
	}{
		{name: "nil cmd with values returns values", cmd: nil, values: []string{"a", "b"}, expected: []string{"a", "b"}},
		{name: "nil cmd empty returns nil", cmd: nil, values: nil, expected: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveStrings(tt.cmd, tt.values, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveBool(t *testing.T) {
	assert.True(t, resolveBool(nil, true, "test_key", "test-flag"))
	assert.False(t, resolveBool(nil, false, "test_key", "test-flag"))
}

func TestResolveInt(t *testing.T) {
	assert.Equal(t, 42, resolveInt(nil, 42, "test_key", "test-flag"))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")
}

func TestFlagChangedAfterSet(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "invalid argument",
			err:      errbuilder.New().WithCode(errbuilder.CodeInvalidArgument).WithMsg("bad input"),
			expected: 1,
		},
		{
			name:     "not found",
			err:      errbuilder.New().WithCode(errbuilder.CodeNotFound).WithMsg("missing type"),
			expected: 1,
		},
		{
			name:     "failed precondition",
			err:      errbuilder.New().WithCode(errbuilder.CodeFailedPrecondition).WithMsg("conflict"),
			expected: 1,
		},
		{
			name:     "internal error",
			err:      errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("boom"),
			expected: 2,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "errbuilder with msg",
			err:      errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "plain error",
			err:      assert.AnError,
			expected: assert.AnError.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
