package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schemaforge/internal/adapters"
	"schemaforge/internal/emitter"
	"schemaforge/internal/fingerprint"
	"schemaforge/internal/manifest"
)

// newDriver wires a manifest.Driver the same way manifest.NewDriver
// does, except the typechecker is only attached when a binary path was
// given — its absence is a warning, never an error (spec.md §6).
func newDriver(outputDir, fingerprintDir, typecheckBinary string) manifest.Driver {
	d := manifest.Driver{
		Fetcher:      adapters.NewFetcherAdapter(),
		RefResolver:  adapters.NewGitRefAdapter(),
		ManifestFile: adapters.NewManifestFileAdapter(),
		Fingerprints: fingerprint.NewStore(fingerprintDir),
		Writer:       emitter.NewWriter(outputDir),
	}
	if strings.TrimSpace(typecheckBinary) != "" {
		d.Typecheck = adapters.NewTypecheckerAdapter(typecheckBinary)
	}
	return d
}

func bindOutputFlags(cmd *cobra.Command, output *string, fingerprintDir *string) {
	cmd.Flags().StringVar(output, "output", "out", "Output directory")
	cmd.Flags().StringVar(fingerprintDir, "fingerprint-dir", "", "Fingerprint store directory (defaults to <output>/.fingerprints)")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("fingerprint_dir", cmd.Flags().Lookup("fingerprint-dir"))
}

func defaultFingerprintDir(output, fingerprintDir string) string {
	if strings.TrimSpace(fingerprintDir) != "" {
		return fingerprintDir
	}
	return output + "/.fingerprints"
}
