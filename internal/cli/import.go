package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schemaforge/internal/manifest"
)

type importOptions struct {
	Source          string
	PackageID       string
	Namespace       string
	Version         string
	TypeName        string
	Output          string
	FingerprintDir  string
	AllowUnpinned   bool
	SkipTypecheck   bool
	TypecheckBinary string
}

func newImportCommand() *cobra.Command {
	opts := importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Compile a single CRD, OpenAPI, or JSON-Schema source into a package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "Source document path or URL")
	cmd.Flags().StringVar(&opts.PackageID, "package-id", "", "Package identifier for the emitted package")
	cmd.Flags().StringVar(&opts.Namespace, "namespace", "", "Namespace override (defaults to package-id with dots)")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Pinned source ref/version")
	cmd.Flags().StringVar(&opts.TypeName, "type-name", "", "Root type name (JSON-Schema documents only)")
	cmd.Flags().BoolVar(&opts.AllowUnpinned, "allow-unpinned", false, "Allow an unpinned ref (main/master/HEAD)")
	cmd.Flags().BoolVar(&opts.SkipTypecheck, "skip-typecheck", true, "Skip the external typechecker pass")
	cmd.Flags().StringVar(&opts.TypecheckBinary, "typecheck-binary", "", "External typechecker binary (absence is a warning, not an error)")
	bindOutputFlags(cmd, &opts.Output, &opts.FingerprintDir)

	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("package_id", cmd.Flags().Lookup("package-id"))
	_ = viper.BindPFlag("namespace", cmd.Flags().Lookup("namespace"))
	_ = viper.BindPFlag("version", cmd.Flags().Lookup("version"))
	_ = viper.BindPFlag("type_name", cmd.Flags().Lookup("type-name"))
	_ = viper.BindPFlag("allow_unpinned", cmd.Flags().Lookup("allow-unpinned"))
	_ = viper.BindPFlag("skip_typecheck", cmd.Flags().Lookup("skip-typecheck"))
	_ = viper.BindPFlag("typecheck_binary", cmd.Flags().Lookup("typecheck-binary"))

	return cmd
}

func runImport(ctx context.Context, cmd *cobra.Command, opts importOptions) error {
	output := resolveString(cmd, opts.Output, "output", "output")
	fingerprintDir := defaultFingerprintDir(output, resolveString(cmd, opts.FingerprintDir, "fingerprint_dir", "fingerprint-dir"))
	typecheckBinary := resolveString(cmd, opts.TypecheckBinary, "typecheck_binary", "typecheck-binary")

	d := newDriver(output, fingerprintDir, typecheckBinary)
	result, err := d.Import(ctx, manifest.ImportRequest{
		Source:        resolveString(cmd, opts.Source, "source", "source"),
		PackageID:     resolveString(cmd, opts.PackageID, "package_id", "package-id"),
		Namespace:     resolveString(cmd, opts.Namespace, "namespace", "namespace"),
		Version:       resolveString(cmd, opts.Version, "version", "version"),
		TypeName:      resolveString(cmd, opts.TypeName, "type_name", "type-name"),
		AllowUnpinned: resolveBool(cmd, opts.AllowUnpinned, "allow_unpinned", "allow-unpinned"),
		SkipTypecheck: resolveBool(cmd, opts.SkipTypecheck, "skip_typecheck", "skip-typecheck"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("imported: %s (%d modules)\n", result.PackageID, result.ModulesWritten)
	return nil
}
