package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schemaforge/internal/adapters"
	"schemaforge/internal/manifest"
)

type vendorOptions struct {
	Manifest      string
	VendorDir     string
	AllowUnpinned bool
}

func newVendorCommand() *cobra.Command {
	opts := vendorOptions{}
	cmd := &cobra.Command{
		Use:   "vendor",
		Short: "Materialize every manifest source's pinned bytes locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runVendor(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Manifest TOML path")
	cmd.Flags().StringVar(&opts.VendorDir, "vendor-dir", "vendor", "Directory to materialize pinned sources into")
	cmd.Flags().BoolVar(&opts.AllowUnpinned, "allow-unpinned", false, "Allow unpinned refs (main/master/HEAD)")

	_ = viper.BindPFlag("manifest", cmd.Flags().Lookup("manifest"))
	_ = viper.BindPFlag("vendor_dir", cmd.Flags().Lookup("vendor-dir"))
	_ = viper.BindPFlag("allow_unpinned", cmd.Flags().Lookup("allow-unpinned"))

	return cmd
}

func runVendor(ctx context.Context, cmd *cobra.Command, opts vendorOptions) error {
	d := manifest.Driver{
		Fetcher:      adapters.NewFetcherAdapter(),
		RefResolver:  adapters.NewGitRefAdapter(),
		ManifestFile: adapters.NewManifestFileAdapter(),
	}
	result, err := d.Vendor(ctx, manifest.VendorRequest{
		ManifestPath:  resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		VendorDir:     resolveString(cmd, opts.VendorDir, "vendor_dir", "vendor-dir"),
		AllowUnpinned: resolveBool(cmd, opts.AllowUnpinned, "allow_unpinned", "allow-unpinned"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("vendored %d source file(s)\n", result.FilesWritten)
	return nil
}
