package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schemaforge/internal/adapters"
)

type validateOptions struct {
	Path            string
	TypecheckBinary string
}

func newValidateCommand() *cobra.Command {
	opts := validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Typecheck every emitted module under a directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Path, "path", "out", "Output directory to validate")
	cmd.Flags().StringVar(&opts.TypecheckBinary, "typecheck-binary", "", "External typechecker binary")
	_ = viper.BindPFlag("path", cmd.Flags().Lookup("path"))
	_ = viper.BindPFlag("typecheck_binary", cmd.Flags().Lookup("typecheck-binary"))
	return cmd
}

// runValidate subprocesses the external typechecker over every emitted
// module file it can find under opts.Path. A missing binary is logged
// as a warning and treated as a no-op success, per spec.md §6: the
// typechecker is an optional external collaborator, not a hard
// dependency of the pipeline.
func runValidate(ctx context.Context, cmd *cobra.Command, opts validateOptions) error {
	binary := resolveString(cmd, opts.TypecheckBinary, "typecheck_binary", "typecheck-binary")
	if strings.TrimSpace(binary) == "" {
		log.Warn().Msg("no typechecker binary configured, skipping validation")
		return nil
	}
	if _, err := exec.LookPath(binary); err != nil {
		log.Warn().Str("binary", binary).Msg("typechecker binary not found, skipping validation")
		return nil
	}

	root := resolveString(cmd, opts.Path, "path", "path")
	paths, err := findModuleFiles(root)
	if err != nil {
		return err
	}

	checker := adapters.NewTypecheckerAdapter(binary)
	var failures []string
	for _, path := range paths {
		if err := checker.Check(ctx, path); err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", path, err))
		}
	}
	if len(failures) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("typecheck failed for %d file(s):\n%s", len(failures), strings.Join(failures, "\n")))
	}
	fmt.Printf("validated %d module(s)\n", len(paths))
	return nil
}

func findModuleFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(path, ".ncl") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan output directory").
			WithCause(err)
	}
	return paths, nil
}
