package adapters

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"

	"schemaforge/internal/ports"
)

// TypecheckerAdapter validates emitted output by subprocessing an
// external typechecker binary, per spec.md §2's "typecheck-by-
// subprocess validator" (explicitly out of scope for the core).
// Grounded on `internal/adapters/repo_snapshot_aptly.go`'s
// exec.CommandContext + CombinedOutput + wrapped-error idiom.
type TypecheckerAdapter struct {
	Binary string
	Args   []string
}

// NewTypecheckerAdapter returns a TypecheckerAdapter that runs binary
// with extraArgs before the path-to-check argument.
func NewTypecheckerAdapter(binary string, extraArgs ...string) TypecheckerAdapter {
	return TypecheckerAdapter{Binary: binary, Args: extraArgs}
}

func (a TypecheckerAdapter) Check(ctx context.Context, path string) error {
	if strings.TrimSpace(a.Binary) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("typechecker binary is empty")
	}
	args := append(append([]string(nil), a.Args...), path)
	cmd := exec.CommandContext(ctx, a.Binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("typecheck failed").
			WithCause(fmt.Errorf("%s: %w", strings.TrimSpace(string(output)), err))
	}
	return nil
}

var _ ports.Typechecker = TypecheckerAdapter{}
