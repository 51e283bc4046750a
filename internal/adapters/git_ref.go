package adapters

import (
	"context"
	"fmt"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"schemaforge/internal/ports"
)

// GitRefAdapter resolves a manifest's pinned ref to a concrete commit
// without cloning: it lists a remote's advertised refs and matches by
// tag or branch name, falling back to treating ref as an already-
// concrete commit hash. Grounded on
// `internal/adapters/repo_snapshot_aptly.go`'s adapter-drives-an-
// external-VCS-tool shape, retargeted from shelling out to `aptly` to
// calling `go-git` directly.
type GitRefAdapter struct{}

// NewGitRefAdapter returns a GitRefAdapter.
func NewGitRefAdapter() GitRefAdapter {
	return GitRefAdapter{}
}

func (a GitRefAdapter) ResolveRef(ctx context.Context, repoURL, ref string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{Name: "origin", URLs: []string{repoURL}})
	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to list refs for %s", repoURL)).
			WithCause(err)
	}

	for _, candidate := range []plumbing.ReferenceName{
		plumbing.ReferenceName(plumbing.NewTagReferenceName(ref).String() + "^{}"),
		plumbing.NewTagReferenceName(ref),
		plumbing.NewBranchReferenceName(ref),
	} {
		for _, r := range refs {
			if r.Name() == candidate {
				return resolvedHash(r).String(), nil
			}
		}
	}
	if plumbing.IsHash(ref) {
		return ref, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(fmt.Sprintf("ref %q not found on %s", ref, repoURL))
}

// resolvedHash returns the hash a listed reference points at. For a
// lightweight tag or a branch that is the commit itself; for an
// annotated tag the remote advertises the peeled commit as a separate
// `refs/tags/<ref>^{}` entry, which ListContext includes and
// ResolveRef matches before the tag reference itself.
func resolvedHash(r *plumbing.Reference) plumbing.Hash {
	return r.Hash()
}

var _ ports.RefResolver = GitRefAdapter{}
