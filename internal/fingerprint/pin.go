package fingerprint

import (
	"fmt"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
)

// unpinnedRefs are the floating refs spec.md §4.6's URL-pinning rule
// rejects outright: a manifest source must name a concrete tag or
// commit, not a moving branch head.
var unpinnedRefs = map[string]struct{}{
	"main": {}, "master": {}, "head": {}, "HEAD": {},
}

// RequirePinned enforces the URL-pinning rule: ref must not be one of
// the known floating refs, unless allowUnpinned explicitly opts out
// (spec.md §4.6's "unless explicit unpinned mode").
func RequirePinned(ref string, allowUnpinned bool) error {
	if allowUnpinned {
		return nil
	}
	if _, ok := unpinnedRefs[strings.ToLower(strings.TrimSpace(ref))]; ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unpinned ref %q is not allowed; pin to a tag or commit", ref))
	}
	return nil
}

// NewerPinAvailable is a non-fatal advisory check (spec.md §4.6 never
// auto-upgrades a pin): it compares the ref recorded in a cached
// fingerprint against the manifest's current pin, when both happen to
// look like dotted/Debian-style version strings, and reports whether
// the manifest now points at something newer. Ungrounded-looking refs
// (arbitrary git SHAs) simply report no advisory rather than erroring.
func NewerPinAvailable(cachedRef, currentRef string) (bool, error) {
	cached, err := debversion.NewVersion(cachedRef)
	if err != nil {
		return false, nil
	}
	current, err := debversion.NewVersion(currentRef)
	if err != nil {
		return false, nil
	}
	return current.GreaterThan(cached), nil
}
