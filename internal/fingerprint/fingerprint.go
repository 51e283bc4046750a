// Package fingerprint computes and persists the 256-bit digests that
// drive the incremental build engine of spec.md §4.6: a source is
// skipped when its digest matches the stored one and the output tree
// is intact. Digest construction follows a `buildSnapshotID`-style
// idiom: concatenate fields with newline separators into a
// strings.Builder, sha256 the result, hex-encode.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Input is everything spec.md §3/§4.6 says the digest must cover:
// normalized source bytes, the resolved source-ref (e.g. a git commit
// or tag), the manifest entry's options, and the compiler version.
type Input struct {
	SourceBytes     []byte
	SourceRef       string
	ManifestOptions string
	CompilerVersion string
}

// Compute hashes an Input into its hex-encoded digest, exactly as
// `buildSnapshotID` folds repository/channel/prefix/lock fields into
// one newline-delimited buffer before hashing.
func Compute(in Input) string {
	var b strings.Builder
	b.Write(in.SourceBytes)
	b.WriteString("\n")
	b.WriteString(in.SourceRef)
	b.WriteString("\n")
	b.WriteString(in.ManifestOptions)
	b.WriteString("\n")
	b.WriteString(in.CompilerVersion)
	b.WriteString("\n")
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Record is one fingerprint side-file entry: the digest plus enough
// provenance to explain a cache miss in logs/diagnostics.
type Record struct {
	Package         string `json:"package"`
	Source          string `json:"source"`
	Digest          string `json:"digest"`
	SourceRef       string `json:"source_ref"`
	CompilerVersion string `json:"compiler_version"`
}

// Matches reports whether recomputing the digest for in against r
// would hit the cache (spec.md §4.6: "fingerprint matches and the
// output tree is intact" — Matches covers only the digest half of that
// test; callers are responsible for checking the output tree).
func (r Record) Matches(in Input) bool {
	return r.Digest == Compute(in)
}

// QuoteOptions renders a manifest entry's per-source overrides into a
// single deterministic string suitable for Input.ManifestOptions:
// sorted key=value pairs, one per line. Kept here (not in the manifest
// package) since it exists purely to feed Compute.
func QuoteOptions(options map[string]string) string {
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sortStrings(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(strconv.Quote(options[k]))
		b.WriteString("\n")
	}
	return b.String()
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
