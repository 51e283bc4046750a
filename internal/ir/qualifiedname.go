package ir

import "fmt"

// UnversionedSentinel is the version placed on a QualifiedName when the
// source schema carried no version string, per spec.md §4.2's
// versioning rule: this avoids collision with versioned APIs that
// happen to share a simple-name.
const UnversionedSentinel = "v0"

// QualifiedName is the (namespace-path, version, simple-name) triple
// that uniquely names a type across all loaded schemas. It is a plain
// comparable value so identity equality is just Go's `==`.
type QualifiedName struct {
	Namespace string
	Version   string
	Name      string
}

func (q QualifiedName) String() string {
	return fmt.Sprintf("%s/%s.%s", q.Namespace, q.Version, q.Name)
}

// IsZero reports whether q is the zero QualifiedName (no namespace, no
// name); front-ends use this to detect unset References before they
// reach the resolver.
func (q QualifiedName) IsZero() bool {
	return q == QualifiedName{}
}

// WithVersion returns a copy of q with Version replaced, applying the
// unversioned-sentinel rule when version is empty.
func (q QualifiedName) WithVersion(version string) QualifiedName {
	if version == "" {
		version = UnversionedSentinel
	}
	q.Version = version
	return q
}
