// Package policies holds the target-language policy tables the
// front-ends and the emitter both consult, so escaping decisions can
// never skew between definition and use sites (spec.md §3 invariant
// (e), §9 "Reserved-identifier policy").
package policies

import "strings"

// reservedWords are identifiers the target configuration language
// reserves; a field or binding using one of these must be escaped.
var reservedWords = map[string]struct{}{
	"let": {}, "in": {}, "if": {}, "then": {}, "else": {},
	"fun": {}, "match": {}, "forall": {}, "import": {},
	"null": {}, "true": {}, "false": {},
	"Array": {}, "Bool": {}, "Dyn": {}, "Number": {}, "String": {},
}

// disallowedLeadPrefixes mark field/binding names that must be escaped
// regardless of whether they also collide with a reserved word, e.g.
// JSON-Schema/CRD field names like "$ref" or "$schema".
var disallowedLeadPrefixes = []string{"$", "@"}

// IsReserved reports whether name needs escaping before it can be used
// as a record field name or an import binding in the target language.
func IsReserved(name string) bool {
	if _, ok := reservedWords[name]; ok {
		return true
	}
	for _, prefix := range disallowedLeadPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Escape returns the quoted form a reserved or disallowed-prefix name
// must use at both declaration and use sites (spec.md §4.5, P8). Names
// that do not require escaping are returned unchanged.
func Escape(name string) string {
	if !IsReserved(name) {
		return name
	}
	return `"` + name + `"`
}
