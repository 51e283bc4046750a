package frontend

import "schemaforge/internal/ir"

// Document is one compiled schema source: the TypeDefs a front-end
// produced, plus the namespace/version they share. The manifest driver
// collects one Document per manifest source entry before handing the
// combined set to the resolver.
type Document struct {
	Namespace string
	Version   string
	Defs      []ir.TypeDef
}

// Merge combines Documents discovered across a manifest's sources into
// one flat TypeDef list the resolver/planner stage operates on,
// de-duplicating identical QualifiedNames (the same CRD version or
// shared OpenAPI component loaded by two manifest entries) while
// rejecting distinct definitions that collide on the same name, per
// spec.md §4.2's "recursive type discovery" fixpoint: this is the
// point where front-end output from every source reaches a fixed,
// final type universe before the resolver ever runs.
func Merge(docs []Document) ([]ir.TypeDef, error) {
	seen := map[ir.QualifiedName]ir.TypeDef{}
	var order []ir.QualifiedName
	for _, doc := range docs {
		for _, def := range doc.Defs {
			if existing, ok := seen[def.Name]; ok {
				if !ir.Equal(existing.Type, def.Type) {
					return nil, NewDuplicateDefinitionError(def.Name)
				}
				continue
			}
			seen[def.Name] = def
			order = append(order, def.Name)
		}
	}
	out := make([]ir.TypeDef, 0, len(order))
	for _, name := range order {
		out = append(out, seen[name])
	}
	return out, nil
}
