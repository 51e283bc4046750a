package ir

import "sort"

// TopologicalWalk orders a set of top-level TypeDefs for emission:
// types with no outstanding forward references come first. Mutually
// recursive records form cycles, which spec.md §4.1/§9 says are
// "permitted... and broken by name" rather than treated as an error —
// so cycles collapse into a single strongly-connected component and the
// SCCs themselves are returned in dependency order. Within an SCC,
// members are ordered by QualifiedName for determinism (spec.md §4.5
// P6).
func TopologicalWalk(defs []TypeDef) [][]QualifiedName {
	index := map[QualifiedName]int{}
	byName := map[QualifiedName]Type{}
	for i, d := range defs {
		index[d.Name] = i
		byName[d.Name] = d.Type
	}

	w := &tarjan{
		index:   index,
		byName:  byName,
		lowlink: map[QualifiedName]int{},
		onStack: map[QualifiedName]bool{},
		visited: map[QualifiedName]int{},
	}

	names := make([]QualifiedName, 0, len(defs))
	for _, d := range defs {
		names = append(names, d.Name)
	}
	sort.Slice(names, func(i, j int) bool { return lessQualifiedName(names[i], names[j]) })

	for _, n := range names {
		if _, ok := w.visited[n]; !ok {
			w.strongConnect(n)
		}
	}

	// Tarjan emits an SCC only after every SCC it references, so
	// dependencies already precede dependents, matching emission order.
	for _, scc := range w.sccs {
		sort.Slice(scc, func(i, j int) bool { return lessQualifiedName(scc[i], scc[j]) })
	}
	return w.sccs
}

func lessQualifiedName(a, b QualifiedName) bool {
	if a.Namespace != b.Namespace {
		return a.Namespace < b.Namespace
	}
	if a.Version != b.Version {
		return a.Version < b.Version
	}
	return a.Name < b.Name
}

type tarjan struct {
	index   map[QualifiedName]int
	byName  map[QualifiedName]Type
	counter int
	visited map[QualifiedName]int
	lowlink map[QualifiedName]int
	onStack map[QualifiedName]bool
	stack   []QualifiedName
	sccs    [][]QualifiedName
}

func (w *tarjan) strongConnect(v QualifiedName) {
	w.visited[v] = w.counter
	w.lowlink[v] = w.counter
	w.counter++
	w.stack = append(w.stack, v)
	w.onStack[v] = true

	refs := FreeReferences(w.byName[v])
	sortedRefs := make([]QualifiedName, 0, len(refs))
	for r := range refs {
		if _, ok := w.index[r]; ok {
			sortedRefs = append(sortedRefs, r)
		}
	}
	sort.Slice(sortedRefs, func(i, j int) bool { return lessQualifiedName(sortedRefs[i], sortedRefs[j]) })

	for _, next := range sortedRefs {
		if _, ok := w.visited[next]; !ok {
			w.strongConnect(next)
			if w.lowlink[next] < w.lowlink[v] {
				w.lowlink[v] = w.lowlink[next]
			}
		} else if w.onStack[next] {
			if w.visited[next] < w.lowlink[v] {
				w.lowlink[v] = w.visited[next]
			}
		}
	}

	if w.lowlink[v] == w.visited[v] {
		var scc []QualifiedName
		for {
			n := len(w.stack) - 1
			top := w.stack[n]
			w.stack = w.stack[:n]
			w.onStack[top] = false
			scc = append(scc, top)
			if top == v {
				break
			}
		}
		w.sccs = append(w.sccs, scc)
	}
}
