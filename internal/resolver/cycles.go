package resolver

// DetectCycles runs a non-fatal post-pass over the import graph of a
// fully-resolved package (module path -> the file paths its imports
// point at) looking for cycles. Per spec.md §4.3, a cyclic import is
// reported but is not itself a hard failure: mutually-recursive
// modules are legal so long as each binding is declared before use, so
// the caller decides whether to escalate the returned errors.
func DetectCycles(graph map[string][]string) []error {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, len(graph))
	var errs []error

	var paths []string
	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		paths = append(paths, node)
		for _, next := range graph[node] {
			switch color[next] {
			case gray:
				start := 0
				for i, p := range paths {
					if p == next {
						start = i
						break
					}
				}
				cycle := append([]string(nil), paths[start:]...)
				cycle = append(cycle, next)
				errs = append(errs, NewCyclicImportError(cycle))
			case white:
				if visit(next) {
					return true
				}
			}
		}
		paths = paths[:len(paths)-1]
		color[node] = black
		return false
	}

	names := make([]string, 0, len(graph))
	for node := range graph {
		names = append(names, node)
	}
	sortStrings(names)

	for _, node := range names {
		if color[node] == white {
			visit(node)
		}
	}
	return errs
}

func sortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
