package resolver

import "path"

// RelativePath computes the purely-relative import path from one
// module file to another, per spec.md §4.3's Path computation rule:
// find the common-ancestor depth, emit that many parent-directory
// components, then descend to the target. Both from and to are
// slash-separated paths rooted at the package root (e.g.
// "apps/v1/Deployment.ncl").
func RelativePath(from, to string) string {
	fromDir := path.Dir(from)
	if fromDir == "." {
		fromDir = ""
	}
	fromParts := splitNonEmpty(fromDir)
	toParts := splitNonEmpty(path.Dir(to))

	common := 0
	for common < len(fromParts) && common < len(toParts) && fromParts[common] == toParts[common] {
		common++
	}

	var out string
	ups := len(fromParts) - common
	if ups == 0 {
		out = "./"
	} else {
		for i := 0; i < ups; i++ {
			out += "../"
		}
	}
	for i := common; i < len(toParts); i++ {
		out += toParts[i] + "/"
	}
	out += path.Base(to)
	return out
}

func splitNonEmpty(p string) []string {
	var out []string
	for _, part := range splitSlash(p) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitSlash(p string) []string {
	var out []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			out = append(out, p[start:i])
			start = i + 1
		}
	}
	out = append(out, p[start:])
	return out
}
