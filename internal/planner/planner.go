// Package planner implements the package planner of spec.md §4.4: it
// assigns every top-level IR type to a file path of the form
// <group>/<version>/<simple-name>.<ext>, synthesizes the root/group/
// version index modules that re-export their children, and assembles
// the package manifest of {package_id, version} dependencies. Building
// the tree is one composed structure assembled from several inputs,
// checking for duplicate names along the way, and a policy table
// matches each input to the directory/group that owns it.
package planner

import (
	"fmt"
	"sort"
	"strings"

	errbuilder "github.com/ZanzyTHEbar/errbuilder-go"

	"schemaforge/internal/ir"
)

// GroupOf derives a type's group directory component from its
// namespace: the last non-empty dot-separated segment, lower-cased. A
// core type with no group-bearing namespace (empty, or every segment
// empty) has an empty group and is placed directly under its version
// directory, matching how unqualified Kubernetes "core" types carry no
// API group.
func GroupOf(namespace string) string {
	segments := strings.Split(namespace, ".")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return strings.ToLower(segments[i])
		}
	}
	return ""
}

// FilePath computes the <group>/<version>/<simple-name>.<ext> path for
// name, per spec.md §4.4.
func FilePath(name ir.QualifiedName, ext string) string {
	group := GroupOf(name.Namespace)
	version := strings.ToLower(name.Version)
	if group == "" {
		return fmt.Sprintf("%s/%s.%s", version, name.Name, ext)
	}
	return fmt.Sprintf("%s/%s/%s.%s", group, version, name.Name, ext)
}

// dirPath is the (group, version) directory a FilePath lands in, kept
// separately from the string path so index synthesis doesn't need to
// re-parse it.
type dirPath struct {
	group   string
	version string
}

func (d dirPath) path() string {
	if d.group == "" {
		return d.version
	}
	return d.group + "/" + d.version
}

// Assign places each TypeDef into its file's Module, enforcing the
// planner invariant of spec.md §4.4: distinct types of identical
// QualifiedName never land in the same file, and within one version
// directory every simple-name is unique.
func Assign(defs []ir.TypeDef, ext string) (map[string]*ir.Module, error) {
	modules := map[string]*ir.Module{}
	dirOf := map[string]dirPath{}
	seenNames := map[string]ir.QualifiedName{}

	for _, def := range defs {
		d := dirPath{group: GroupOf(def.Name.Namespace), version: strings.ToLower(def.Name.Version)}
		path := FilePath(def.Name, ext)
		nameKey := d.path() + "/" + def.Name.Name

		if existing, ok := seenNames[nameKey]; ok && existing != def.Name {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("simple-name collision in %s: %s and %s both map to %q", d.path(), existing, def.Name, def.Name.Name))
		}
		seenNames[nameKey] = def.Name

		module, ok := modules[path]
		if !ok {
			module = &ir.Module{Path: path}
			modules[path] = module
			dirOf[path] = d
		}
		if _, found := module.FindType(def.Name.Name); found {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate type assigned to %s: %s", path, def.Name))
		}
		module.Types = append(module.Types, def)
	}
	return modules, nil
}

// BuildIndexes synthesizes the per-version, per-group, and root index
// modules of spec.md §4.4 over an already-Assign-ed module set. Each
// index module carries no Types of its own: it re-exports its children
// as Imports, which the emitter renders as a sequence of
// `let X = import "./X.<ext>" in` bindings followed by a record
// gathering them under that binding.
func BuildIndexes(modules map[string]*ir.Module, ext string) {
	type versionEntry struct {
		dir   dirPath
		files []string
	}
	versions := map[string]*versionEntry{}
	for path, module := range modules {
		if len(module.Types) == 0 {
			continue
		}
		d := dirPath{group: GroupOf(module.Types[0].Name.Namespace), version: strings.ToLower(module.Types[0].Name.Version)}
		key := d.path()
		entry, ok := versions[key]
		if !ok {
			entry = &versionEntry{dir: d}
			versions[key] = entry
		}
		entry.files = append(entry.files, path)
	}

	groups := map[string][]string{}
	ungrouped := map[string]string{}
	for key, entry := range versions {
		sort.Strings(entry.files)
		versionIndexPath := key + "/mod." + ext
		modules[versionIndexPath] = versionIndexModule(versionIndexPath, entry.files, modules)
		if entry.dir.group == "" {
			ungrouped[entry.dir.version] = versionIndexPath
			continue
		}
		groups[entry.dir.group] = append(groups[entry.dir.group], versionIndexPath)
	}

	groupIndexPaths := map[string]string{}
	for group, versionIndexPaths := range groups {
		sort.Strings(versionIndexPaths)
		groupIndexPath := group + "/mod." + ext
		children := make([]indexChild, len(versionIndexPaths))
		for i, p := range versionIndexPaths {
			children[i] = indexChild{binding: versionOf(p), path: p}
		}
		modules[groupIndexPath] = buildIndexModule(groupIndexPath, children)
		groupIndexPaths[group] = groupIndexPath
	}

	var rootChildren []indexChild
	for group, path := range groupIndexPaths {
		rootChildren = append(rootChildren, indexChild{binding: group, path: path})
	}
	for version, path := range ungrouped {
		rootChildren = append(rootChildren, indexChild{binding: version, path: path})
	}
	sort.Slice(rootChildren, func(i, j int) bool { return rootChildren[i].binding < rootChildren[j].binding })

	rootPath := "mod." + ext
	modules[rootPath] = buildIndexModule(rootPath, rootChildren)
}

func versionOf(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return path
	}
	return parts[len(parts)-2]
}

type indexChild struct {
	binding string
	path    string
}

func versionIndexModule(path string, childFiles []string, modules map[string]*ir.Module) *ir.Module {
	children := make([]indexChild, 0, len(childFiles))
	for _, childPath := range childFiles {
		child := modules[childPath]
		if len(child.Types) == 0 {
			continue
		}
		children = append(children, indexChild{binding: child.Types[0].Name.Name, path: childPath})
	}
	return buildIndexModule(path, children)
}

func buildIndexModule(path string, children []indexChild) *ir.Module {
	module := &ir.Module{Path: path}
	for _, c := range children {
		module.Imports = append(module.Imports, ir.Import{
			Binding:      c.binding,
			RelativePath: "./" + strings.TrimPrefix(c.path, dirOfPath(path)+"/"),
			Source:       ir.QualifiedName{Name: c.binding},
		})
	}
	return module
}

func dirOfPath(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// BuildManifest assembles a deduplicated, sorted PackageManifest from
// the cross-package dependencies discovered while resolving a
// package's modules.
func BuildManifest(deps []ir.PackageDependency) ir.PackageManifest {
	seen := map[ir.PackageDependency]struct{}{}
	var unique []ir.PackageDependency
	for _, dep := range deps {
		if _, ok := seen[dep]; ok {
			continue
		}
		seen[dep] = struct{}{}
		unique = append(unique, dep)
	}
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].PackageID != unique[j].PackageID {
			return unique[i].PackageID < unique[j].PackageID
		}
		return unique[i].Version < unique[j].Version
	})
	return ir.PackageManifest{Dependencies: unique}
}
