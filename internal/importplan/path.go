package importplan

import "strings"

// GlobalNamespaceDir is the fixed directory name standing in for the
// global (unnamed) namespace.
const GlobalNamespaceDir = "_root"

// DirFor maps a namespace's dotted name to its directory.
func DirFor(namespace string) string {
	if namespace == "" {
		return GlobalNamespaceDir
	}
	return strings.ReplaceAll(namespace, ".", "/")
}

// InternalDeclPath returns the path of namespace's internal declaration
// file — the only file another namespace may import, since imports need
// full definitions, never the re-exporting façade.
func InternalDeclPath(namespace string) string {
	return DirFor(namespace) + "/internal/index"
}

// RelativeImportPath computes the relative path an importer in
// fromNamespace uses to reach toNamespace's internal declaration file,
// following relative path direction by source-vs-target directory depth.
func RelativeImportPath(fromNamespace, toNamespace string) string {
	fromDepth := strings.Count(DirFor(fromNamespace), "/") + 1
	return strings.Repeat("../", fromDepth) + InternalDeclPath(toNamespace)
}
