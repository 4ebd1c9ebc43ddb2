package emit

// RenderFacade renders a namespace's outer façade file: the single
// re-export surface consumers import, keeping `internal/index` as the
// only file another namespace reaches into directly.
func RenderFacade() string {
	w := &indentWriter{}
	w.line(`export * from "./internal/index";`)
	return w.String()
}
