package emit

import (
	"fmt"

	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/importplan"
)

// RenderRuntimeStub renders a namespace's JS runtime companion: a thin
// factory per class-like type forwarding construction to the native
// interop bridge by stable id, since the declaration file emitted
// alongside it carries only compile-time types.
func RenderRuntimeStub(ns *graph.Namespace) string {
	w := &indentWriter{}
	w.line(`import { bridge } from "../../runtime/bridge.js";`)
	w.blank()
	for _, t := range importplan.OrderedTypes(ns) {
		if t.Kind != graph.KindClass && t.Kind != graph.KindStruct || t.EmitName == nil {
			continue
		}
		w.line(fmt.Sprintf("export const %s = bridge.classFor(%q);", *t.EmitName, t.StableID))
	}
	return w.String()
}
