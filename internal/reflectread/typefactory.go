package reflectread

import (
	"github.com/tsbindgen/tsbindgen/internal/graph"
	"github.com/tsbindgen/tsbindgen/internal/stableid"
)

// Factory is the memoizing type-reference factory: converting the same
// ReflectedTypeRef twice returns the identical *graph.TypeRef, and a type
// that names itself in its own signature (a recursive generic such as
// `class Node<T> : IEnumerable<Node<T>>`) observes a shared,
// self-consistent pointer rather than re-entering the conversion.
//
// Cycles are broken by caching a named reference's shell — Kind, Assembly,
// Namespace, SimpleName, Arity populated, TypeArguments still nil — before
// descending into its type arguments, so a self-reference resolves to the
// same pointer rather than graph.RefPlaceholder. RefPlaceholder is left
// for Shape passes that rebuild a signature subtree from scratch and need an explicit, walkable cycle marker; Load's factory never
// constructs one.
type Factory struct {
	named map[string]*graph.TypeRef
}

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{named: make(map[string]*graph.TypeRef)}
}

// Convert turns a ReflectedTypeRef into a graph.TypeRef.
func (f *Factory) Convert(r *ReflectedTypeRef) *graph.TypeRef {
	if r == nil {
		return nil
	}
	switch r.Kind {
	case ReflectedRefNamed:
		return f.convertNamed(r)
	case ReflectedRefGenericParam:
		return &graph.TypeRef{Kind: graph.RefGenericParam, ParamName: r.ParamName}
	case ReflectedRefArray:
		return &graph.TypeRef{Kind: graph.RefArray, Element: f.Convert(r.Element), Rank: maxRank(r.Rank)}
	case ReflectedRefPointer:
		return &graph.TypeRef{Kind: graph.RefPointer, Pointee: f.Convert(r.Pointee), Depth: maxRank(r.Depth)}
	case ReflectedRefByReference:
		return &graph.TypeRef{Kind: graph.RefByReference, Referent: f.Convert(r.Referent)}
	default:
		return nil
	}
}

func maxRank(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (f *Factory) convertNamed(r *ReflectedTypeRef) *graph.TypeRef {
	clrFullName := qualifiedName(r.Namespace, stableid.BacktickArity(r.SimpleName, r.Arity))
	key := stableid.Type(r.Assembly, clrFullName)

	if cached, ok := f.named[key]; ok {
		return cached
	}

	ref := &graph.TypeRef{
		Kind:       graph.RefNamed,
		Assembly:   r.Assembly,
		Namespace:  r.Namespace,
		SimpleName: r.SimpleName,
		Arity:      r.Arity,
	}
	if r.IsInterface {
		ref.InterfaceStableID = key
	}
	f.named[key] = ref

	args := make([]*graph.TypeRef, 0, len(r.TypeArguments))
	for i := range r.TypeArguments {
		args = append(args, f.Convert(&r.TypeArguments[i]))
	}
	ref.TypeArguments = args

	return ref
}

func qualifiedName(namespace, simpleName string) string {
	if namespace == "" {
		return simpleName
	}
	return namespace + "." + simpleName
}
