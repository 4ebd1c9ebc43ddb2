package rename

// keywords are the target language's reserved words — always invalid as
// identifiers. strictKeywords are reserved only in strict/module mode.
// futureReserved are not currently reserved but are reserved for future
// use and are sanitised defensively so generated code doesn't break when
// the target runtime adopts them.
//
// Modelled on TypeScript's keyword table, the target language this system
// emits declarations for.
var keywords = map[string]struct{}{
	"break": {}, "case": {}, "catch": {}, "class": {}, "const": {},
	"continue": {}, "debugger": {}, "default": {}, "delete": {}, "do": {},
	"else": {}, "enum": {}, "export": {}, "extends": {}, "false": {},
	"finally": {}, "for": {}, "function": {}, "if": {}, "import": {},
	"in": {}, "instanceof": {}, "new": {}, "null": {}, "return": {},
	"super": {}, "switch": {}, "this": {}, "throw": {}, "true": {},
	"try": {}, "typeof": {}, "var": {}, "void": {}, "while": {}, "with": {},
}

var strictKeywords = map[string]struct{}{
	"as": {}, "implements": {}, "interface": {}, "let": {}, "package": {},
	"private": {}, "protected": {}, "public": {}, "static": {}, "yield": {},
	"any": {}, "boolean": {}, "declare": {}, "module": {}, "namespace": {},
	"readonly": {}, "number": {}, "object": {}, "string": {}, "symbol": {},
	"type": {}, "undefined": {}, "from": {}, "global": {}, "of": {},
}

var futureReserved = map[string]struct{}{
	"abstract": {}, "async": {}, "await": {}, "get": {}, "set": {},
}

// IsReservedWord reports whether name is reserved in any of the target
// language's keyword classes and therefore must be sanitised.
func IsReservedWord(name string) bool {
	if _, ok := keywords[name]; ok {
		return true
	}
	if _, ok := strictKeywords[name]; ok {
		return true
	}
	if _, ok := futureReserved[name]; ok {
		return true
	}
	return false
}
