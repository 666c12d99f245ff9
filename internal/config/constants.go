package config

// DefFileExt is the recognized dispatch definition file extension.
const DefFileExt = ".yaml"

// DefFileExtensions are all recognized definition file extensions.
var DefFileExtensions = []string{".yaml", ".yml"}

// FastPathDefs is the number of leading definitions the assembler may
// specialize into the fast path. Only definitions with arity <= FastPathArity
// and no rest parameter qualify.
//
// Six matches the historical behavior of the dispatch compiler; it is a
// package variable rather than a constant so embedders can tune it before
// building engines.
var FastPathDefs = 6

// FastPathArity is the maximum arity a definition may have to qualify for
// fast-path specialization.
const FastPathArity = 2

// Reserved type names. Both are appended conceptually at the end of the
// registry order: Object sorts after every registered type, Any after Object.
const (
	ObjectTypeName  = "Object"
	AnyTypeName     = "any"
	UnknownTypeName = "unknown"
)

// TraceDBName is the default basename for the CLI dispatch trace store.
const TraceDBName = "typed-trace.db"
