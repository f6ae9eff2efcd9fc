package symbols

type Kind string

const (
	KindVariable  Kind = "variable"
	KindProcedure Kind = "procedure"
	KindFunction  Kind = "function"
)

// Declared variables are always numeric; text exists only as string
// literals handed straight to print.
const (
	TypeNumber = "number"
	TypeText   = "text"
)

// Info describes one declared name.
type Info struct {
	Name  string
	Kind  Kind
	Type  string // number for variables, "" for routines
	Scope string // name of the declaring scope (global, main, or routine name)

	// Ordinal is the program-wide declaration index. The generator relies
	// on it for stable iteration, never on map order.
	Ordinal int

	// Routine info
	ParamNames []string
}

// TargetName is the variable name used in emitted code. Globals and main
// locals keep their source name; routine locals and parameters are
// prefixed with the routine name so they cannot collide across scopes.
// Source identifiers never contain '_', so mangled names are safe.
func (s *Info) TargetName() string {
	if s.Scope == "global" || s.Scope == "main" {
		return s.Name
	}
	return s.Scope + "_" + s.Name
}
