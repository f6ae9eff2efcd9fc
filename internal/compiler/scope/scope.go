package scope

import (
	"fmt"

	"github.com/EthanVletter/Compiler-Crew/internal/compiler/symbols"
)

// Scope maps declared names to their symbols. Lookup walks outward to the
// global scope; Define is strictly local.
type Scope struct {
	Symbols map[string]*symbols.Info
	Outer   *Scope
	Name    string
}

func NewScope(outer *Scope, name string) *Scope {
	return &Scope{
		Symbols: make(map[string]*symbols.Info),
		Outer:   outer,
		Name:    name,
	}
}

// Define adds a symbol to this scope level only. It returns an error if the
// name already exists at this level; shadowing an outer name is allowed.
func (s *Scope) Define(name string, info *symbols.Info) error {
	if _, exists := s.Symbols[name]; exists {
		return fmt.Errorf("'%s' already declared in scope '%s'", name, s.Name)
	}
	info.Name = name
	info.Scope = s.Name
	s.Symbols[name] = info
	return nil
}

// Lookup searches this scope and then each enclosing scope.
func (s *Scope) Lookup(name string) (*symbols.Info, bool) {
	for sc := s; sc != nil; sc = sc.Outer {
		if info, ok := sc.Symbols[name]; ok {
			return info, true
		}
	}
	return nil, false
}

// LookupCurrentScope checks only this scope level.
func (s *Scope) LookupCurrentScope(name string) (*symbols.Info, bool) {
	info, ok := s.Symbols[name]
	return info, ok
}
