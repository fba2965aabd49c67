// Package scope implements the evaluator's lexical scope chain: frames
// mapping names to overload lists of bindings, with support for
// `use`-imported class members.
package scope

import "github.com/vela-lang/vela/internal/value"

// Flag is a bit in a Binding's flag set.
type Flag int

const (
	Const Flag = 1 << iota
	Function
	Static
	NativeFunction
	Class
	Enum
	DefaultClass
	Alias
)

func (f Flag) Has(bit Flag) bool { return f&bit != 0 }

// Binding is one entry in a Scope's overload list for a name.
type Binding struct {
	Value value.Value
	Flags Flag
	Arity int // -1 for non-function bindings or vararg wildcards
}

// Scope is one frame of the lexical scope chain.
type Scope struct {
	parent   *Scope
	bindings map[string][]*Binding
	uses     []string
}

// New creates a root scope (the interpreter's global scope).
func New() *Scope {
	return &Scope{bindings: make(map[string][]*Binding)}
}

// Child creates a scope nested inside s.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, bindings: make(map[string][]*Binding)}
}

// Parent returns the enclosing scope, or nil at the root.
func (s *Scope) Parent() *Scope { return s.parent }

// Add appends binding to the overload list for name in the current frame.
func (s *Scope) Add(name string, b *Binding) {
	s.bindings[name] = append(s.bindings[name], b)
}

// AddUse records a `use` import of the named class into this scope.
func (s *Scope) AddUse(className string) {
	s.uses = append(s.uses, className)
}

// Uses returns the class names imported via `use` in this frame only.
func (s *Scope) Uses() []string { return s.uses }

// Find returns the first binding for name whose arity matches (any-arity
// wildcard when arity<0 or when the candidate itself is a wildcard, i.e.
// Arity==-1), walking parentward unless localOnly.
func (s *Scope) Find(name string, arity int, localOnly bool) (*Binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if list, ok := cur.bindings[name]; ok {
			var wildcard *Binding
			for _, b := range list {
				if arity < 0 || b.Arity < 0 || b.Arity == arity {
					if b.Arity < 0 {
						wildcard = b
						continue
					}
					return b, true
				}
			}
			if wildcard != nil {
				return wildcard, true
			}
		}
		if localOnly {
			break
		}
	}
	return nil, false
}

// FindAll returns every binding for name in this frame and, unless
// localOnly, its parent frames (used for overload resolution when a Name
// expression is called), plus — if withUse is true
// — a synthesized binding for each `use` import whose class exposes a
// member of that name. classMember is a callback resolving
// (className, name) -> *Binding when the importing class defines such a
// member.
func (s *Scope) FindAll(name string, localOnly bool, withUse bool, classMember func(className, name string) (*Binding, bool)) []*Binding {
	var out []*Binding
	for cur := s; cur != nil; cur = cur.parent {
		if list, ok := cur.bindings[name]; ok {
			out = append(out, list...)
		}
		if withUse && classMember != nil {
			for _, cls := range cur.uses {
				if b, ok := classMember(cls, name); ok {
					out = append(out, b)
				}
			}
		}
		if localOnly {
			break
		}
	}
	return out
}

// Set overwrites the value of an existing binding found by name (any
// arity), walking parentward. Returns false if no binding exists.
func (s *Scope) Set(name string, v value.Value) bool {
	for cur := s; cur != nil; cur = cur.parent {
		if list, ok := cur.bindings[name]; ok && len(list) > 0 {
			list[0].Value = v
			return true
		}
	}
	return false
}

// HasLocal reports whether name is bound (any arity) in the current frame
// only, used for VarVal's duplicate-name check.
func (s *Scope) HasLocal(name string) bool {
	list, ok := s.bindings[name]
	return ok && len(list) > 0
}

// LocalValues returns every binding value held directly in this frame (not
// parent frames), for the evaluator to release when the frame is popped.
func (s *Scope) LocalValues() []value.Value {
	var out []value.Value
	for _, list := range s.bindings {
		for _, b := range list {
			out = append(out, b.Value)
		}
	}
	return out
}
