// Package symtab implements the parser-time symbol tables that decorate
// block and declaration nodes of the AST. These are compile-time
// bookkeeping only — they let the parser reject duplicate definitions and
// out-of-loop break/continue — and are distinct from the evaluator's
// runtime scope chain (package scope).
package symtab

import "fmt"

// Category classifies what a Symbol names.
type Category int

const (
	Variable Category = iota
	Function
	Method
	Argument
	NativeFunction
	Enum
	Class
	Struct
)

// Flag is a bit in a Symbol's flag set.
type Flag int

const (
	Const Flag = 1 << iota
	Static
	Native
	Ctor
	VarArg
)

func (f Flag) Has(bit Flag) bool { return f&bit != 0 }

// Symbol is one entry in a Table.
type Symbol struct {
	Name     string
	Category Category
	Flags    Flag
	Arity    int // -1 for non-callable symbols or vararg wildcards
}

// key returns the table's internal lookup key: "name" for non-overloadable
// categories, "name/arity" for Function/Method so that overloads by arity
// coexist in the same frame.
func key(name string, category Category, arity int) string {
	if category == Function || category == Method {
		return fmt.Sprintf("%s/%d", name, arity)
	}
	return name
}

// Table is one frame of the compile-time symbol table tree, mirroring a
// lexical scope (block, function body, class body, ...).
type Table struct {
	parent  *Table
	symbols map[string]*Symbol
}

// New creates a root table with no parent.
func New() *Table {
	return &Table{symbols: make(map[string]*Symbol)}
}

// Child creates a new table nested inside t.
func (t *Table) Child() *Table {
	return &Table{parent: t, symbols: make(map[string]*Symbol)}
}

// Parent returns the enclosing table, or nil at the root.
func (t *Table) Parent() *Table { return t.parent }

// Declare inserts a symbol into the current frame. It returns false without
// modifying the table if a symbol with the same name/arity key already
// exists in this frame (the caller should raise DuplicateDefinition).
func (t *Table) Declare(sym *Symbol) bool {
	k := key(sym.Name, sym.Category, sym.Arity)
	if _, exists := t.symbols[k]; exists {
		return false
	}
	t.symbols[k] = sym
	return true
}

// Lookup finds a symbol by name, optionally constrained to a specific
// arity (arity < 0 means "any"). localOnly restricts the search to the
// current frame instead of walking parentward.
func (t *Table) Lookup(name string, arity int, localOnly bool) (*Symbol, bool) {
	for cur := t; cur != nil; cur = cur.parent {
		if arity >= 0 {
			if s, ok := cur.symbols[key(name, Function, arity)]; ok {
				return s, true
			}
			if s, ok := cur.symbols[key(name, Method, arity)]; ok {
				return s, true
			}
		}
		if s, ok := cur.symbols[name]; ok {
			return s, true
		}
		// Any-arity function/method entries (vararg), tried last.
		for _, wantCat := range []Category{Function, Method} {
			if s, ok := cur.symbols[key(name, wantCat, -1)]; ok {
				return s, true
			}
		}
		if localOnly {
			break
		}
	}
	return nil, false
}

// HasLocal reports whether any symbol with this bare name exists in the current
// frame (ignoring arity), used for duplicate-name diagnostics on var/val.
func (t *Table) HasLocal(name string) bool {
	if _, ok := t.symbols[name]; ok {
		return true
	}
	for k := range t.symbols {
		if len(k) > len(name) && k[:len(name)] == name && k[len(name)] == '/' {
			return true
		}
	}
	return false
}
