package ast

import "github.com/vela-lang/vela/internal/token"

// FieldDecl is one `var`/`val` field member of a class.
type FieldDecl struct {
	Name    string
	Pos     token.Position
	Const   bool
	Static  bool
	Default Expression // nil => field defaults to Null
}

// MethodDecl is one method (including `new`/`class new` constructors) of a
// class.
type MethodDecl struct {
	Name   string // "new" for a constructor, "new" with Static=true for the class-level constructor
	Pos    token.Position
	Params []Param
	Body   Statement
	Static bool
	Ctor   bool
}

// ClassDeclaration is `class Name [: Base] { members }`.
type ClassDeclaration struct {
	base
	Name    string
	Base    string // "" if no base class
	Fields  []FieldDecl
	Methods []MethodDecl
	Nested  []*ClassDeclaration
}

func NewClassDeclaration(pos token.Position, name, base_ string, fields []FieldDecl, methods []MethodDecl, nested []*ClassDeclaration) *ClassDeclaration {
	c := &ClassDeclaration{base: base{pos: pos}, Name: name, Base: base_, Fields: fields, Methods: methods, Nested: nested}
	for i := range fields {
		if fields[i].Default != nil {
			Attach(c, fields[i].Default)
		}
	}
	for i := range methods {
		Attach(c, methods[i].Body)
	}
	for _, n := range nested {
		Attach(c, n)
	}
	return c
}

func (*ClassDeclaration) Kind() Kind { return KClassDeclaration }
func (*ClassDeclaration) stmt()      {}
