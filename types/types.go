// Package types defines the static type system: the Type sum, its textual
// names, and the assignability rule used by the resolver/type checker.
package types

import "strings"

// Kind identifies which variant of Type a value is.
type Kind int

const (
	KindValue Kind = iota
	KindString
	KindBool
	KindFn
	KindType
	KindUnknown
)

// Type is the static type of an expression. The zero Type is KindValue.
type Type struct {
	Kind Kind

	// Fn fields, only meaningful when Kind == KindFn.
	Args     []Type
	Variadic *Type // nil if the function has no variadic trailing argument
	Returns  *Type

	// Type fields, only meaningful when Kind == KindType.
	Inner *Type
}

// Convenience constructors for the non-parameterized kinds.
var (
	Value   = Type{Kind: KindValue}
	String  = Type{Kind: KindString}
	Bool    = Type{Kind: KindBool}
	Unknown = Type{Kind: KindUnknown}
)

// NewFn builds a Fn type. variadic may be nil.
func NewFn(args []Type, variadic *Type, returns Type) Type {
	return Type{Kind: KindFn, Args: args, Variadic: variadic, Returns: &returns}
}

// NewTypeOf builds the Type(inner) type, i.e. the type of a type literal.
func NewTypeOf(inner Type) Type {
	return Type{Kind: KindType, Inner: &inner}
}

// Name renders the type the way spec.md's disassembly and error examples do,
// e.g. "Fn(Value, String, ...Value) -> String" or "Type<String>".
func (t Type) Name() string {
	switch t.Kind {
	case KindValue:
		return "Value"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindUnknown:
		return "Unknown"
	case KindType:
		inner := "Value"
		if t.Inner != nil {
			inner = t.Inner.Name()
		}
		return "Type<" + inner + ">"
	case KindFn:
		parts := make([]string, 0, len(t.Args)+1)
		for _, a := range t.Args {
			parts = append(parts, a.Name())
		}
		if t.Variadic != nil {
			parts = append(parts, "..."+t.Variadic.Name())
		}
		returns := "Value"
		if t.Returns != nil {
			returns = t.Returns.Name()
		}
		return "Fn(" + strings.Join(parts, ", ") + ") -> " + returns
	default:
		return "Unknown"
	}
}

func (t Type) String() string { return t.Name() }

// Equal reports structural equality between two types, ignoring
// assignability rules (Value/Unknown are only special in Assignable).
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindType:
		return equalPtr(a.Inner, b.Inner)
	case KindFn:
		if len(a.Args) != len(b.Args) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		if !equalPtr(a.Variadic, b.Variadic) {
			return false
		}
		return equalPtr(a.Returns, b.Returns)
	default:
		return true
	}
}

func equalPtr(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return Equal(*a, *b)
}

// ParseName resolves a bare type literal's textual name (spec.md §4.2's
// `typeName` production) to the primitive Type it denotes. Only "Value",
// "String", and "Bool" are valid bare names; "Type" is handled separately by
// the parser since it always carries a `<...>` inner type, and "Fn" is
// handled by the Fn(...) -> T grammar. ok is false for any other name.
func ParseName(name string) (Type, bool) {
	switch name {
	case "Value":
		return Value, true
	case "String":
		return String, true
	case "Bool":
		return Bool, true
	default:
		return Unknown, false
	}
}

// Assignable reports whether a value of type "from" may be used where "to"
// is required. Value accepts everything; Unknown is assignable to and from
// anything, suppressing cascading errors after an earlier failure; otherwise
// types must be structurally equal.
func Assignable(to, from Type) bool {
	if to.Kind == KindValue || from.Kind == KindUnknown || to.Kind == KindUnknown {
		return true
	}
	return Equal(to, from)
}
