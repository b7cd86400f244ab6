package go_javad

import (
	"fmt"
	"strings"
)

// Sort is the kind of a Type.
type Sort int

const (
	SortVoid Sort = iota
	SortBoolean
	SortChar
	SortByte
	SortShort
	SortInt
	SortFloat
	SortLong
	SortDouble
	SortArray
	SortObject
	SortMethod
)

var sortNames = [...]string{"void", "boolean", "char", "byte", "short", "int", "float", "long", "double", "array", "object", "method"}

func (s Sort) String() string {
	if s >= SortVoid && s <= SortMethod {
		return sortNames[s]
	}
	return fmt.Sprintf("Sort(%d)", int(s))
}

// Type is a Java type held by its descriptor: a field type, an array type, an object type or a method type.
// Type values are only well formed when their descriptor is; callers check descriptors first.
type Type struct {
	sort Sort
	desc string
}

var primitiveSorts = map[byte]Sort{
	'V': SortVoid, 'Z': SortBoolean, 'C': SortChar, 'B': SortByte, 'S': SortShort,
	'I': SortInt, 'F': SortFloat, 'J': SortLong, 'D': SortDouble,
}

// TypeOf returns the Type of a field or method descriptor.
func TypeOf(desc string) Type {
	if desc == "" {
		return Type{sort: SortObject}
	}
	switch desc[0] {
	case '(':
		return Type{sort: SortMethod, desc: desc}
	case '[':
		return Type{sort: SortArray, desc: desc}
	case 'L':
		return Type{sort: SortObject, desc: desc}
	}
	if sort, ok := primitiveSorts[desc[0]]; ok && len(desc) == 1 {
		return Type{sort: sort, desc: desc}
	}
	return Type{sort: SortObject, desc: desc}
}

// ObjectType returns the Type of an internal name. Array internal names are array descriptors.
func ObjectType(internalName string) Type {
	if strings.HasPrefix(internalName, "[") {
		return Type{sort: SortArray, desc: internalName}
	}
	return Type{sort: SortObject, desc: "L" + internalName + ";"}
}

// MethodType returns the Type of a method descriptor.
func MethodType(desc string) Type {
	return Type{sort: SortMethod, desc: desc}
}

func (t Type) Sort() Sort { return t.sort }

func (t Type) Descriptor() string { return t.desc }

func (t Type) String() string { return t.desc }

// InternalName returns the internal name of an object type, or the descriptor of an array type.
func (t Type) InternalName() string {
	if t.sort == SortObject && strings.HasPrefix(t.desc, "L") && strings.HasSuffix(t.desc, ";") {
		return t.desc[1 : len(t.desc)-1]
	}
	return t.desc
}

// Dimensions returns the number of dimensions of an array type.
func (t Type) Dimensions() int {
	n := 0
	for n < len(t.desc) && t.desc[n] == '[' {
		n++
	}
	return n
}

// Size returns the number of local variable or operand stack slots of a value of type t.
func (t Type) Size() int {
	switch t.sort {
	case SortVoid:
		return 0
	case SortLong, SortDouble:
		return 2
	default:
		return 1
	}
}

// ArgumentTypes returns the parameter types of a method type.
func (t Type) ArgumentTypes() []Type {
	var args []Type
	pos := 1
	for pos < len(t.desc) && t.desc[pos] != ')' {
		end := fieldTypeEnd(t.desc, pos)
		args = append(args, TypeOf(t.desc[pos:end]))
		pos = end
	}
	return args
}

// ReturnType returns the return type of a method type.
func (t Type) ReturnType() Type {
	i := strings.IndexByte(t.desc, ')')
	if i < 0 {
		return Type{sort: SortVoid, desc: "V"}
	}
	return TypeOf(t.desc[i+1:])
}

// ArgumentsAndReturnSizes returns argSize<<2 | returnSize for a method descriptor.
// argSize counts the implicit this argument.
func ArgumentsAndReturnSizes(desc string) int {
	t := MethodType(desc)
	argSize := 1
	for _, arg := range t.ArgumentTypes() {
		argSize += arg.Size()
	}
	return argSize<<2 | t.ReturnType().Size()
}

// fieldTypeEnd returns the position just after the field descriptor starting at pos.
func fieldTypeEnd(desc string, pos int) int {
	for pos < len(desc) && desc[pos] == '[' {
		pos++
	}
	if pos < len(desc) && desc[pos] == 'L' {
		if i := strings.IndexByte(desc[pos:], ';'); i >= 0 {
			return pos + i + 1
		}
		return len(desc)
	}
	return min(pos+1, len(desc))
}

// Handle is a reference to a field or a method, used as a bootstrap method or as an ldc constant.
type Handle struct {
	Tag         int // one of H_GETFIELD..H_INVOKEINTERFACE
	Owner       string
	Name        string
	Desc        string
	IsInterface bool
}

// String formats the handle the way replay scripts write it: "invokestatic java/lang/Math.max (II)I".
func (h Handle) String() string {
	s := fmt.Sprintf("%s %s.%s %s", HandleTagName(h.Tag), h.Owner, h.Name, h.Desc)
	if h.IsInterface {
		s += " itf"
	}
	return s
}

// ConstantDynamic is a dynamically computed constant.
type ConstantDynamic struct {
	Name       string
	Descriptor string
	Bootstrap  Handle
	Args       []any
}

// Size returns the number of operand stack slots the constant takes.
func (c ConstantDynamic) Size() int {
	return TypeOf(c.Descriptor).Size()
}

func (c ConstantDynamic) String() string {
	s := fmt.Sprintf("%s %s %s", c.Name, c.Descriptor, c.Bootstrap)
	if len(c.Args) > 0 {
		s += fmt.Sprintf(" %v", c.Args)
	}
	return s
}

// Attribute is a non standard class, field, method or code attribute.
// Unknown attributes are forwarded as is.
type Attribute interface {
	Type() string
}

// RawAttribute is an Attribute carrying its undecoded content.
type RawAttribute struct {
	Name    string
	Content []byte
}

func (a *RawAttribute) Type() string { return a.Name }

// TypePath locates a type argument, wildcard bound, array element type or nested type inside the
// type targeted by a type annotation. The empty path targets the type itself.
type TypePath string
