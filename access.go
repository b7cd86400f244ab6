package go_javad

import (
	"fmt"
	"math/bits"
	"strings"
)

// Access flags.
// See: https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-4.html#jvms-4.1
const (
	ACC_PUBLIC       = 0x0001 // class, field, method
	ACC_PRIVATE      = 0x0002 // class, field, method
	ACC_PROTECTED    = 0x0004 // class, field, method
	ACC_STATIC       = 0x0008 // field, method
	ACC_FINAL        = 0x0010 // class, field, method, parameter
	ACC_SUPER        = 0x0020 // class
	ACC_SYNCHRONIZED = 0x0020 // method
	ACC_OPEN         = 0x0020 // module
	ACC_TRANSITIVE   = 0x0020 // module requires
	ACC_VOLATILE     = 0x0040 // field
	ACC_BRIDGE       = 0x0040 // method
	ACC_STATIC_PHASE = 0x0040 // module requires
	ACC_VARARGS      = 0x0080 // method
	ACC_TRANSIENT    = 0x0080 // field
	ACC_NATIVE       = 0x0100 // method
	ACC_INTERFACE    = 0x0200 // class
	ACC_ABSTRACT     = 0x0400 // class, method
	ACC_STRICT       = 0x0800 // method
	ACC_SYNTHETIC    = 0x1000 // class, field, method, parameter, module, module directives
	ACC_ANNOTATION   = 0x2000 // class
	ACC_ENUM         = 0x4000 // class, field, inner class
	ACC_MANDATED     = 0x8000 // field, method, parameter, module, module directives
	ACC_MODULE       = 0x8000 // class

	// Pseudo flags that never reach the binary access_flags items.
	ACC_RECORD     = 0x10000 // class
	ACC_DEPRECATED = 0x20000 // class, field, method
)

// AccessKind selects how overloaded access bits are named.
type AccessKind int

const (
	ClassAccess AccessKind = iota
	InnerClassAccess
	FieldAccess
	MethodAccess
	ParameterAccess
	ModuleAccess
	RequiresAccess
	ExportsAccess
)

type accessFlag struct {
	bit  int
	name string
}

// accessFlags is the flags translation from bits to name, per member kind, ordered by bit.
// See: https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-4.html#jvms-4.6 (Table 4.6-A. Method access and property flags)
var accessFlags = map[AccessKind][]accessFlag{
	ClassAccess: {
		{ACC_PUBLIC, "public"}, {ACC_FINAL, "final"}, {ACC_SUPER, "super"}, {ACC_INTERFACE, "interface"},
		{ACC_ABSTRACT, "abstract"}, {ACC_SYNTHETIC, "synthetic"}, {ACC_ANNOTATION, "annotation"}, {ACC_ENUM, "enum"},
		{ACC_MODULE, "module"}, {ACC_RECORD, "record"}, {ACC_DEPRECATED, "deprecated"},
	},
	InnerClassAccess: {
		{ACC_PUBLIC, "public"}, {ACC_PRIVATE, "private"}, {ACC_PROTECTED, "protected"}, {ACC_STATIC, "static"},
		{ACC_FINAL, "final"}, {ACC_INTERFACE, "interface"}, {ACC_ABSTRACT, "abstract"}, {ACC_SYNTHETIC, "synthetic"},
		{ACC_ANNOTATION, "annotation"}, {ACC_ENUM, "enum"},
	},
	FieldAccess: {
		{ACC_PUBLIC, "public"}, {ACC_PRIVATE, "private"}, {ACC_PROTECTED, "protected"}, {ACC_STATIC, "static"},
		{ACC_FINAL, "final"}, {ACC_VOLATILE, "volatile"}, {ACC_TRANSIENT, "transient"}, {ACC_SYNTHETIC, "synthetic"},
		{ACC_ENUM, "enum"}, {ACC_MANDATED, "mandated"}, {ACC_DEPRECATED, "deprecated"},
	},
	MethodAccess: {
		{ACC_PUBLIC, "public"}, {ACC_PRIVATE, "private"}, {ACC_PROTECTED, "protected"}, {ACC_STATIC, "static"},
		{ACC_FINAL, "final"}, {ACC_SYNCHRONIZED, "synchronized"}, {ACC_BRIDGE, "bridge"}, {ACC_VARARGS, "varargs"},
		{ACC_NATIVE, "native"}, {ACC_ABSTRACT, "abstract"}, {ACC_STRICT, "strict"}, {ACC_SYNTHETIC, "synthetic"},
		{ACC_MANDATED, "mandated"}, {ACC_DEPRECATED, "deprecated"},
	},
	ParameterAccess: {
		{ACC_FINAL, "final"}, {ACC_SYNTHETIC, "synthetic"}, {ACC_MANDATED, "mandated"},
	},
	ModuleAccess: {
		{ACC_OPEN, "open"}, {ACC_SYNTHETIC, "synthetic"}, {ACC_MANDATED, "mandated"},
	},
	RequiresAccess: {
		{ACC_TRANSITIVE, "transitive"}, {ACC_STATIC_PHASE, "static_phase"}, {ACC_SYNTHETIC, "synthetic"},
		{ACC_MANDATED, "mandated"},
	},
	ExportsAccess: {
		{ACC_SYNTHETIC, "synthetic"}, {ACC_MANDATED, "mandated"},
	},
}

// AccessNames translates access flags to their names (public, private, static, etc.) for the given member kind.
// For example: 0x0009 of a method will be translated to ["public", "static"].
// Bits unknown to the kind are reported as hex values so that nothing is silently dropped.
func AccessNames(access int, kind AccessKind) []string {
	var translated []string
	rest := access
	for _, f := range accessFlags[kind] {
		// Check if flag is on with bitwise and
		if access&f.bit != 0 {
			translated = append(translated, f.name)
			rest &^= f.bit
		}
	}
	for rest != 0 {
		bit := 1 << bits.TrailingZeros(uint(rest))
		translated = append(translated, fmt.Sprintf("0x%x", bit))
		rest &^= bit
	}
	return translated
}

// ParseAccess is the reverse of AccessNames.
func ParseAccess(names []string, kind AccessKind) (int, error) {
	access := 0
	for _, name := range names {
		bit, err := parseAccessName(strings.ToLower(strings.TrimSpace(name)), kind)
		if err != nil {
			return 0, err
		}
		access |= bit
	}
	return access, nil
}

func parseAccessName(name string, kind AccessKind) (int, error) {
	for _, f := range accessFlags[kind] {
		if f.name == name {
			return f.bit, nil
		}
	}
	// A name from another kind is accepted so that the checkers, not the parser, reject it.
	for other := ClassAccess; other <= ExportsAccess; other++ {
		for _, f := range accessFlags[other] {
			if f.name == name {
				return f.bit, nil
			}
		}
	}
	var bit int
	if _, err := fmt.Sscanf(name, "0x%x", &bit); err == nil {
		return bit, nil
	}
	return 0, fmt.Errorf("unknown access flag %q", name)
}
