package go_javad

import "fmt"

// Type reference sorts, stored in the most significant byte of a type reference.
// See: https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-4.html#jvms-4.7.20-400
const (
	CLASS_TYPE_PARAMETER                 = 0x00
	METHOD_TYPE_PARAMETER                = 0x01
	CLASS_EXTENDS                        = 0x10
	CLASS_TYPE_PARAMETER_BOUND           = 0x11
	METHOD_TYPE_PARAMETER_BOUND          = 0x12
	FIELD                                = 0x13
	METHOD_RETURN                        = 0x14
	METHOD_RECEIVER                      = 0x15
	METHOD_FORMAL_PARAMETER              = 0x16
	THROWS                               = 0x17
	LOCAL_VARIABLE                       = 0x40
	RESOURCE_VARIABLE                    = 0x41
	EXCEPTION_PARAMETER                  = 0x42
	INSTANCEOF_REF                       = 0x43
	NEW_REF                              = 0x44
	CONSTRUCTOR_REFERENCE                = 0x45
	METHOD_REFERENCE                     = 0x46
	CAST                                 = 0x47
	CONSTRUCTOR_INVOCATION_TYPE_ARGUMENT = 0x48
	METHOD_INVOCATION_TYPE_ARGUMENT      = 0x49
	CONSTRUCTOR_REFERENCE_TYPE_ARGUMENT  = 0x4A
	METHOD_REFERENCE_TYPE_ARGUMENT       = 0x4B
)

// TypeRefSort returns the sort of a type reference.
func TypeRefSort(typeRef int) int {
	return int(uint32(typeRef) >> 24)
}

// NewTypeRef builds a type reference of the given sort with its target info in the low bits.
func NewTypeRef(sort, info int) int {
	return int(int32(uint32(sort)<<24 | uint32(info)&0xFFFFFF))
}

// CheckTypeRef checks that the target info bits of a type reference fit its sort.
func CheckTypeRef(typeRef int) error {
	var mask uint32
	switch TypeRefSort(typeRef) {
	case CLASS_TYPE_PARAMETER, METHOD_TYPE_PARAMETER, METHOD_FORMAL_PARAMETER:
		mask = 0xFFFF0000
	case FIELD, METHOD_RETURN, METHOD_RECEIVER, LOCAL_VARIABLE, RESOURCE_VARIABLE, INSTANCEOF_REF, NEW_REF,
		CONSTRUCTOR_REFERENCE, METHOD_REFERENCE:
		mask = 0xFF000000
	case CLASS_EXTENDS, CLASS_TYPE_PARAMETER_BOUND, METHOD_TYPE_PARAMETER_BOUND, THROWS, EXCEPTION_PARAMETER:
		mask = 0xFFFFFF00
	case CAST, CONSTRUCTOR_INVOCATION_TYPE_ARGUMENT, METHOD_INVOCATION_TYPE_ARGUMENT,
		CONSTRUCTOR_REFERENCE_TYPE_ARGUMENT, METHOD_REFERENCE_TYPE_ARGUMENT:
		mask = 0xFF0000FF
	default:
		return illegalArgument("Invalid type reference sort 0x%x", TypeRefSort(typeRef))
	}
	if uint32(typeRef)&^mask != 0 {
		return illegalArgument("Invalid type reference 0x%x", uint32(typeRef))
	}
	return nil
}

// checkTypeRefSort checks a type reference against the sorts allowed at a visit site, then its target info.
func checkTypeRefSort(typeRef int, allowed ...int) error {
	sort := TypeRefSort(typeRef)
	for _, s := range allowed {
		if s == sort {
			return CheckTypeRef(typeRef)
		}
	}
	return illegalArgument("Invalid type reference sort 0x%x", sort)
}

func typeRefString(typeRef int) string {
	return fmt.Sprintf("0x%08x", uint32(typeRef))
}
