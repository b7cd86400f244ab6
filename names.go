package go_javad

import (
	"strings"
	"unicode"
)

// Code points that may start or continue an identifier in class files older than 1.5.
// Letters, letter numbers, currency symbols and connector punctuation start an identifier;
// digits, combining marks, format characters and the ignorable controls may continue one.
var (
	identifierStart = []*unicode.RangeTable{unicode.L, unicode.Nl, unicode.Sc, unicode.Pc}
	identifierPart  = []*unicode.RangeTable{
		unicode.L, unicode.Nl, unicode.Sc, unicode.Pc,
		unicode.Nd, unicode.Mn, unicode.Mc, unicode.Cf,
		ignorableControls,
	}
	ignorableControls = &unicode.RangeTable{
		R16: []unicode.Range16{
			{Lo: 0x0000, Hi: 0x0008, Stride: 1},
			{Lo: 0x000E, Hi: 0x001B, Stride: 1},
			{Lo: 0x007F, Hi: 0x009F, Stride: 1},
		},
		LatinOffset: 3,
	}
)

func isIdentifierStart(r rune) bool {
	return unicode.IsOneOf(identifierStart, r)
}

func isIdentifierPart(r rune) bool {
	return unicode.IsOneOf(identifierPart, r)
}

// CheckUnqualifiedName checks an unqualified field, method or local variable name.
func CheckUnqualifiedName(version int, name, what string) error {
	return CheckIdentifier(version, name, 0, -1, what)
}

// CheckIdentifier checks name[start:end]. end == -1 checks until the end of name.
// From version 1.5 any code point but . ; [ / is accepted, earlier versions require a Java identifier.
func CheckIdentifier(version int, name string, start, end int, what string) error {
	if end == -1 {
		end = len(name)
	}
	if end <= start {
		return illegalArgument("%s (must not be null or empty)", invalid(what))
	}
	part := name[start:end]
	if majorVersion(version) >= V1_5 {
		if strings.ContainsAny(part, ".;[/") {
			return illegalArgument("%s (must not contain . ; [ or /): %s", invalid(what), name)
		}
		return nil
	}
	for i, r := range part {
		if i == 0 && !isIdentifierStart(r) || i > 0 && !isIdentifierPart(r) {
			return illegalArgument("%s (must be a valid Java identifier): %s", invalid(what), name)
		}
	}
	return nil
}

// CheckMethodIdentifier checks a method name. <init> and <clinit> are rejected, callers allow them where legal.
func CheckMethodIdentifier(version int, name, what string) error {
	if name == "" {
		return illegalArgument("%s (must not be null or empty)", invalid(what))
	}
	if majorVersion(version) >= V1_5 {
		if strings.ContainsAny(name, ".;[/<>") {
			return illegalArgument("%s (must be a valid unqualified name): %s", invalid(what), name)
		}
		return nil
	}
	for i, r := range name {
		if i == 0 && !isIdentifierStart(r) || i > 0 && !isIdentifierPart(r) {
			return illegalArgument("%s (must be a '<init>', '<clinit>' or a valid Java identifier): %s", invalid(what), name)
		}
	}
	return nil
}

// CheckInternalName checks an internal class name such as java/lang/String, or an array descriptor.
func CheckInternalName(version int, name, what string) error {
	if name == "" {
		return illegalArgument("%s (must not be null or empty)", invalid(what))
	}
	if name[0] == '[' {
		return CheckDescriptor(version, name, false)
	}
	return checkInternalClassName(version, name, what)
}

func checkInternalClassName(version int, name, what string) error {
	if err := checkSeparatedIdentifiers(version, name, '/'); err != nil {
		return wrapArgument(err, "%s (must be an internal class name): %s", invalid(what), name)
	}
	return nil
}

// CheckFullyQualifiedName checks a dot separated name such as a module name.
func CheckFullyQualifiedName(version int, name, what string) error {
	if err := checkSeparatedIdentifiers(version, name, '.'); err != nil {
		return wrapArgument(err, "%s (must be a fully qualified name): %s", invalid(what), name)
	}
	return nil
}

// checkSeparatedIdentifiers checks every identifier of name between separators.
// A separator in the first position belongs to the first identifier.
func checkSeparatedIdentifiers(version int, name string, sep byte) error {
	start := 0
	for {
		i := -1
		if start+1 <= len(name) {
			i = strings.IndexByte(name[start+1:], sep)
		}
		if i < 0 {
			break
		}
		end := start + 1 + i
		if err := CheckIdentifier(version, name, start, end, ""); err != nil {
			return err
		}
		start = end + 1
	}
	return CheckIdentifier(version, name, start, len(name), "")
}

// CheckDescriptor checks a field descriptor. canBeVoid accepts V, as in a return type.
func CheckDescriptor(version int, desc string, canBeVoid bool) error {
	end, err := checkDescriptorAt(version, desc, 0, canBeVoid)
	if err != nil {
		return err
	}
	if end != len(desc) {
		return illegalArgument("Invalid descriptor: %s", desc)
	}
	return nil
}

// checkDescriptorAt checks the field descriptor starting at pos and returns the position after it.
func checkDescriptorAt(version int, desc string, pos int, canBeVoid bool) (int, error) {
	if pos >= len(desc) {
		return 0, illegalArgument("Invalid type descriptor (must not be null or empty)")
	}
	switch desc[pos] {
	case 'V':
		if canBeVoid {
			return pos + 1, nil
		}
		return 0, illegalArgument("Invalid descriptor: %s", desc)
	case 'Z', 'C', 'B', 'S', 'I', 'F', 'J', 'D':
		return pos + 1, nil
	case '[':
		next := pos + 1
		for next < len(desc) && desc[next] == '[' {
			next++
		}
		if next < len(desc) {
			return checkDescriptorAt(version, desc, next, false)
		}
		return 0, illegalArgument("Invalid descriptor: %s", desc)
	case 'L':
		i := strings.IndexByte(desc[pos:], ';')
		if i < 2 {
			return 0, illegalArgument("Invalid descriptor: %s", desc)
		}
		end := pos + i
		if err := checkInternalClassName(version, desc[pos+1:end], ""); err != nil {
			return 0, wrapArgument(err, "Invalid descriptor: %s", desc)
		}
		return end + 1, nil
	default:
		return 0, illegalArgument("Invalid descriptor: %s", desc)
	}
}

// CheckMethodDescriptor checks a method descriptor such as (ILjava/lang/String;)V.
func CheckMethodDescriptor(version int, desc string) error {
	if desc == "" {
		return illegalArgument("Invalid method descriptor (must not be null or empty)")
	}
	if desc[0] != '(' || len(desc) < 3 {
		return illegalArgument("Invalid descriptor: %s", desc)
	}
	pos := 1
	for pos < len(desc) && desc[pos] != ')' {
		if desc[pos] == 'V' {
			return illegalArgument("Invalid descriptor: %s", desc)
		}
		next, err := checkDescriptorAt(version, desc, pos, false)
		if err != nil {
			return err
		}
		pos = next
	}
	end, err := checkDescriptorAt(version, desc, pos+1, true)
	if err != nil {
		return err
	}
	if end != len(desc) {
		return illegalArgument("Invalid descriptor: %s", desc)
	}
	return nil
}

// CheckConstant checks a field constant value: int32, float32, int64, float64 or string.
func CheckConstant(value any) error {
	switch value.(type) {
	case int32, float32, int64, float64, string:
		return nil
	default:
		return illegalArgument("Invalid constant: %v", value)
	}
}
