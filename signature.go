package go_javad

import "strings"

// Generic signature grammar.
// See: https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-4.html#jvms-4.7.9.1
//
//	ClassSignature   := [TypeParameters] ClassTypeSig ClassTypeSig*
//	MethodSignature  := [TypeParameters] '(' JavaTypeSig* ')' (JavaTypeSig | 'V') ('^' (ClassTypeSig | TypeVarSig))*
//	FieldSignature   := ReferenceTypeSig
//	TypeParameters   := '<' TypeParameter+ '>'
//	TypeParameter    := Identifier ':' [ReferenceTypeSig] (':' ReferenceTypeSig)*
//	ReferenceTypeSig := ClassTypeSig | TypeVarSig | '[' JavaTypeSig
//	ClassTypeSig     := 'L' Identifier ('/' Identifier)* [TypeArgs] ('.' Identifier [TypeArgs])* ';'
//	TypeArgs         := '<' TypeArgument+ '>'
//	TypeArgument     := '*' | ['+' | '-'] ReferenceTypeSig
//	TypeVarSig       := 'T' Identifier ';'
//	JavaTypeSig      := ReferenceTypeSig | 'Z' | 'C' | 'B' | 'S' | 'I' | 'F' | 'J' | 'D'
//
// Every production takes the position it starts at and returns the position after it.
// Positions are byte offsets into the signature.

// CheckClassSignature checks a class signature.
func CheckClassSignature(sig string) error {
	p := sigParser{sig: sig}
	pos := 0
	var err error
	if p.at(0) == '<' {
		if pos, err = p.typeParameters(pos); err != nil {
			return err
		}
	}
	if pos, err = p.classTypeSignature(pos); err != nil {
		return err
	}
	for p.at(pos) == 'L' {
		if pos, err = p.classTypeSignature(pos); err != nil {
			return err
		}
	}
	return p.end(pos)
}

// CheckMethodSignature checks a method signature.
func CheckMethodSignature(sig string) error {
	p := sigParser{sig: sig}
	pos := 0
	var err error
	if p.at(0) == '<' {
		if pos, err = p.typeParameters(pos); err != nil {
			return err
		}
	}
	if pos, err = p.char('(', pos); err != nil {
		return err
	}
	for strings.IndexByte("ZCBSIFJDL[T", p.at(pos)) >= 0 {
		if pos, err = p.javaTypeSignature(pos); err != nil {
			return err
		}
	}
	if pos, err = p.char(')', pos); err != nil {
		return err
	}
	if p.at(pos) == 'V' {
		pos++
	} else if pos, err = p.javaTypeSignature(pos); err != nil {
		return err
	}
	for p.at(pos) == '^' {
		pos++
		if p.at(pos) == 'L' {
			pos, err = p.classTypeSignature(pos)
		} else {
			pos, err = p.typeVariableSignature(pos)
		}
		if err != nil {
			return err
		}
	}
	return p.end(pos)
}

// CheckFieldSignature checks a field, record component or local variable signature.
func CheckFieldSignature(sig string) error {
	p := sigParser{sig: sig}
	pos, err := p.referenceTypeSignature(0)
	if err != nil {
		return err
	}
	return p.end(pos)
}

type sigParser struct {
	sig string
}

// at returns the byte at pos, or 0 past the end of the signature.
func (p *sigParser) at(pos int) byte {
	if pos < len(p.sig) {
		return p.sig[pos]
	}
	return 0
}

func (p *sigParser) end(pos int) error {
	if pos != len(p.sig) {
		return illegalArgument("%s: error at index %d", p.sig, pos)
	}
	return nil
}

func (p *sigParser) char(c byte, pos int) (int, error) {
	if p.at(pos) == c {
		return pos + 1, nil
	}
	return 0, illegalArgument("%s: '%c' expected at index %d", p.sig, c, pos)
}

func (p *sigParser) typeParameters(pos int) (int, error) {
	pos, err := p.char('<', pos)
	if err != nil {
		return 0, err
	}
	if pos, err = p.typeParameter(pos); err != nil {
		return 0, err
	}
	for p.at(pos) != '>' {
		if pos, err = p.typeParameter(pos); err != nil {
			return 0, err
		}
	}
	return pos + 1, nil
}

func (p *sigParser) typeParameter(pos int) (int, error) {
	pos, err := p.identifier(pos)
	if err != nil {
		return 0, err
	}
	if pos, err = p.char(':', pos); err != nil {
		return 0, err
	}
	if c := p.at(pos); c == 'L' || c == '[' || c == 'T' {
		if pos, err = p.referenceTypeSignature(pos); err != nil {
			return 0, err
		}
	}
	for p.at(pos) == ':' {
		if pos, err = p.referenceTypeSignature(pos + 1); err != nil {
			return 0, err
		}
	}
	return pos, nil
}

func (p *sigParser) referenceTypeSignature(pos int) (int, error) {
	switch p.at(pos) {
	case 'L':
		return p.classTypeSignature(pos)
	case '[':
		return p.javaTypeSignature(pos + 1)
	default:
		return p.typeVariableSignature(pos)
	}
}

func (p *sigParser) classTypeSignature(pos int) (int, error) {
	pos, err := p.char('L', pos)
	if err != nil {
		return 0, err
	}
	if pos, err = p.identifier(pos); err != nil {
		return 0, err
	}
	for p.at(pos) == '/' {
		if pos, err = p.identifier(pos + 1); err != nil {
			return 0, err
		}
	}
	if p.at(pos) == '<' {
		if pos, err = p.typeArguments(pos); err != nil {
			return 0, err
		}
	}
	for p.at(pos) == '.' {
		if pos, err = p.identifier(pos + 1); err != nil {
			return 0, err
		}
		if p.at(pos) == '<' {
			if pos, err = p.typeArguments(pos); err != nil {
				return 0, err
			}
		}
	}
	return p.char(';', pos)
}

func (p *sigParser) typeArguments(pos int) (int, error) {
	pos, err := p.char('<', pos)
	if err != nil {
		return 0, err
	}
	if pos, err = p.typeArgument(pos); err != nil {
		return 0, err
	}
	for p.at(pos) != '>' {
		if pos, err = p.typeArgument(pos); err != nil {
			return 0, err
		}
	}
	return pos + 1, nil
}

func (p *sigParser) typeArgument(pos int) (int, error) {
	switch p.at(pos) {
	case '*':
		return pos + 1, nil
	case '+', '-':
		pos++
	}
	return p.referenceTypeSignature(pos)
}

func (p *sigParser) typeVariableSignature(pos int) (int, error) {
	pos, err := p.char('T', pos)
	if err != nil {
		return 0, err
	}
	if pos, err = p.identifier(pos); err != nil {
		return 0, err
	}
	return p.char(';', pos)
}

func (p *sigParser) javaTypeSignature(pos int) (int, error) {
	switch p.at(pos) {
	case 'Z', 'C', 'B', 'S', 'I', 'F', 'J', 'D':
		return pos + 1, nil
	default:
		return p.referenceTypeSignature(pos)
	}
}

// identifier consumes the longest run of bytes that are none of . ; [ / < > :
func (p *sigParser) identifier(start int) (int, error) {
	pos := start
	for pos < len(p.sig) && strings.IndexByte(".;[/<>:", p.sig[pos]) < 0 {
		pos++
	}
	if pos == start {
		return 0, illegalArgument("%s: identifier expected at index %d", p.sig, start)
	}
	return pos, nil
}
