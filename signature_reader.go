package go_javad

import "strings"

// AcceptSignature drives v with the events of a class or method signature.
// The signature is expected to be well formed; malformed input returns an error.
func AcceptSignature(sig string, v SignatureVisitor) error {
	r := sigReader{sig: sig}
	pos := 0
	if r.at(0) == '<' {
		pos = 2
		for {
			colon := strings.IndexByte(sig[min(pos-1, len(sig)):], ':')
			if colon < 0 {
				return r.fail(pos - 1)
			}
			colon += pos - 1
			if err := v.VisitFormalTypeParameter(sig[pos-1 : colon]); err != nil {
				return err
			}
			pos = colon + 1
			if c := r.at(pos); c == 'L' || c == '[' || c == 'T' {
				bound, err := v.VisitClassBound()
				if err != nil {
					return err
				}
				if pos, err = r.parseType(pos, bound); err != nil {
					return err
				}
			}
			var c byte
			for {
				c = r.at(pos)
				pos++
				if c != ':' {
					break
				}
				bound, err := v.VisitInterfaceBound()
				if err != nil {
					return err
				}
				if pos, err = r.parseType(pos, bound); err != nil {
					return err
				}
			}
			if c == '>' {
				break
			}
			if c == 0 {
				return r.fail(pos - 1)
			}
		}
	}
	if r.at(pos) == '(' {
		pos++
		for r.at(pos) != ')' {
			if r.at(pos) == 0 {
				return r.fail(pos)
			}
			param, err := v.VisitParameterType()
			if err != nil {
				return err
			}
			if pos, err = r.parseType(pos, param); err != nil {
				return err
			}
		}
		ret, err := v.VisitReturnType()
		if err != nil {
			return err
		}
		if pos, err = r.parseType(pos+1, ret); err != nil {
			return err
		}
		for pos < len(sig) {
			if r.at(pos) != '^' {
				return r.fail(pos)
			}
			exception, err := v.VisitExceptionType()
			if err != nil {
				return err
			}
			if pos, err = r.parseType(pos+1, exception); err != nil {
				return err
			}
		}
		return nil
	}
	super, err := v.VisitSuperclass()
	if err != nil {
		return err
	}
	if pos, err = r.parseType(pos, super); err != nil {
		return err
	}
	for pos < len(sig) {
		itf, err := v.VisitInterface()
		if err != nil {
			return err
		}
		if pos, err = r.parseType(pos, itf); err != nil {
			return err
		}
	}
	return nil
}

// AcceptTypeSignature drives v with the events of a field type signature.
func AcceptTypeSignature(sig string, v SignatureVisitor) error {
	r := sigReader{sig: sig}
	pos, err := r.parseType(0, v)
	if err != nil {
		return err
	}
	if pos != len(sig) {
		return r.fail(pos)
	}
	return nil
}

type sigReader struct {
	sig string
}

func (r *sigReader) at(pos int) byte {
	if pos >= 0 && pos < len(r.sig) {
		return r.sig[pos]
	}
	return 0
}

func (r *sigReader) fail(pos int) error {
	return illegalArgument("%s: error at index %d", r.sig, pos)
}

// indexFrom returns the index of c at or after pos, or -1.
func (r *sigReader) indexFrom(c byte, pos int) int {
	if pos > len(r.sig) {
		return -1
	}
	i := strings.IndexByte(r.sig[pos:], c)
	if i < 0 {
		return -1
	}
	return pos + i
}

// parseType visits the type signature starting at pos and returns the position after it.
func (r *sigReader) parseType(pos int, v SignatureVisitor) (int, error) {
	v = signatureOrDiscard(v)
	c := r.at(pos)
	pos++
	switch c {
	case 'Z', 'C', 'B', 'S', 'I', 'F', 'J', 'D', 'V':
		return pos, v.VisitBaseType(c)
	case '[':
		elem, err := v.VisitArrayType()
		if err != nil {
			return 0, err
		}
		return r.parseType(pos, elem)
	case 'T':
		end := r.indexFrom(';', pos)
		if end < 0 {
			return 0, r.fail(pos)
		}
		return end + 1, v.VisitTypeVariable(r.sig[pos:end])
	case 'L':
		start := pos
		visited := false
		inner := false
		for {
			c = r.at(pos)
			pos++
			switch c {
			case 0:
				return 0, r.fail(pos - 1)
			case '.', ';':
				if !visited {
					if err := r.visitName(v, r.sig[start:pos-1], inner); err != nil {
						return 0, err
					}
				}
				if c == ';' {
					return pos, v.VisitEnd()
				}
				start = pos
				visited = false
				inner = true
			case '<':
				if err := r.visitName(v, r.sig[start:pos-1], inner); err != nil {
					return 0, err
				}
				visited = true
				for r.at(pos) != '>' {
					var err error
					switch arg := r.at(pos); arg {
					case 0:
						return 0, r.fail(pos)
					case '*':
						pos++
						err = v.VisitTypeArgument()
					case '+', '-':
						var bound SignatureVisitor
						if bound, err = v.VisitWildcardTypeArgument(arg); err == nil {
							pos, err = r.parseType(pos+1, bound)
						}
					default:
						var bound SignatureVisitor
						if bound, err = v.VisitWildcardTypeArgument('='); err == nil {
							pos, err = r.parseType(pos, bound)
						}
					}
					if err != nil {
						return 0, err
					}
				}
			}
		}
	default:
		return 0, r.fail(pos - 1)
	}
}

func (r *sigReader) visitName(v SignatureVisitor, name string, inner bool) error {
	if inner {
		return v.VisitInnerClassType(name)
	}
	return v.VisitClassType(name)
}
