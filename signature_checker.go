package go_javad

import (
	"fmt"
	"strings"
)

// SignatureKind is the kind of signature a SignatureChecker accepts.
type SignatureKind int

const (
	ClassSignature SignatureKind = iota
	MethodSignature
	TypeSignature
)

var signatureKindNames = [...]string{"class signature", "method signature", "type signature"}

func (k SignatureKind) String() string {
	if k < 0 || int(k) >= len(signatureKindNames) {
		return fmt.Sprintf("SignatureKind(%d)", int(k))
	}
	return signatureKindNames[k]
}

type sigState int

const (
	sigEmpty sigState = iota
	sigFormal
	sigBound
	sigSuper
	sigParam
	sigReturn
	sigSimpleType
	sigClassType
	sigEnd
)

var sigStateNames = [...]string{"Empty", "Formal", "Bound", "Super", "Param", "Return", "SimpleType", "ClassType", "End"}

func (s sigState) String() string { return sigStateNames[s] }

type sigStates uint16

func statesOf(states ...sigState) sigStates {
	var set sigStates
	for _, s := range states {
		set |= 1 << s
	}
	return set
}

func (set sigStates) has(s sigState) bool { return set&(1<<s) != 0 }

// sigCall names the SignatureVisitor calls that move a SignatureChecker.
type sigCall int

const (
	callFormalTypeParameter sigCall = iota
	callClassBound
	callInterfaceBound
	callSuperclass
	callInterface
	callParameterType
	callReturnType
	callExceptionType
	callBaseType
	callTypeVariable
	callArrayType
	callClassType
	callInnerClassType
	callTypeArgument
	callEnd
)

type sigTransition struct {
	name  string
	kinds []SignatureKind // kinds the call is legal in
	from  sigStates       // states the call is legal in
	to    sigState        // state after the call, or -1 to keep the current state
}

// sigTransitions is the call order automaton. Each row follows a grammar production:
//
//	TypeParameters  '<' Identifier         visitFormalTypeParameter, from the start or after a previous parameter
//	                ':' ClassBound          visitClassBound, right after the identifier
//	                ':' InterfaceBound      visitInterfaceBound, after the identifier or a bound
//	ClassSignature  SuperclassSig           visitSuperclass, after the optional type parameters
//	                InterfaceSig*           visitInterface, after the superclass
//	MethodSignature '(' JavaTypeSig* ')'    visitParameterType, after the type parameters or a parameter
//	                ReturnType              visitReturnType, same states as a parameter
//	                '^' ThrowsSig           visitExceptionType, after the return type
//	JavaTypeSig     BaseType | TypeVarSig | '[' JavaTypeSig | ClassTypeSig, once on an empty type
//	ClassTypeSig    ('.' Identifier | TypeArgument)* ';' only after the class name
var sigTransitions = [...]sigTransition{
	callFormalTypeParameter: {"visitFormalTypeParameter", []SignatureKind{ClassSignature, MethodSignature}, statesOf(sigEmpty, sigFormal, sigBound), sigFormal},
	callClassBound:          {"visitClassBound", []SignatureKind{ClassSignature, MethodSignature}, statesOf(sigFormal), sigBound},
	callInterfaceBound:      {"visitInterfaceBound", []SignatureKind{ClassSignature, MethodSignature}, statesOf(sigFormal, sigBound), sigBound},
	callSuperclass:          {"visitSuperclass", []SignatureKind{ClassSignature}, statesOf(sigEmpty, sigFormal, sigBound), sigSuper},
	callInterface:           {"visitInterface", []SignatureKind{ClassSignature}, statesOf(sigSuper), -1},
	callParameterType:       {"visitParameterType", []SignatureKind{MethodSignature}, statesOf(sigEmpty, sigFormal, sigBound, sigParam), sigParam},
	callReturnType:          {"visitReturnType", []SignatureKind{MethodSignature}, statesOf(sigEmpty, sigFormal, sigBound, sigParam), sigReturn},
	callExceptionType:       {"visitExceptionType", []SignatureKind{MethodSignature}, statesOf(sigReturn), -1},
	callBaseType:            {"visitBaseType", []SignatureKind{TypeSignature}, statesOf(sigEmpty), sigSimpleType},
	callTypeVariable:        {"visitTypeVariable", []SignatureKind{TypeSignature}, statesOf(sigEmpty), sigSimpleType},
	callArrayType:           {"visitArrayType", []SignatureKind{TypeSignature}, statesOf(sigEmpty), sigSimpleType},
	callClassType:           {"visitClassType", []SignatureKind{TypeSignature}, statesOf(sigEmpty), sigClassType},
	callInnerClassType:      {"visitInnerClassType", nil, statesOf(sigClassType), -1},
	callTypeArgument:        {"visitTypeArgument", nil, statesOf(sigClassType), -1},
	callEnd:                 {"visitEnd", nil, statesOf(sigClassType), sigEnd},
}

// SignatureChecker is a SignatureVisitor that checks the order and the arguments of the calls
// it receives, then forwards them to the next visitor.
type SignatureChecker struct {
	kind      SignatureKind
	state     sigState
	canBeVoid bool
	next      SignatureVisitor
}

// NewSignatureChecker returns a checker for a signature of the given kind. A nil next discards the calls.
func NewSignatureChecker(kind SignatureKind, next SignatureVisitor) *SignatureChecker {
	return &SignatureChecker{kind: kind, next: signatureOrDiscard(next)}
}

func (c *SignatureChecker) move(call sigCall) error {
	t := sigTransitions[call]
	if t.kinds != nil {
		legal := false
		for _, k := range t.kinds {
			legal = legal || k == c.kind
		}
		if !legal {
			return illegalState("%s is not allowed in a %s", t.name, c.kind)
		}
	}
	if !t.from.has(c.state) {
		return illegalState("%s is not allowed in state %s", t.name, c.state)
	}
	if t.to >= 0 {
		c.state = t.to
	}
	return nil
}

// child wraps the visitor returned by the next visitor for a nested type signature.
func (c *SignatureChecker) child(next SignatureVisitor, err error, canBeVoid bool) (SignatureVisitor, error) {
	if err != nil {
		return nil, err
	}
	checker := NewSignatureChecker(TypeSignature, next)
	checker.canBeVoid = canBeVoid
	return checker, nil
}

func (c *SignatureChecker) VisitFormalTypeParameter(name string) error {
	if err := c.move(callFormalTypeParameter); err != nil {
		return err
	}
	if err := checkSignatureIdentifier(name, "formal type parameter"); err != nil {
		return err
	}
	return c.next.VisitFormalTypeParameter(name)
}

func (c *SignatureChecker) VisitClassBound() (SignatureVisitor, error) {
	if err := c.move(callClassBound); err != nil {
		return nil, err
	}
	next, err := c.next.VisitClassBound()
	return c.child(next, err, false)
}

func (c *SignatureChecker) VisitInterfaceBound() (SignatureVisitor, error) {
	if err := c.move(callInterfaceBound); err != nil {
		return nil, err
	}
	next, err := c.next.VisitInterfaceBound()
	return c.child(next, err, false)
}

func (c *SignatureChecker) VisitSuperclass() (SignatureVisitor, error) {
	if err := c.move(callSuperclass); err != nil {
		return nil, err
	}
	next, err := c.next.VisitSuperclass()
	return c.child(next, err, false)
}

func (c *SignatureChecker) VisitInterface() (SignatureVisitor, error) {
	if err := c.move(callInterface); err != nil {
		return nil, err
	}
	next, err := c.next.VisitInterface()
	return c.child(next, err, false)
}

func (c *SignatureChecker) VisitParameterType() (SignatureVisitor, error) {
	if err := c.move(callParameterType); err != nil {
		return nil, err
	}
	next, err := c.next.VisitParameterType()
	return c.child(next, err, false)
}

func (c *SignatureChecker) VisitReturnType() (SignatureVisitor, error) {
	if err := c.move(callReturnType); err != nil {
		return nil, err
	}
	next, err := c.next.VisitReturnType()
	return c.child(next, err, true)
}

func (c *SignatureChecker) VisitExceptionType() (SignatureVisitor, error) {
	if err := c.move(callExceptionType); err != nil {
		return nil, err
	}
	next, err := c.next.VisitExceptionType()
	return c.child(next, err, false)
}

func (c *SignatureChecker) VisitBaseType(descriptor byte) error {
	if err := c.move(callBaseType); err != nil {
		return err
	}
	if descriptor == 'V' {
		if !c.canBeVoid {
			return illegalArgument("Base type descriptor can't be V")
		}
	} else if strings.IndexByte("ZCBSIFJD", descriptor) < 0 {
		return illegalArgument("Base type descriptor must be one of ZCBSIFJD")
	}
	return c.next.VisitBaseType(descriptor)
}

func (c *SignatureChecker) VisitTypeVariable(name string) error {
	if err := c.move(callTypeVariable); err != nil {
		return err
	}
	if err := checkSignatureIdentifier(name, "type variable"); err != nil {
		return err
	}
	return c.next.VisitTypeVariable(name)
}

func (c *SignatureChecker) VisitArrayType() (SignatureVisitor, error) {
	if err := c.move(callArrayType); err != nil {
		return nil, err
	}
	next, err := c.next.VisitArrayType()
	return c.child(next, err, false)
}

func (c *SignatureChecker) VisitClassType(name string) error {
	if err := c.move(callClassType); err != nil {
		return err
	}
	if err := checkSignatureClassName(name, "class name"); err != nil {
		return err
	}
	return c.next.VisitClassType(name)
}

func (c *SignatureChecker) VisitInnerClassType(name string) error {
	if err := c.move(callInnerClassType); err != nil {
		return err
	}
	if err := checkSignatureIdentifier(name, "inner class name"); err != nil {
		return err
	}
	return c.next.VisitInnerClassType(name)
}

func (c *SignatureChecker) VisitTypeArgument() error {
	if err := c.move(callTypeArgument); err != nil {
		return err
	}
	return c.next.VisitTypeArgument()
}

func (c *SignatureChecker) VisitWildcardTypeArgument(wildcard byte) (SignatureVisitor, error) {
	if err := c.move(callTypeArgument); err != nil {
		return nil, err
	}
	if wildcard != '+' && wildcard != '-' && wildcard != '=' {
		return nil, illegalArgument("Wildcard must be one of +-=")
	}
	next, err := c.next.VisitWildcardTypeArgument(wildcard)
	return c.child(next, err, false)
}

func (c *SignatureChecker) VisitEnd() error {
	if err := c.move(callEnd); err != nil {
		return err
	}
	return c.next.VisitEnd()
}

func (c *SignatureChecker) String() string {
	return fmt.Sprintf("SignatureChecker(%s, %s)", c.kind, c.state)
}

func checkSignatureIdentifier(name, what string) error {
	if name == "" {
		return illegalArgument("%s (must not be null or empty)", invalid(what))
	}
	if strings.ContainsAny(name, ".;[/<>:") {
		return illegalArgument("%s (must not contain . ; [ / < > or :): %s", invalid(what), name)
	}
	return nil
}

func checkSignatureClassName(name, what string) error {
	if name == "" {
		return illegalArgument("%s (must not be null or empty)", invalid(what))
	}
	if strings.ContainsAny(name, ".;[<>:") {
		return illegalArgument("%s (must not contain . ; [ < > or :): %s", invalid(what), name)
	}
	return nil
}
