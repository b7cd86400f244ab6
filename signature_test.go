package go_javad

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckSignatures(t *testing.T) {
	tests := []struct {
		kind    SignatureKind // kind selects the grammar the signature is checked against
		sig     string        // sig is the checked signature
		wantErr string        // wantErr is the expected error message, empty when the signature is valid
	}{
		{kind: ClassSignature, sig: "Ljava/lang/Object;"},
		{kind: ClassSignature, sig: "<T:Ljava/lang/Object;>Ljava/lang/Object;Ljava/lang/Comparable<TT;>;"},
		{kind: ClassSignature, sig: "<T::Ljava/lang/Comparable<TT;>;>Ljava/lang/Object;"},
		{kind: ClassSignature, sig: "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/util/AbstractMap<TK;TV;>;"},
		{kind: ClassSignature, sig: "<>Ljava/lang/Object;", wantErr: "<>Ljava/lang/Object;: identifier expected at index 1"},
		{kind: ClassSignature, sig: "Ljava/lang/Object;X", wantErr: "Ljava/lang/Object;X: error at index 18"},
		{kind: MethodSignature, sig: "(I)V"},
		{kind: MethodSignature, sig: "<T:Ljava/lang/Object;>(TT;[I)Ljava/util/List<+TT;>;^Ljava/io/IOException;^TE;"},
		{kind: MethodSignature, sig: "(I)", wantErr: "(I): 'T' expected at index 3"},
		{kind: MethodSignature, sig: "I)V", wantErr: "I)V: '(' expected at index 0"},
		{kind: MethodSignature, sig: "()V^I", wantErr: "()V^I: 'T' expected at index 4"},
		{kind: TypeSignature, sig: "TT;"},
		{kind: TypeSignature, sig: "[Ljava/lang/String;"},
		{kind: TypeSignature, sig: "Ljava/util/Map<TK;+Ljava/lang/Integer;>.Entry<*>;"},
		{kind: TypeSignature, sig: "Ljava/util/List<-[I>;"},
		{kind: TypeSignature, sig: "I", wantErr: "I: 'T' expected at index 0"},
		{kind: TypeSignature, sig: "Ljava/lang/String", wantErr: "Ljava/lang/String: ';' expected at index 17"},
		{kind: TypeSignature, sig: "TT;X", wantErr: "TT;X: error at index 3"},
		{kind: TypeSignature, sig: "Ljava/util/List<>;", wantErr: "Ljava/util/List<>;: 'T' expected at index 16"},
	}

	for _, test := range tests {
		var err error
		switch test.kind {
		case ClassSignature:
			err = CheckClassSignature(test.sig)
		case MethodSignature:
			err = CheckMethodSignature(test.sig)
		default:
			err = CheckFieldSignature(test.sig)
		}
		if test.wantErr == "" {
			require.NoError(t, err, test.sig)
			continue
		}
		require.EqualError(t, err, test.wantErr)
		require.ErrorIs(t, err, ErrIllegalArgument)
	}
}

// Every signature accepted by the grammar must drive the call order automaton without error.
func TestSignatureGrammarAndCheckerAgree(t *testing.T) {
	tests := []struct {
		kind SignatureKind // kind of the signature and of the checker
		sig  string        // sig is a valid signature
	}{
		{ClassSignature, "Ljava/lang/Object;"},
		{ClassSignature, "<T:Ljava/lang/Object;>Ljava/lang/Object;Ljava/lang/Comparable<TT;>;"},
		{ClassSignature, "<T::Ljava/lang/Comparable<TT;>;U:TT;>Ljava/lang/Object;"},
		{MethodSignature, "(I)V"},
		{MethodSignature, "<T:Ljava/lang/Object;>(TT;[I)Ljava/util/List<+TT;>;^Ljava/io/IOException;"},
		{MethodSignature, "()[[Ljava/lang/String;"},
		{TypeSignature, "TT;"},
		{TypeSignature, "[[TT;"},
		{TypeSignature, "Ljava/util/Map<TK;+Ljava/lang/Integer;>.Entry<*>;"},
	}

	for _, test := range tests {
		checker := NewSignatureChecker(test.kind, nil)
		var err error
		if test.kind == TypeSignature {
			err = AcceptTypeSignature(test.sig, checker)
		} else {
			err = AcceptSignature(test.sig, checker)
		}
		require.NoError(t, err, test.sig)
	}
}

func TestSignatureEvents(t *testing.T) {
	tests := []struct {
		kind SignatureKind // kind of the signature
		sig  string        // sig is the walked signature
		want []string      // want are the traced events
	}{
		{
			kind: MethodSignature,
			sig:  "<T:Ljava/lang/Object;>(TT;)V",
			want: []string{
				"formal T",
				"classbound",
				"  class java/lang/Object",
				"  end",
				"parameter",
				"  typevariable T",
				"return",
				"  base V",
			},
		},
		{
			kind: TypeSignature,
			sig:  "Ljava/util/Map<TK;+Ljava/lang/Integer;>.Entry<*>;",
			want: []string{
				"class java/util/Map",
				"typeargument =",
				"  typevariable K",
				"typeargument +",
				"  class java/lang/Integer",
				"  end",
				"inner Entry",
				"typeargument *",
				"end",
			},
		},
		{
			kind: ClassSignature,
			sig:  "Ljava/lang/Object;Ljava/lang/Runnable;",
			want: []string{
				"superclass",
				"  class java/lang/Object",
				"  end",
				"interface",
				"  class java/lang/Runnable",
				"  end",
			},
		},
	}

	for _, test := range tests {
		var out strings.Builder
		checker := NewSignatureChecker(test.kind, NewSignatureTracer(&out, nil))
		var err error
		if test.kind == TypeSignature {
			err = AcceptTypeSignature(test.sig, checker)
		} else {
			err = AcceptSignature(test.sig, checker)
		}
		require.NoError(t, err)
		require.Equal(t, strings.Join(test.want, "\n")+"\n", out.String())
	}
}

func TestSignatureCheckerCallOrder(t *testing.T) {
	tests := []struct {
		name    string                         // name describes the call sequence
		kind    SignatureKind                  // kind of the checker
		calls   func(v SignatureVisitor) error // calls makes the visit calls
		wantErr string                         // wantErr is the expected error message
	}{
		{
			name: "parameter in a class signature",
			kind: ClassSignature,
			calls: func(v SignatureVisitor) error {
				_, err := v.VisitParameterType()
				return err
			},
			wantErr: "visitParameterType is not allowed in a class signature",
		},
		{
			name: "parameter after the return type",
			kind: MethodSignature,
			calls: func(v SignatureVisitor) error {
				if _, err := v.VisitReturnType(); err != nil {
					return err
				}
				_, err := v.VisitParameterType()
				return err
			},
			wantErr: "visitParameterType is not allowed in state Return",
		},
		{
			name: "second simple type",
			kind: TypeSignature,
			calls: func(v SignatureVisitor) error {
				if err := v.VisitBaseType('I'); err != nil {
					return err
				}
				return v.VisitBaseType('I')
			},
			wantErr: "visitBaseType is not allowed in state SimpleType",
		},
		{
			name:    "end of an empty type",
			kind:    TypeSignature,
			calls:   func(v SignatureVisitor) error { return v.VisitEnd() },
			wantErr: "visitEnd is not allowed in state Empty",
		},
		{
			name: "class bound without a formal type parameter",
			kind: ClassSignature,
			calls: func(v SignatureVisitor) error {
				_, err := v.VisitClassBound()
				return err
			},
			wantErr: "visitClassBound is not allowed in state Empty",
		},
		{
			name: "exception before the return type",
			kind: MethodSignature,
			calls: func(v SignatureVisitor) error {
				_, err := v.VisitExceptionType()
				return err
			},
			wantErr: "visitExceptionType is not allowed in state Empty",
		},
	}

	for _, test := range tests {
		err := test.calls(NewSignatureChecker(test.kind, nil))
		require.EqualError(t, err, test.wantErr, test.name)
		require.ErrorIs(t, err, ErrIllegalState, test.name)
	}
}

func TestSignatureCheckerArguments(t *testing.T) {
	require.EqualError(t, NewSignatureChecker(TypeSignature, nil).VisitBaseType('V'), "Base type descriptor can't be V")
	require.EqualError(t, NewSignatureChecker(TypeSignature, nil).VisitBaseType('X'), "Base type descriptor must be one of ZCBSIFJD")
	require.EqualError(t, NewSignatureChecker(TypeSignature, nil).VisitClassType("java.lang.Object"),
		"Invalid class name (must not contain . ; [ < > or :): java.lang.Object")
	require.EqualError(t, NewSignatureChecker(TypeSignature, nil).VisitTypeVariable(""),
		"Invalid type variable (must not be null or empty)")
	require.EqualError(t, NewSignatureChecker(ClassSignature, nil).VisitFormalTypeParameter("T:"),
		"Invalid formal type parameter (must not contain . ; [ / < > or :): T:")

	checker := NewSignatureChecker(TypeSignature, nil)
	require.NoError(t, checker.VisitClassType("java/util/List"))
	_, err := checker.VisitWildcardTypeArgument('x')
	require.EqualError(t, err, "Wildcard must be one of +-=")

	method := NewSignatureChecker(MethodSignature, nil)
	ret, err := method.VisitReturnType()
	require.NoError(t, err)
	require.NoError(t, ret.VisitBaseType('V'))
}

func TestSignatureKindString(t *testing.T) {
	tests := []struct {
		kind SignatureKind // kind is the formatted kind
		want string        // want is the expected name
	}{
		{ClassSignature, "class signature"},
		{MethodSignature, "method signature"},
		{TypeSignature, "type signature"},
		{SignatureKind(7), "SignatureKind(7)"},
		{SignatureKind(-1), "SignatureKind(-1)"},
	}

	for _, test := range tests {
		require.Equal(t, test.want, test.kind.String())
	}
}

func TestSignatureCheckerUnknownKind(t *testing.T) {
	checker := NewSignatureChecker(SignatureKind(7), nil)
	err := checker.VisitFormalTypeParameter("T")
	require.EqualError(t, err, "visitFormalTypeParameter is not allowed in a SignatureKind(7)")
	require.ErrorIs(t, err, ErrIllegalState)
	require.EqualError(t, checker.VisitBaseType('I'), "visitBaseType is not allowed in a SignatureKind(7)")
}
