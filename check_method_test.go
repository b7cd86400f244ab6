package go_javad

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingMethod records the calls that reach it.
type recordingMethod struct {
	MethodVisitor
	calls []string
}

func newRecordingMethod() *recordingMethod {
	return &recordingMethod{MethodVisitor: DiscardMethod}
}

func (r *recordingMethod) VisitCode() error {
	r.calls = append(r.calls, "code")
	return nil
}

func (r *recordingMethod) VisitInsn(opcode int) error {
	r.calls = append(r.calls, OpcodeName(opcode))
	return nil
}

func (r *recordingMethod) VisitIntInsn(opcode, operand int) error {
	r.calls = append(r.calls, fmt.Sprintf("%s %d", OpcodeName(opcode), operand))
	return nil
}

func (r *recordingMethod) VisitLabel(label Label) error {
	r.calls = append(r.calls, label.String())
	return nil
}

func (r *recordingMethod) VisitMaxs(maxStack, maxLocals int) error {
	r.calls = append(r.calls, fmt.Sprintf("maxs %d %d", maxStack, maxLocals))
	return nil
}

func (r *recordingMethod) VisitEnd() error {
	r.calls = append(r.calls, "end")
	return nil
}

// newCodeChecker returns a checker of a static ()V method, in code.
func newCodeChecker(t *testing.T, version int, opts ...Option) *MethodChecker {
	c := NewMethodChecker(version, ACC_PUBLIC|ACC_STATIC, "run", "()V", nil, opts...)
	require.NoError(t, c.VisitCode())
	return c
}

func integers(n int) []any {
	values := make([]any, n)
	for i := range values {
		values[i] = INTEGER
	}
	return values
}

func TestVisitFrameBounds(t *testing.T) {
	tests := []struct {
		frameType int    // frameType is the visited frame type
		numLocal  int    // numLocal is the number of locals of the frame
		numStack  int    // numStack is the number of stack values of the frame
		wantErr   string // wantErr is the expected error message, empty when the frame is accepted
	}{
		{frameType: F_SAME},
		{frameType: F_SAME, numLocal: 1, wantErr: "Invalid numLocal=1 for frame type 3"},
		{frameType: F_SAME, numStack: 1, wantErr: "Invalid numStack=1 for frame type 3"},
		{frameType: F_SAME1, numStack: 1},
		{frameType: F_SAME1, numStack: 2, wantErr: "Invalid numStack=2 for frame type 4"},
		{frameType: F_SAME1, numLocal: 1, numStack: 1, wantErr: "Invalid numLocal=1 for frame type 4"},
		{frameType: F_APPEND, numLocal: 3},
		{frameType: F_APPEND, numLocal: 4, wantErr: "Invalid numLocal=4 for frame type 1"},
		{frameType: F_APPEND, numLocal: 1, numStack: 1, wantErr: "Invalid numStack=1 for frame type 1"},
		{frameType: F_CHOP, numLocal: 3},
		{frameType: F_CHOP, numLocal: 4, wantErr: "Invalid numLocal=4 for frame type 2"},
		{frameType: F_CHOP, numLocal: 2, numStack: 1, wantErr: "Invalid numStack=1 for frame type 2"},
		{frameType: F_FULL, numLocal: 5, numStack: 5},
		{frameType: F_NEW, numLocal: 300, numStack: 300},
		{frameType: 7, wantErr: "Invalid frame type 7"},
	}

	for _, test := range tests {
		c := newCodeChecker(t, V1_8)
		err := c.VisitFrame(test.frameType, test.numLocal, integers(test.numLocal), test.numStack, integers(test.numStack))
		if test.wantErr == "" {
			require.NoError(t, err, "frame %d %d %d", test.frameType, test.numLocal, test.numStack)
			continue
		}
		require.EqualError(t, err, test.wantErr)
		require.ErrorIs(t, err, ErrIllegalArgument)
	}
}

func TestVisitFrameValues(t *testing.T) {
	tests := []struct {
		local   []any  // local is the local array of a full frame
		wantErr string // wantErr is the expected error message, empty when the frame is accepted
	}{
		{local: []any{TOP, INTEGER, FLOAT, DOUBLE, LONG, NULL, UNINITIALIZED_THIS}},
		{local: []any{"java/lang/String", "[I"}},
		{local: []any{FrameTag(9)}, wantErr: "Invalid stack frame value: FrameTag(9)"},
		{local: []any{"java.lang.String"}, wantErr: "Invalid stack frame value (must be an internal class name): java.lang.String"},
		{local: []any{42}, wantErr: "Invalid stack frame value: 42"},
	}

	for _, test := range tests {
		c := newCodeChecker(t, V1_8)
		err := c.VisitFrame(F_FULL, len(test.local), test.local, 0, nil)
		if test.wantErr == "" {
			require.NoError(t, err)
			continue
		}
		require.EqualError(t, err, test.wantErr)
	}

	require.EqualError(t, newCodeChecker(t, V1_8).VisitFrame(F_FULL, 2, integers(1), 0, nil), "Array local[] is shorter than numLocal")
	require.EqualError(t, newCodeChecker(t, V1_8).VisitFrame(F_FULL, 0, nil, 1, nil), "Array stack[] is shorter than numStack")
}

func TestVisitFrameOrder(t *testing.T) {
	c := newCodeChecker(t, V1_8)
	require.NoError(t, c.VisitFrame(F_SAME, 0, nil, 0, nil))
	err := c.VisitFrame(F_SAME, 0, nil, 0, nil)
	require.EqualError(t, err, "At most one frame can be visited at a given code location.")
	require.ErrorIs(t, err, ErrIllegalState)

	c = newCodeChecker(t, V1_8)
	require.NoError(t, c.VisitFrame(F_NEW, 0, nil, 0, nil))
	require.NoError(t, c.VisitInsn(NOP))
	require.EqualError(t, c.VisitFrame(F_SAME, 0, nil, 0, nil), "Expanded and compressed frames must not be mixed.")

	// An uninitialized value designates the label of its NEW instruction.
	c = newCodeChecker(t, V1_8)
	l := c.Labels().NewLabel()
	require.NoError(t, c.VisitFrame(F_SAME1, 0, nil, 1, []any{l}))
	require.NoError(t, c.VisitInsn(RETURN))
	require.EqualError(t, c.VisitMaxs(1, 0), "Undefined label used")
}

func TestMethodPhases(t *testing.T) {
	instructions := []struct {
		name  string                       // name of the visit call
		visit func(c *MethodChecker) error // visit makes the call on a checker
	}{
		{"visitInsn", func(c *MethodChecker) error { return c.VisitInsn(NOP) }},
		{"visitIntInsn", func(c *MethodChecker) error { return c.VisitIntInsn(BIPUSH, 1) }},
		{"visitVarInsn", func(c *MethodChecker) error { return c.VisitVarInsn(ILOAD, 0) }},
		{"visitTypeInsn", func(c *MethodChecker) error { return c.VisitTypeInsn(NEW, "java/lang/Object") }},
		{"visitFieldInsn", func(c *MethodChecker) error { return c.VisitFieldInsn(GETSTATIC, "A", "f", "I") }},
		{"visitMethodInsn", func(c *MethodChecker) error { return c.VisitMethodInsn(INVOKESTATIC, "A", "m", "()V", false) }},
		{"visitJumpInsn", func(c *MethodChecker) error { return c.VisitJumpInsn(GOTO, c.Labels().NewLabel()) }},
		{"visitLabel", func(c *MethodChecker) error { return c.VisitLabel(c.Labels().NewLabel()) }},
		{"visitLdcInsn", func(c *MethodChecker) error { return c.VisitLdcInsn(int32(1)) }},
		{"visitIincInsn", func(c *MethodChecker) error { return c.VisitIincInsn(0, 1) }},
		{"visitMultiANewArrayInsn", func(c *MethodChecker) error { return c.VisitMultiANewArrayInsn("[[I", 2) }},
		{"visitFrame", func(c *MethodChecker) error { return c.VisitFrame(F_SAME, 0, nil, 0, nil) }},
		{"visitMaxs", func(c *MethodChecker) error { return c.VisitMaxs(0, 0) }},
	}

	for _, insn := range instructions {
		before := NewMethodChecker(V1_8, ACC_STATIC, "run", "()V", nil)
		err := insn.visit(before)
		require.EqualError(t, err, "Cannot visit instructions before visitCode has been called.", insn.name)
		require.ErrorIs(t, err, ErrIllegalState)

		after := newCodeChecker(t, V1_8)
		require.NoError(t, after.VisitMaxs(0, 0))
		err = insn.visit(after)
		require.EqualError(t, err, "Cannot visit instructions after visitMaxs has been called.", insn.name)
		require.ErrorIs(t, err, ErrIllegalState)
	}
}

func TestVisitCode(t *testing.T) {
	abstract := NewMethodChecker(V1_8, ACC_PUBLIC|ACC_ABSTRACT, "run", "()V", nil)
	err := abstract.VisitCode()
	require.EqualError(t, err, "Abstract methods cannot have code")
	require.ErrorIs(t, err, ErrUnsupported)

	c := newCodeChecker(t, V1_8)
	require.EqualError(t, c.VisitCode(), "visitCode can be called only once.")

	c = newCodeChecker(t, V1_8)
	require.NoError(t, c.VisitInsn(RETURN))
	require.NoError(t, c.VisitMaxs(0, 0))
	require.NoError(t, c.VisitEnd())
	require.EqualError(t, c.VisitEnd(), "Cannot visit elements after visitEnd has been called.")
	require.EqualError(t, c.VisitParameter("x", 0), "Cannot visit elements after visitEnd has been called.")
}

func TestTryCatchBlockRange(t *testing.T) {
	tests := []struct {
		body    []int  // body holds the opcodes between the start and end labels
		wantErr string // wantErr is the expected visitMaxs error, empty when the range is accepted
	}{
		{body: []int{NOP}},
		{body: []int{NOP, NOP}},
		{body: nil, wantErr: "Empty try catch block handler range"},
	}

	for _, test := range tests {
		c := newCodeChecker(t, V1_8)
		start, end, handler := c.Labels().NewLabel(), c.Labels().NewLabel(), c.Labels().NewLabel()
		require.NoError(t, c.VisitTryCatchBlock(start, end, handler, "java/lang/Exception"))
		require.NoError(t, c.VisitLabel(start))
		for _, op := range test.body {
			require.NoError(t, c.VisitInsn(op))
		}
		require.NoError(t, c.VisitLabel(end))
		require.NoError(t, c.VisitInsn(RETURN))
		require.NoError(t, c.VisitLabel(handler))
		require.NoError(t, c.VisitInsn(ATHROW))

		err := c.VisitMaxs(1, 0)
		if test.wantErr == "" {
			require.NoError(t, err)
			continue
		}
		require.EqualError(t, err, test.wantErr)
		require.ErrorIs(t, err, ErrIllegalState)
	}
}

func TestTryCatchBlockOrder(t *testing.T) {
	c := newCodeChecker(t, V1_8)
	start, end, handler := c.Labels().NewLabel(), c.Labels().NewLabel(), c.Labels().NewLabel()
	require.NoError(t, c.VisitLabel(start))
	require.EqualError(t, c.VisitTryCatchBlock(start, end, handler, ""), "Try catch blocks must be visited before their labels")
	require.EqualError(t, c.VisitTryCatchBlock(end, NoLabel, handler, ""), "Invalid end label (must not be null)")
	require.EqualError(t, c.VisitTryCatchBlock(end, handler, c.Labels().NewLabel(), "java.lang.Exception"),
		"Invalid type (must be an internal class name): java.lang.Exception")

	c = newCodeChecker(t, V1_8)
	require.NoError(t, c.VisitTryCatchBlock(start, end, handler, ""))
	require.NoError(t, c.VisitLabel(start))
	require.NoError(t, c.VisitInsn(NOP))
	require.EqualError(t, c.VisitMaxs(0, 0), "Undefined try catch block labels")
}

func TestVisitIntInsn(t *testing.T) {
	tests := []struct {
		opcode  int    // opcode is the visited opcode
		operand int    // operand is the visited operand
		wantErr string // wantErr is the expected error message, empty when the instruction is accepted
	}{
		{opcode: BIPUSH, operand: 100},
		{opcode: BIPUSH, operand: -128},
		{opcode: BIPUSH, operand: 200, wantErr: "Invalid operand (must be a signed byte): 200"},
		{opcode: BIPUSH, operand: -129, wantErr: "Invalid operand (must be a signed byte): -129"},
		{opcode: SIPUSH, operand: 32767},
		{opcode: SIPUSH, operand: 40000, wantErr: "Invalid operand (must be a signed short): 40000"},
		{opcode: NEWARRAY, operand: T_INT},
		{opcode: NEWARRAY, operand: 3, wantErr: "Invalid operand (must be an array type code T_xxx): 3"},
		{opcode: NOP, operand: 1, wantErr: "Invalid opcode: 0"},
	}

	for _, test := range tests {
		err := newCodeChecker(t, V1_8).VisitIntInsn(test.opcode, test.operand)
		if test.wantErr == "" {
			require.NoError(t, err)
			continue
		}
		require.EqualError(t, err, test.wantErr)
		require.ErrorIs(t, err, ErrIllegalArgument)
	}
}

func TestVisitLdcInsn(t *testing.T) {
	condy := ConstantDynamic{
		Name:       "answer",
		Descriptor: "I",
		Bootstrap:  Handle{Tag: H_INVOKESTATIC, Owner: "Bootstrap", Name: "answer", Desc: "(Ljava/lang/invoke/MethodHandles$Lookup;Ljava/lang/String;Ljava/lang/Class;)I"},
	}
	abs := Handle{Tag: H_INVOKESTATIC, Owner: "java/lang/Math", Name: "abs", Desc: "(I)I"}

	tests := []struct {
		version int    // version is the class file version
		value   any    // value is the ldc constant
		wantErr string // wantErr is the expected error message, empty when the constant is accepted
	}{
		{version: V1_1, value: int32(1)},
		{version: V1_1, value: "text"},
		{version: V1_1, value: int64(1)},
		{version: V1_4, value: TypeOf("Ljava/lang/String;"), wantErr: "ldc of a constant class requires at least version 1.5"},
		{version: V1_5, value: TypeOf("Ljava/lang/String;")},
		{version: V1_5, value: TypeOf("[I")},
		{version: V1_5, value: TypeOf("I"), wantErr: "Illegal LDC constant value"},
		{version: V1_6, value: MethodType("()V"), wantErr: "ldc of a method type requires at least version 1.7"},
		{version: V1_7, value: MethodType("()V")},
		{version: V1_6, value: abs, wantErr: "ldc of a Handle requires at least version 1.7"},
		{version: V1_8, value: abs},
		{version: V1_8, value: Handle{Tag: 12, Owner: "A", Name: "m", Desc: "()V"}, wantErr: "invalid handle tag 12"},
		{version: V1_8, value: condy, wantErr: "ldc of a ConstantDynamic requires at least version 11"},
		{version: V11, value: condy},
		{version: V11, value: 5, wantErr: "Invalid constant: 5"},
	}

	for _, test := range tests {
		err := newCodeChecker(t, test.version).VisitLdcInsn(test.value)
		if test.wantErr == "" {
			require.NoError(t, err, "%v", test.value)
			continue
		}
		require.EqualError(t, err, test.wantErr)
	}
}

func TestVisitTableSwitchInsn(t *testing.T) {
	c := newCodeChecker(t, V1_8)
	dflt, a, b, d := c.Labels().NewLabel(), c.Labels().NewLabel(), c.Labels().NewLabel(), c.Labels().NewLabel()

	require.NoError(t, c.VisitTableSwitchInsn(0, 2, dflt, a, b, d))
	err := c.VisitTableSwitchInsn(0, 2, dflt, a, b)
	require.EqualError(t, err, "There must be max - min + 1 labels")
	require.ErrorIs(t, err, ErrIllegalArgument)
	require.EqualError(t, c.VisitTableSwitchInsn(1, 0, dflt), "Max = 0 must be greater than or equal to min = 1")
	require.EqualError(t, c.VisitTableSwitchInsn(0, 0, NoLabel, a), "Invalid default label (must not be null)")
	require.EqualError(t, c.VisitTableSwitchInsn(0, 1, dflt, a, NoLabel), "Invalid label at index 1 (must not be null)")

	for _, l := range []Label{dflt, a, b, d} {
		require.NoError(t, c.VisitLabel(l))
		require.NoError(t, c.VisitInsn(RETURN))
	}
	require.NoError(t, c.VisitMaxs(1, 0))
}

func TestVisitLookupSwitchInsn(t *testing.T) {
	c := newCodeChecker(t, V1_8)
	dflt, a := c.Labels().NewLabel(), c.Labels().NewLabel()

	require.NoError(t, c.VisitLookupSwitchInsn(dflt, []int{7}, []Label{a}))
	require.EqualError(t, c.VisitLookupSwitchInsn(dflt, []int{7, 8}, []Label{a}), "There must be the same number of keys and labels")
	require.EqualError(t, c.VisitLookupSwitchInsn(dflt, nil, nil), "There must be the same number of keys and labels")
}

func TestVisitMemberInsns(t *testing.T) {
	tests := []struct {
		name    string                       // name describes the instruction
		version int                          // version is the class file version
		visit   func(c *MethodChecker) error // visit makes the call
		wantErr string                       // wantErr is the expected error message, empty when accepted
	}{
		{
			name:  "constructor call",
			visit: func(c *MethodChecker) error { return c.VisitMethodInsn(INVOKESPECIAL, "java/lang/Object", "<init>", "()V", false) },
		},
		{
			name:    "virtual constructor call",
			visit:   func(c *MethodChecker) error { return c.VisitMethodInsn(INVOKEVIRTUAL, "java/lang/Object", "<init>", "()V", false) },
			wantErr: "Invalid name (must be a valid unqualified name): <init>",
		},
		{
			name:    "interface call on a class",
			visit:   func(c *MethodChecker) error { return c.VisitMethodInsn(INVOKEINTERFACE, "java/util/List", "size", "()I", false) },
			wantErr: "INVOKEINTERFACE can't be used with classes",
		},
		{
			name:    "virtual call on an interface",
			visit:   func(c *MethodChecker) error { return c.VisitMethodInsn(INVOKEVIRTUAL, "java/util/List", "size", "()I", true) },
			wantErr: "INVOKEVIRTUAL can't be used with interfaces",
		},
		{
			name:    "special interface call before Java 8",
			version: V1_7,
			visit:   func(c *MethodChecker) error { return c.VisitMethodInsn(INVOKESPECIAL, "java/util/List", "size", "()I", true) },
			wantErr: "INVOKESPECIAL can't be used with interfaces prior to Java 8",
		},
		{
			name:  "special interface call",
			visit: func(c *MethodChecker) error { return c.VisitMethodInsn(INVOKESPECIAL, "java/util/List", "size", "()I", true) },
		},
		{
			name:    "method opcode on a field call",
			visit:   func(c *MethodChecker) error { return c.VisitFieldInsn(INVOKESTATIC, "A", "f", "I") },
			wantErr: "Invalid opcode: 184",
		},
		{
			name:    "field with a bad descriptor",
			visit:   func(c *MethodChecker) error { return c.VisitFieldInsn(GETFIELD, "A", "f", "Q") },
			wantErr: "Invalid descriptor: Q",
		},
		{
			name:    "new array with NEW",
			visit:   func(c *MethodChecker) error { return c.VisitTypeInsn(NEW, "[I") },
			wantErr: "NEW cannot be used to create arrays: [I",
		},
		{
			name:  "array of arrays",
			visit: func(c *MethodChecker) error { return c.VisitTypeInsn(ANEWARRAY, "[I") },
		},
		{
			name:    "local index out of range",
			visit:   func(c *MethodChecker) error { return c.VisitVarInsn(ALOAD, 70000) },
			wantErr: "Invalid local variable index (must be an unsigned short): 70000",
		},
		{
			name:    "increment out of range",
			visit:   func(c *MethodChecker) error { return c.VisitIincInsn(1, 40000) },
			wantErr: "Invalid increment (must be a signed short): 40000",
		},
		{
			name:    "too many dimensions",
			visit:   func(c *MethodChecker) error { return c.VisitMultiANewArrayInsn("[[I", 3) },
			wantErr: "Invalid dimensions (must not be greater than number of dimensions of the descriptor): 3",
		},
		{
			name:    "no dimension",
			visit:   func(c *MethodChecker) error { return c.VisitMultiANewArrayInsn("[[I", 0) },
			wantErr: "Invalid dimensions (must be greater than 0): 0",
		},
		{
			name:    "multianewarray of a non array",
			visit:   func(c *MethodChecker) error { return c.VisitMultiANewArrayInsn("I", 1) },
			wantErr: "Invalid descriptor (must be an array type descriptor): I",
		},
		{
			name: "invokedynamic",
			visit: func(c *MethodChecker) error {
				bsm := Handle{Tag: H_INVOKESTATIC, Owner: "Bootstrap", Name: "link", Desc: "()Ljava/lang/invoke/CallSite;"}
				return c.VisitInvokeDynamicInsn("run", "()Ljava/lang/Runnable;", bsm, int32(1), "x")
			},
		},
		{
			name: "invokedynamic with a field handle",
			visit: func(c *MethodChecker) error {
				return c.VisitInvokeDynamicInsn("run", "()V", Handle{Tag: H_GETSTATIC, Owner: "A", Name: "f", Desc: "I"})
			},
			wantErr: "invalid handle tag 2",
		},
	}

	for _, test := range tests {
		version := test.version
		if version == 0 {
			version = V1_8
		}
		err := test.visit(newCodeChecker(t, version))
		if test.wantErr == "" {
			require.NoError(t, err, test.name)
			continue
		}
		require.EqualError(t, err, test.wantErr, test.name)
	}
}

func TestLocalVariablesAndLines(t *testing.T) {
	c := newCodeChecker(t, V1_8)
	start, end, unknown := c.Labels().NewLabel(), c.Labels().NewLabel(), c.Labels().NewLabel()
	require.NoError(t, c.VisitLabel(start))
	require.NoError(t, c.VisitInsn(NOP))
	require.NoError(t, c.VisitLabel(end))

	require.NoError(t, c.VisitLocalVariable("i", "I", "", start, end, 0))
	require.NoError(t, c.VisitLocalVariable("list", "Ljava/util/List;", "Ljava/util/List<TT;>;", start, end, 1))
	require.EqualError(t, c.VisitLocalVariable("i", "I", "", end, start, 0),
		"Invalid start and end labels (end must be greater than start)")
	require.EqualError(t, c.VisitLocalVariable("i", "I", "", start, unknown, 0), "Invalid end label (must be visited first)")
	require.EqualError(t, c.VisitLocalVariable("i", "I", "I", start, end, 0), "I: 'T' expected at index 0")

	require.NoError(t, c.VisitLineNumber(12, start))
	require.EqualError(t, c.VisitLineNumber(12, unknown), "Invalid start label (must be visited first)")
	require.EqualError(t, c.VisitLineNumber(-1, start), "Invalid line number (must be an unsigned short): -1")
}

func TestLabelsAreScopedToTheirMethod(t *testing.T) {
	arena := NewLabelArena()
	first := NewMethodChecker(V1_8, ACC_STATIC, "first", "()V", nil, WithLabels(arena))
	second := NewMethodChecker(V1_8, ACC_STATIC, "second", "()V", nil, WithLabels(arena))
	require.Same(t, arena, first.Labels())

	l := arena.NewLabel()
	require.NoError(t, first.VisitCode())
	require.NoError(t, first.VisitLabel(l))
	require.NoError(t, first.VisitInsn(RETURN))
	require.NoError(t, first.VisitMaxs(0, 0))

	require.NoError(t, second.VisitCode())
	require.NoError(t, second.VisitJumpInsn(GOTO, l))
	require.EqualError(t, second.VisitMaxs(0, 0), "Undefined label used")

	// Labels are declared once in the arena they come from.
	third := NewMethodChecker(V1_8, ACC_STATIC, "third", "()V", nil, WithLabels(arena))
	require.NoError(t, third.VisitCode())
	require.EqualError(t, third.VisitLabel(l), "Already visited label")
}

func TestMethodCheckerForwardsOnce(t *testing.T) {
	next := newRecordingMethod()
	c := NewMethodChecker(V1_8, ACC_STATIC, "run", "()V", next)
	l := c.Labels().NewLabel()

	require.NoError(t, c.VisitCode())
	require.NoError(t, c.VisitLabel(l))
	require.NoError(t, c.VisitIntInsn(BIPUSH, 100))
	require.Error(t, c.VisitIntInsn(BIPUSH, 200))
	require.NoError(t, c.VisitInsn(POP))
	require.NoError(t, c.VisitInsn(RETURN))
	require.NoError(t, c.VisitMaxs(1, 0))
	require.NoError(t, c.VisitEnd())

	require.Equal(t, []string{"code", "L1", "bipush 100", "pop", "return", "maxs 1 0", "end"}, next.calls)
}

func TestMethodParameters(t *testing.T) {
	c := NewMethodChecker(V1_8, 0, "run", "(I)V", nil)
	require.NoError(t, c.VisitParameter("count", ACC_FINAL))
	require.NoError(t, c.VisitParameter("", ACC_SYNTHETIC))
	require.EqualError(t, c.VisitParameter("a.b", 0), "Invalid name (must not contain . ; [ or /): a.b")
	require.EqualError(t, c.VisitParameter("count", ACC_PUBLIC), "Invalid access flags: 1")
	require.EqualError(t, c.VisitAttribute(nil), "Invalid attribute (must not be null)")
	require.NoError(t, c.VisitAttribute(&RawAttribute{Name: "Custom"}))

	av, err := c.VisitAnnotationDefault()
	require.NoError(t, err)
	require.NoError(t, av.Visit("", int32(1)))
	require.NoError(t, av.VisitEnd())
}

func TestDataFlow(t *testing.T) {
	type insn struct {
		opcode  int // opcode is a plain, int, var or jump opcode
		operand int // operand is the int or var operand, or the index of the jump label
	}

	tests := []struct {
		name      string // name describes the method body
		desc      string // desc is the descriptor of the static method
		labels    int    // labels is the number of labels the body uses
		body      []any  // body holds insn values and Label indices declared in place, as int
		maxStack  int    // maxStack passed to visitMaxs
		maxLocals int    // maxLocals passed to visitMaxs
		wantErr   string // wantErr is the expected prefix of the visitEnd error, empty when the body is accepted
	}{
		{
			name:     "returns a constant",
			desc:     "()I",
			body:     []any{insn{opcode: ICONST_1}, insn{opcode: IRETURN}},
			maxStack: 1,
		},
		{
			name:      "branches",
			desc:      "(I)I",
			labels:    1,
			body:      []any{insn{opcode: ILOAD}, insn{opcode: IFEQ}, insn{opcode: ICONST_1}, insn{opcode: IRETURN}, 0, insn{opcode: ICONST_0}, insn{opcode: IRETURN}},
			maxStack:  1,
			maxLocals: 1,
		},
		{
			name:     "pops an empty stack",
			desc:     "()V",
			body:     []any{insn{opcode: POP}, insn{opcode: RETURN}},
			maxStack: 1,
			wantErr:  "Error at instruction 0: Cannot pop operand off an empty stack.",
		},
		{
			name:     "falls off the end",
			desc:     "()V",
			body:     []any{insn{opcode: ICONST_0}},
			maxStack: 1,
			wantErr:  "Error at instruction 0: Execution can fall off the end of the code",
		},
		{
			name:      "merges different heights",
			desc:      "(I)V",
			labels:    1,
			body:      []any{insn{opcode: ILOAD}, insn{opcode: IFEQ}, insn{opcode: ICONST_0}, 0, insn{opcode: RETURN}},
			maxStack:  1,
			maxLocals: 1,
			wantErr:   "Error at instruction 3: Incompatible stack heights 0 and 1",
		},
		{
			name:      "reads a missing local",
			desc:      "()V",
			body:      []any{insn{opcode: ILOAD, operand: 2}, insn{opcode: RETURN}},
			maxStack:  1,
			maxLocals: 1,
			wantErr:   "Error at instruction 0: Trying to access an inexistant local variable 2",
		},
		{
			name:    "has no maxs",
			desc:    "()V",
			body:    []any{insn{opcode: ICONST_0}, insn{opcode: RETURN}},
			wantErr: "Data flow checking option requires valid, non zero maxLocals and maxStack.",
		},
	}

	for _, test := range tests {
		var diagnostics bytes.Buffer
		c := NewMethodChecker(V1_8, ACC_STATIC, "run", test.desc, nil, WithDataFlow(nil), WithDiagnostics(&diagnostics))
		labels := make([]Label, test.labels)
		for i := range labels {
			labels[i] = c.Labels().NewLabel()
		}
		require.NoError(t, c.VisitCode())
		for _, item := range test.body {
			switch item := item.(type) {
			case int:
				require.NoError(t, c.VisitLabel(labels[item]))
			case insn:
				var err error
				switch OpcodeKind(item.opcode) {
				case VarInsn:
					err = c.VisitVarInsn(item.opcode, item.operand)
				case JumpInsn:
					err = c.VisitJumpInsn(item.opcode, labels[item.operand])
				default:
					err = c.VisitInsn(item.opcode)
				}
				require.NoError(t, err, test.name)
			}
		}
		require.NoError(t, c.VisitMaxs(test.maxStack, test.maxLocals), test.name)

		err := c.VisitEnd()
		if test.wantErr == "" {
			require.NoError(t, err, test.name)
			require.Empty(t, diagnostics.String())
			continue
		}
		require.Error(t, err, test.name)
		require.ErrorIs(t, err, ErrIllegalArgument)
		require.Contains(t, err.Error(), test.wantErr, test.name)
	}
}

func TestDataFlowDiagnostics(t *testing.T) {
	var diagnostics bytes.Buffer
	c := NewMethodChecker(V1_8, ACC_STATIC, "run", "()V", nil, WithDataFlow(StackAnalyzer{}), WithDiagnostics(&diagnostics))
	require.NoError(t, c.VisitCode())
	require.NoError(t, c.VisitInsn(POP))
	require.NoError(t, c.VisitInsn(RETURN))
	require.NoError(t, c.VisitMaxs(1, 0))

	err := c.VisitEnd()
	require.Error(t, err)
	want := "run()V\n" +
		"00000   0 : pop\n" +
		"00001   ? : return\n"
	require.Equal(t, want, diagnostics.String())
	require.Contains(t, err.Error(), want)
}

func TestDataFlowOutOfBounds(t *testing.T) {
	c := NewMethodChecker(V1_8, ACC_STATIC, "run", "()V", nil, WithDataFlow(nil))
	require.NoError(t, c.VisitCode())
	require.NoError(t, c.VisitInsn(ICONST_0))
	require.NoError(t, c.VisitInsn(RETURN))
	require.NoError(t, c.VisitMaxs(0, 0))

	err := c.VisitEnd()
	require.EqualError(t, err, "Data flow checking option requires valid, non zero maxLocals and maxStack.")
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestVisitInsnAnnotation(t *testing.T) {
	tests := []struct {
		typeRef int    // typeRef is the type reference of the annotation
		wantErr string // wantErr is the expected error message, empty when the annotation is valid
	}{
		{typeRef: NewTypeRef(INSTANCEOF_REF, 0)},
		{typeRef: NewTypeRef(NEW_REF, 0)},
		{typeRef: NewTypeRef(CAST, 1)},
		{typeRef: NewTypeRef(INSTANCEOF, 0), wantErr: "Invalid type reference sort 0xc1"},
		{typeRef: NewTypeRef(LOCAL_VARIABLE, 0), wantErr: "Invalid type reference sort 0x40"},
	}

	for _, test := range tests {
		_, err := newCodeChecker(t, V1_8).VisitInsnAnnotation(test.typeRef, "", "Lcom/example/Tag;", true)
		if test.wantErr == "" {
			require.NoError(t, err, typeRefString(test.typeRef))
			continue
		}
		require.EqualError(t, err, test.wantErr)
		require.ErrorIs(t, err, ErrIllegalArgument)
	}
}
