package go_javad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpcodeNames(t *testing.T) {
	require.Equal(t, "invokevirtual", OpcodeName(INVOKEVIRTUAL))
	require.Equal(t, "jsr_w", OpcodeName(JSR_W))
	require.Equal(t, "opcode(300)", OpcodeName(300))

	for op := NOP; op <= JSR_W; op++ {
		got, ok := OpcodeByName(OpcodeName(op))
		require.True(t, ok, op)
		require.Equal(t, op, got)
	}
	_, ok := OpcodeByName("bogus")
	require.False(t, ok)
}

func TestOpcodeKind(t *testing.T) {
	tests := []struct {
		opcode int      // opcode is the classified opcode
		want   InsnKind // want is the expected kind
	}{
		{NOP, PlainInsn},
		{BIPUSH, IntInsn},
		{NEWARRAY, IntInsn},
		{ILOAD, VarInsn},
		{RET, VarInsn},
		{ANEWARRAY, TypeInsn},
		{GETFIELD, FieldInsn},
		{INVOKEINTERFACE, MethodInsn},
		{IFNULL, JumpInsn},
		{LDC, NoInsn},
		{IINC, NoInsn},
		{TABLESWITCH, NoInsn},
		{INVOKEDYNAMIC, NoInsn},
		{MULTIANEWARRAY, NoInsn},
		{26, NoInsn},
		{GOTO_W, NoInsn},
		{-1, NoInsn},
	}

	for _, test := range tests {
		require.Equal(t, test.want, OpcodeKind(test.opcode), OpcodeName(test.opcode))
	}
	require.Equal(t, "visitMethodInsn", MethodInsn.String())
	require.Equal(t, "InsnKind(42)", InsnKind(42).String())
}

func TestFrameNames(t *testing.T) {
	require.Equal(t, "same1", FrameTypeName(F_SAME1))
	require.Equal(t, "new", FrameTypeName(F_NEW))
	require.Equal(t, "frame(9)", FrameTypeName(9))

	frameType, ok := FrameTypeByName("chop")
	require.True(t, ok)
	require.Equal(t, F_CHOP, frameType)
	_, ok = FrameTypeByName("bogus")
	require.False(t, ok)

	require.Equal(t, "I", INTEGER.String())
	require.Equal(t, "U", UNINITIALIZED_THIS.String())
	require.Equal(t, "FrameTag(9)", FrameTag(9).String())
}

func TestHandleAndArrayTypeNames(t *testing.T) {
	require.Equal(t, "invokestatic", HandleTagName(H_INVOKESTATIC))
	require.Equal(t, "handle(0)", HandleTagName(0))
	tag, ok := HandleTagByName("newinvokespecial")
	require.True(t, ok)
	require.Equal(t, H_NEWINVOKESPECIAL, tag)

	require.Equal(t, "boolean", ArrayTypeName(T_BOOLEAN))
	require.Equal(t, "atype(3)", ArrayTypeName(3))
	code, ok := ArrayTypeByName("long")
	require.True(t, ok)
	require.Equal(t, T_LONG, code)
	_, ok = ArrayTypeByName("")
	require.False(t, ok)
}
