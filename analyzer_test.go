package go_javad

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStackAnalyzer(t *testing.T) {
	tests := []struct {
		name        string          // name describes the analyzed code
		access      int             // access flags of the method
		desc        string          // desc is the method descriptor
		maxStack    int             // maxStack is the declared maximum stack size
		maxLocals   int             // maxLocals is the declared number of local variables
		insns       []Insn          // insns are the instructions of the method
		labels      map[Label]int   // labels are the label positions
		tryCatch    []TryCatchBlock // tryCatch are the exception handlers
		want        []int           // want are the expected stack heights
		wantErr     string          // wantErr is the expected error message, empty when the code is valid
		outOfBounds bool            // outOfBounds is set when the failure is caused by maxStack or maxLocals
	}{
		{
			name:      "straight line",
			access:    ACC_STATIC,
			desc:      "()V",
			maxStack:  1,
			maxLocals: 1,
			insns:     []Insn{{Opcode: ICONST_1}, {Opcode: ISTORE, Operand: 0}, {Opcode: RETURN}},
			want:      []int{0, 1, 0},
		},
		{
			name:      "conditional jump",
			access:    ACC_STATIC,
			desc:      "(I)V",
			maxStack:  1,
			maxLocals: 1,
			insns: []Insn{
				{Opcode: ILOAD, Operand: 0},
				{Opcode: IFEQ, Label: 1},
				{Opcode: IINC, Operand: 0, Operand2: 1},
				{Opcode: RETURN},
			},
			labels: map[Label]int{1: 3},
			want:   []int{0, 1, 0, 0},
		},
		{
			name:     "table switch",
			access:   ACC_STATIC,
			desc:     "()V",
			maxStack: 1,
			insns: []Insn{
				{Opcode: ICONST_0},
				{Opcode: TABLESWITCH, Operand: 0, Operand2: 1, Label: 3, Labels: []Label{1, 2}},
				{Opcode: RETURN},
				{Opcode: RETURN},
				{Opcode: RETURN},
			},
			labels: map[Label]int{1: 2, 2: 3, 3: 4},
			want:   []int{0, 1, 0, 0, 0},
		},
		{
			name:     "long arithmetic",
			access:   ACC_STATIC,
			desc:     "()V",
			maxStack: 4,
			insns: []Insn{
				{Opcode: LCONST_1},
				{Opcode: LCONST_1},
				{Opcode: LADD},
				{Opcode: POP2},
				{Opcode: RETURN},
			},
			want: []int{0, 2, 4, 2, 0},
		},
		{
			name:     "static call",
			access:   ACC_STATIC,
			desc:     "()I",
			maxStack: 2,
			insns: []Insn{
				{Opcode: ICONST_1},
				{Opcode: ICONST_2},
				{Opcode: INVOKESTATIC, Owner: "java/lang/Math", Name: "max", Desc: "(II)I"},
				{Opcode: IRETURN},
			},
			want: []int{0, 1, 2, 1},
		},
		{
			name:     "exception handler",
			access:   ACC_STATIC,
			desc:     "()V",
			maxStack: 1,
			insns:    []Insn{{Opcode: NOP}, {Opcode: RETURN}, {Opcode: ATHROW}},
			labels:   map[Label]int{1: 0, 2: 1, 3: 2},
			tryCatch: []TryCatchBlock{{Start: 1, End: 2, Handler: 3, Type: "java/lang/Exception"}},
			want:     []int{0, 0, 1},
		},
		{
			name:   "empty code",
			access: ACC_STATIC,
			desc:   "()V",
			want:   []int{},
		},
		{
			name:    "stack underflow",
			access:  ACC_STATIC,
			desc:    "()V",
			insns:   []Insn{{Opcode: POP}, {Opcode: RETURN}},
			want:    []int{0, -1},
			wantErr: "Error at instruction 0: Cannot pop operand off an empty stack.",
		},
		{
			name:     "falling off the end",
			access:   ACC_STATIC,
			desc:     "()V",
			maxStack: 1,
			insns:    []Insn{{Opcode: ICONST_1}},
			want:     []int{0},
			wantErr:  "Error at instruction 0: Execution can fall off the end of the code",
		},
		{
			name:     "incompatible heights",
			access:   ACC_STATIC,
			desc:     "()V",
			maxStack: 2,
			insns: []Insn{
				{Opcode: ICONST_0},
				{Opcode: ICONST_1},
				{Opcode: IFEQ, Label: 1},
				{Opcode: POP},
				{Opcode: RETURN},
			},
			labels:  map[Label]int{1: 4},
			want:    []int{0, 1, 2, 1, 1},
			wantErr: "Error at instruction 4: Incompatible stack heights 1 and 0",
		},
		{
			name:    "undefined label",
			access:  ACC_STATIC,
			desc:    "()V",
			insns:   []Insn{{Opcode: GOTO, Label: 9}},
			want:    []int{0},
			wantErr: "Error at instruction 0: Undefined label L9",
		},
		{
			name:        "stack overflow",
			access:      ACC_STATIC,
			desc:        "()V",
			maxStack:    1,
			insns:       []Insn{{Opcode: ICONST_1}, {Opcode: ICONST_2}, {Opcode: RETURN}},
			want:        []int{0, 1, -1},
			wantErr:     "Error at instruction 1: Insufficient maximum stack size.",
			outOfBounds: true,
		},
		{
			name:        "local out of range",
			access:      ACC_STATIC,
			desc:        "()V",
			maxStack:    2,
			maxLocals:   1,
			insns:       []Insn{{Opcode: LLOAD, Operand: 0}, {Opcode: RETURN}},
			want:        []int{0, -1},
			wantErr:     "Error at instruction 0: Trying to access an inexistant local variable 0",
			outOfBounds: true,
		},
		{
			name:        "arguments beyond maxLocals",
			desc:        "(J)V",
			maxLocals:   2,
			insns:       []Insn{{Opcode: RETURN}},
			want:        []int{-1},
			wantErr:     "Insufficient maximum locals for the method arguments",
			outOfBounds: true,
		},
	}

	for _, test := range tests {
		body := &MethodBody{
			Access:    test.access,
			Name:      "run",
			Desc:      test.desc,
			Insns:     test.insns,
			TryCatch:  test.tryCatch,
			MaxStack:  test.maxStack,
			MaxLocals: test.maxLocals,
			Labels:    test.labels,
		}
		heights, err := StackAnalyzer{}.Analyze(body)
		require.Equal(t, test.want, heights, test.name)
		if test.wantErr == "" {
			require.NoError(t, err, test.name)
			continue
		}
		require.EqualError(t, err, test.wantErr, test.name)
		var analyzerErr *AnalyzerError
		require.True(t, errors.As(err, &analyzerErr), test.name)
		require.Equal(t, test.outOfBounds, errors.Is(err, ErrOutOfBounds), test.name)
	}
}

func TestInsnString(t *testing.T) {
	bsm := Handle{Tag: H_INVOKESTATIC, Owner: "java/lang/invoke/LambdaMetafactory", Name: "metafactory", Desc: "()V"}
	tests := []struct {
		insn Insn   // insn is the formatted instruction
		want string // want is the expected text
	}{
		{Insn{Opcode: ICONST_1}, "iconst_1"},
		{Insn{Opcode: BIPUSH, Operand: 7}, "bipush 7"},
		{Insn{Opcode: NEWARRAY, Operand: T_INT}, "newarray int"},
		{Insn{Opcode: ALOAD, Operand: 0}, "aload 0"},
		{Insn{Opcode: NEW, Desc: "java/lang/Object"}, "new java/lang/Object"},
		{
			Insn{Opcode: GETSTATIC, Owner: "java/lang/System", Name: "out", Desc: "Ljava/io/PrintStream;"},
			"getstatic java/lang/System.out : Ljava/io/PrintStream;",
		},
		{
			Insn{Opcode: INVOKEINTERFACE, Owner: "java/util/List", Name: "size", Desc: "()I", IsInterface: true},
			"invokeinterface java/util/List.size ()I itf",
		},
		{Insn{Opcode: GOTO, Label: 3}, "goto L3"},
		{Insn{Opcode: LDC, Value: "hi"}, `ldc "hi"`},
		{Insn{Opcode: IINC, Operand: 1, Operand2: -1}, "iinc 1 -1"},
		{Insn{Opcode: TABLESWITCH, Operand: 0, Operand2: 1, Label: 3, Labels: []Label{1, 2}}, "tableswitch 0 1 default:L3 L1 L2"},
		{Insn{Opcode: LOOKUPSWITCH, Label: 3, Keys: []int{10, 20}, Labels: []Label{1, 2}}, "lookupswitch default:L3 10:L1 20:L2"},
		{Insn{Opcode: MULTIANEWARRAY, Desc: "[[I", Operand: 2}, "multianewarray [[I 2"},
		{
			Insn{Opcode: INVOKEDYNAMIC, Name: "run", Desc: "()Ljava/lang/Runnable;", Bsm: bsm, BsmArgs: []any{int32(1)}},
			"invokedynamic run ()Ljava/lang/Runnable; invokestatic java/lang/invoke/LambdaMetafactory.metafactory ()V 1",
		},
	}

	for _, test := range tests {
		require.Equal(t, test.want, test.insn.String())
	}
}

func TestConstantString(t *testing.T) {
	maxHandle := Handle{Tag: H_INVOKESTATIC, Owner: "java/lang/Math", Name: "max", Desc: "(II)I"}
	tests := []struct {
		value any    // value is the formatted constant
		want  string // want is the expected text
	}{
		{int32(5), "5"},
		{int64(5), "5L"},
		{float32(1.5), "1.5F"},
		{float64(2.5), "2.5D"},
		{`a"b`, `"a\"b"`},
		{ObjectType("java/lang/String"), "class Ljava/lang/String;"},
		{MethodType("()V"), "methodtype ()V"},
		{maxHandle, "handle invokestatic java/lang/Math.max (II)I"},
		{ConstantDynamic{Name: "x", Descriptor: "I", Bootstrap: maxHandle}, "condy x I invokestatic java/lang/Math.max (II)I"},
	}

	for _, test := range tests {
		require.Equal(t, test.want, ConstantString(test.value))
	}
}

func TestDumpFrames(t *testing.T) {
	body := &MethodBody{
		Name:     "run",
		Desc:     "()V",
		Insns:    []Insn{{Opcode: NOP}, {Opcode: RETURN}, {Opcode: ATHROW}},
		Labels:   map[Label]int{1: 0, 2: 1, 3: 2},
		TryCatch: []TryCatchBlock{{Start: 1, End: 2, Handler: 3, Type: "java/lang/Exception"}},
	}
	want := "run()V\n" +
		"00000   0 : L1: nop\n" +
		"00001   0 : L2: return\n" +
		"00002   ? : L3: athrow\n" +
		" TRYCATCHBLOCK L1 L2 L3 java/lang/Exception\n"
	require.Equal(t, want, DumpFrames(body, []int{0, 0, -1}))
}
