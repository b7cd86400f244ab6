package go_javad

import "fmt"

// JVM opcodes. Opcodes 26-45 (xLOAD_n), 59-78 (xSTORE_n), 196 (WIDE) and 200-201 (GOTO_W, JSR_W)
// only exist in the binary form; a visitor never receives them.
// See: https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-6.html
const (
	NOP             = 0
	ACONST_NULL     = 1
	ICONST_M1       = 2
	ICONST_0        = 3
	ICONST_1        = 4
	ICONST_2        = 5
	ICONST_3        = 6
	ICONST_4        = 7
	ICONST_5        = 8
	LCONST_0        = 9
	LCONST_1        = 10
	FCONST_0        = 11
	FCONST_1        = 12
	FCONST_2        = 13
	DCONST_0        = 14
	DCONST_1        = 15
	BIPUSH          = 16
	SIPUSH          = 17
	LDC             = 18
	LDC_W           = 19
	LDC2_W          = 20
	ILOAD           = 21
	LLOAD           = 22
	FLOAD           = 23
	DLOAD           = 24
	ALOAD           = 25
	IALOAD          = 46
	LALOAD          = 47
	FALOAD          = 48
	DALOAD          = 49
	AALOAD          = 50
	BALOAD          = 51
	CALOAD          = 52
	SALOAD          = 53
	ISTORE          = 54
	LSTORE          = 55
	FSTORE          = 56
	DSTORE          = 57
	ASTORE          = 58
	IASTORE         = 79
	LASTORE         = 80
	FASTORE         = 81
	DASTORE         = 82
	AASTORE         = 83
	BASTORE         = 84
	CASTORE         = 85
	SASTORE         = 86
	POP             = 87
	POP2            = 88
	DUP             = 89
	DUP_X1          = 90
	DUP_X2          = 91
	DUP2            = 92
	DUP2_X1         = 93
	DUP2_X2         = 94
	SWAP            = 95
	IADD            = 96
	LADD            = 97
	FADD            = 98
	DADD            = 99
	ISUB            = 100
	LSUB            = 101
	FSUB            = 102
	DSUB            = 103
	IMUL            = 104
	LMUL            = 105
	FMUL            = 106
	DMUL            = 107
	IDIV            = 108
	LDIV            = 109
	FDIV            = 110
	DDIV            = 111
	IREM            = 112
	LREM            = 113
	FREM            = 114
	DREM            = 115
	INEG            = 116
	LNEG            = 117
	FNEG            = 118
	DNEG            = 119
	ISHL            = 120
	LSHL            = 121
	ISHR            = 122
	LSHR            = 123
	IUSHR           = 124
	LUSHR           = 125
	IAND            = 126
	LAND            = 127
	IOR             = 128
	LOR             = 129
	IXOR            = 130
	LXOR            = 131
	IINC            = 132
	I2L             = 133
	I2F             = 134
	I2D             = 135
	L2I             = 136
	L2F             = 137
	L2D             = 138
	F2I             = 139
	F2L             = 140
	F2D             = 141
	D2I             = 142
	D2L             = 143
	D2F             = 144
	I2B             = 145
	I2C             = 146
	I2S             = 147
	LCMP            = 148
	FCMPL           = 149
	FCMPG           = 150
	DCMPL           = 151
	DCMPG           = 152
	IFEQ            = 153
	IFNE            = 154
	IFLT            = 155
	IFGE            = 156
	IFGT            = 157
	IFLE            = 158
	IF_ICMPEQ       = 159
	IF_ICMPNE       = 160
	IF_ICMPLT       = 161
	IF_ICMPGE       = 162
	IF_ICMPGT       = 163
	IF_ICMPLE       = 164
	IF_ACMPEQ       = 165
	IF_ACMPNE       = 166
	GOTO            = 167
	JSR             = 168
	RET             = 169
	TABLESWITCH     = 170
	LOOKUPSWITCH    = 171
	IRETURN         = 172
	LRETURN         = 173
	FRETURN         = 174
	DRETURN         = 175
	ARETURN         = 176
	RETURN          = 177
	GETSTATIC       = 178
	PUTSTATIC       = 179
	GETFIELD        = 180
	PUTFIELD        = 181
	INVOKEVIRTUAL   = 182
	INVOKESPECIAL   = 183
	INVOKESTATIC    = 184
	INVOKEINTERFACE = 185
	INVOKEDYNAMIC   = 186
	NEW             = 187
	NEWARRAY        = 188
	ANEWARRAY       = 189
	ARRAYLENGTH     = 190
	ATHROW          = 191
	CHECKCAST       = 192
	INSTANCEOF      = 193
	MONITORENTER    = 194
	MONITOREXIT     = 195
	WIDE            = 196
	MULTIANEWARRAY  = 197
	IFNULL          = 198
	IFNONNULL       = 199
	GOTO_W          = 200
	JSR_W           = 201
)

// Array type codes of the NEWARRAY instruction.
const (
	T_BOOLEAN = 4
	T_CHAR    = 5
	T_FLOAT   = 6
	T_DOUBLE  = 7
	T_BYTE    = 8
	T_SHORT   = 9
	T_INT     = 10
	T_LONG    = 11
)

// Method handle reference kinds.
// See: https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-5.html#jvms-5.4.3.5
const (
	H_GETFIELD         = 1
	H_GETSTATIC        = 2
	H_PUTFIELD         = 3
	H_PUTSTATIC        = 4
	H_INVOKEVIRTUAL    = 5
	H_INVOKESTATIC     = 6
	H_INVOKESPECIAL    = 7
	H_NEWINVOKESPECIAL = 8
	H_INVOKEINTERFACE  = 9
)

// Stack map frame types. F_NEW is the expanded form, the others are compressed.
const (
	F_NEW    = -1
	F_FULL   = 0
	F_APPEND = 1
	F_CHOP   = 2
	F_SAME   = 3
	F_SAME1  = 4
)

// FrameTag is a primitive verification type used in stack map frames.
type FrameTag int

const (
	TOP                FrameTag = 0
	INTEGER            FrameTag = 1
	FLOAT              FrameTag = 2
	DOUBLE             FrameTag = 3
	LONG               FrameTag = 4
	NULL               FrameTag = 5
	UNINITIALIZED_THIS FrameTag = 6
)

var frameTagNames = [...]string{"T", "I", "F", "D", "J", "N", "U"}

func (t FrameTag) String() string {
	if t >= 0 && int(t) < len(frameTagNames) {
		return frameTagNames[t]
	}
	return fmt.Sprintf("FrameTag(%d)", int(t))
}

var frameTypeNames = map[int]string{
	F_NEW:    "new",
	F_FULL:   "full",
	F_APPEND: "append",
	F_CHOP:   "chop",
	F_SAME:   "same",
	F_SAME1:  "same1",
}

// FrameTypeName returns the short name of a stack map frame type.
func FrameTypeName(frameType int) string {
	if name, ok := frameTypeNames[frameType]; ok {
		return name
	}
	return fmt.Sprintf("frame(%d)", frameType)
}

// FrameTypeByName is the reverse of FrameTypeName.
func FrameTypeByName(name string) (int, bool) {
	for frameType, n := range frameTypeNames {
		if n == name {
			return frameType, true
		}
	}
	return 0, false
}

var handleTagNames = [...]string{
	"", "getfield", "getstatic", "putfield", "putstatic",
	"invokevirtual", "invokestatic", "invokespecial", "newinvokespecial", "invokeinterface",
}

// HandleTagName returns the name of a method handle kind, e.g. "invokestatic".
func HandleTagName(tag int) string {
	if tag >= H_GETFIELD && tag <= H_INVOKEINTERFACE {
		return handleTagNames[tag]
	}
	return fmt.Sprintf("handle(%d)", tag)
}

// HandleTagByName is the reverse of HandleTagName.
func HandleTagByName(name string) (int, bool) {
	for tag := H_GETFIELD; tag <= H_INVOKEINTERFACE; tag++ {
		if handleTagNames[tag] == name {
			return tag, true
		}
	}
	return 0, false
}

// opNames is a list of the JVM operator names ordered by opcode
var opNames = [...]string{"nop", "aconst_null", "iconst_m1", "iconst_0", "iconst_1", "iconst_2", "iconst_3", "iconst_4", "iconst_5", "lconst_0", "lconst_1", "fconst_0", "fconst_1", "fconst_2", "dconst_0", "dconst_1", "bipush", "sipush", "ldc", "ldc_w", "ldc2_w", "iload", "lload", "fload", "dload", "aload", "iload_0", "iload_1", "iload_2", "iload_3", "lload_0", "lload_1", "lload_2", "lload_3", "fload_0", "fload_1", "fload_2", "fload_3", "dload_0", "dload_1", "dload_2", "dload_3", "aload_0", "aload_1", "aload_2", "aload_3", "iaload", "laload", "faload", "daload", "aaload", "baload", "caload", "saload", "istore", "lstore", "fstore", "dstore", "astore", "istore_0", "istore_1", "istore_2", "istore_3", "lstore_0", "lstore_1", "lstore_2", "lstore_3", "fstore_0", "fstore_1", "fstore_2", "fstore_3", "dstore_0", "dstore_1", "dstore_2", "dstore_3", "astore_0", "astore_1", "astore_2", "astore_3", "iastore", "lastore", "fastore", "dastore", "aastore", "bastore", "castore", "sastore", "pop", "pop2", "dup", "dup_x1", "dup_x2", "dup2", "dup2_x1", "dup2_x2", "swap", "iadd", "ladd", "fadd", "dadd", "isub", "lsub", "fsub", "dsub", "imul", "lmul", "fmul", "dmul", "idiv", "ldiv", "fdiv", "ddiv", "irem", "lrem", "frem", "drem", "ineg", "lneg", "fneg", "dneg", "ishl", "lshl", "ishr", "lshr", "iushr", "lushr", "iand", "land", "ior", "lor", "ixor", "lxor", "iinc", "i2l", "i2f", "i2d", "l2i", "l2f", "l2d", "f2i", "f2l", "f2d", "d2i", "d2l", "d2f", "i2b", "i2c", "i2s", "lcmp", "fcmpl", "fcmpg", "dcmpl", "dcmpg", "ifeq", "ifne", "iflt", "ifge", "ifgt", "ifle", "if_icmpeq", "if_icmpne", "if_icmplt", "if_icmpge", "if_icmpgt", "if_icmple", "if_acmpeq", "if_acmpne", "goto", "jsr", "ret", "tableswitch", "lookupswitch", "ireturn", "lreturn", "freturn", "dreturn", "areturn", "return", "getstatic", "putstatic", "getfield", "putfield", "invokevirtual", "invokespecial", "invokestatic", "invokeinterface", "invokedynamic", "new", "newarray", "anewarray", "arraylength", "athrow", "checkcast", "instanceof", "monitorenter", "monitorexit", "wide", "multianewarray", "ifnull", "ifnonnull", "goto_w", "jsr_w"}

var opcodesByName = func() map[string]int {
	m := make(map[string]int, len(opNames))
	for op, name := range opNames {
		m[name] = op
	}
	return m
}()

// OpcodeName returns the mnemonic of an opcode, e.g. "invokevirtual".
func OpcodeName(opcode int) string {
	if opcode >= 0 && opcode < len(opNames) {
		return opNames[opcode]
	}
	return fmt.Sprintf("opcode(%d)", opcode)
}

// OpcodeByName is the reverse of OpcodeName.
func OpcodeByName(name string) (int, bool) {
	op, ok := opcodesByName[name]
	return op, ok
}

var arrayTypeNames = [...]string{"", "", "", "", "boolean", "char", "float", "double", "byte", "short", "int", "long"}

// ArrayTypeName returns the element type name of a NEWARRAY type code.
func ArrayTypeName(code int) string {
	if code >= T_BOOLEAN && code <= T_LONG {
		return arrayTypeNames[code]
	}
	return fmt.Sprintf("atype(%d)", code)
}

// ArrayTypeByName is the reverse of ArrayTypeName.
func ArrayTypeByName(name string) (int, bool) {
	for code := T_BOOLEAN; code <= T_LONG; code++ {
		if arrayTypeNames[code] == name {
			return code, true
		}
	}
	return 0, false
}

// InsnKind tells which MethodVisitor call visits an opcode.
type InsnKind uint8

const (
	NoInsn InsnKind = iota // needs a dedicated visit call, or does not exist for visitors
	PlainInsn
	IntInsn
	VarInsn
	TypeInsn
	FieldInsn
	MethodInsn
	JumpInsn
)

var insnKindNames = [...]string{"none", "visitInsn", "visitIntInsn", "visitVarInsn", "visitTypeInsn", "visitFieldInsn", "visitMethodInsn", "visitJumpInsn"}

func (k InsnKind) String() string {
	if int(k) >= len(insnKindNames) {
		return fmt.Sprintf("InsnKind(%d)", int(k))
	}
	return insnKindNames[k]
}

// opcodeKinds maps every opcode from NOP to IFNONNULL to the visit call that accepts it.
var opcodeKinds = func() [IFNONNULL + 1]InsnKind {
	var kinds [IFNONNULL + 1]InsnKind
	set := func(kind InsnKind, from, to int) {
		for op := from; op <= to; op++ {
			kinds[op] = kind
		}
	}
	set(PlainInsn, NOP, DCONST_1)
	set(IntInsn, BIPUSH, SIPUSH)
	set(VarInsn, ILOAD, ALOAD)
	set(PlainInsn, IALOAD, SALOAD)
	set(VarInsn, ISTORE, ASTORE)
	set(PlainInsn, IASTORE, LXOR)
	set(PlainInsn, I2L, DCMPG)
	set(JumpInsn, IFEQ, JSR)
	set(VarInsn, RET, RET)
	set(PlainInsn, IRETURN, RETURN)
	set(FieldInsn, GETSTATIC, PUTFIELD)
	set(MethodInsn, INVOKEVIRTUAL, INVOKEINTERFACE)
	set(TypeInsn, NEW, NEW)
	set(IntInsn, NEWARRAY, NEWARRAY)
	set(TypeInsn, ANEWARRAY, ANEWARRAY)
	set(PlainInsn, ARRAYLENGTH, ATHROW)
	set(TypeInsn, CHECKCAST, INSTANCEOF)
	set(PlainInsn, MONITORENTER, MONITOREXIT)
	set(JumpInsn, IFNULL, IFNONNULL)
	return kinds
}()

// OpcodeKind returns the kind of opcode, NoInsn for LDC, IINC, the switches, INVOKEDYNAMIC,
// MULTIANEWARRAY and the opcodes visitors never see.
func OpcodeKind(opcode int) InsnKind {
	if opcode < NOP || opcode > IFNONNULL {
		return NoInsn
	}
	return opcodeKinds[opcode]
}
