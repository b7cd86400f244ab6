package go_javad

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrOutOfBounds is matched by analysis failures caused by maxStack or maxLocals being too small.
var ErrOutOfBounds = errors.New("index out of range")

// Analyzer checks the recorded code of a method. It returns the operand stack height before each
// instruction, -1 for instructions it did not reach, along with the failure, if any.
// The heights are returned even on failure, for diagnostics.
type Analyzer interface {
	Analyze(body *MethodBody) ([]int, error)
}

// MethodBody is the code of a method, recorded by a MethodChecker in data flow mode.
type MethodBody struct {
	Access    int
	Name      string
	Desc      string
	Insns     []Insn
	TryCatch  []TryCatchBlock
	MaxStack  int
	MaxLocals int
	Labels    map[Label]int // instruction index of every label declared in the method
}

// Insn is one recorded instruction. Only the fields used by its opcode are set.
type Insn struct {
	Opcode      int
	Operand     int    // int operand, local variable index, switch min or dimension count
	Operand2    int    // iinc increment or switch max
	Owner       string // field or method owner
	Name        string
	Desc        string // descriptor, or the internal name of a type instruction
	IsInterface bool
	Label       Label   // jump target or switch default
	Labels      []Label // switch targets
	Keys        []int   // lookupswitch keys
	Value       any     // ldc constant
	Bsm         Handle
	BsmArgs     []any
}

// TryCatchBlock is an exception handler range.
type TryCatchBlock struct {
	Start, End, Handler Label
	Type                string
}

func (insn Insn) String() string {
	name := OpcodeName(insn.Opcode)
	switch OpcodeKind(insn.Opcode) {
	case PlainInsn:
		return name
	case IntInsn:
		if insn.Opcode == NEWARRAY {
			return name + " " + ArrayTypeName(insn.Operand)
		}
		return fmt.Sprintf("%s %d", name, insn.Operand)
	case VarInsn:
		return fmt.Sprintf("%s %d", name, insn.Operand)
	case TypeInsn:
		return name + " " + insn.Desc
	case FieldInsn:
		return fmt.Sprintf("%s %s.%s : %s", name, insn.Owner, insn.Name, insn.Desc)
	case MethodInsn:
		s := fmt.Sprintf("%s %s.%s %s", name, insn.Owner, insn.Name, insn.Desc)
		if insn.IsInterface {
			s += " itf"
		}
		return s
	case JumpInsn:
		return name + " " + insn.Label.String()
	}
	switch insn.Opcode {
	case LDC:
		return name + " " + ConstantString(insn.Value)
	case IINC:
		return fmt.Sprintf("%s %d %d", name, insn.Operand, insn.Operand2)
	case TABLESWITCH:
		return fmt.Sprintf("%s %d %d default:%s %s", name, insn.Operand, insn.Operand2, insn.Label, joinLabels(insn.Labels))
	case LOOKUPSWITCH:
		pairs := make([]string, len(insn.Keys))
		for i, key := range insn.Keys {
			if i < len(insn.Labels) {
				pairs[i] = fmt.Sprintf("%d:%s", key, insn.Labels[i])
			}
		}
		return fmt.Sprintf("%s default:%s %s", name, insn.Label, strings.Join(pairs, " "))
	case INVOKEDYNAMIC:
		s := fmt.Sprintf("%s %s %s %s", name, insn.Name, insn.Desc, insn.Bsm)
		for _, arg := range insn.BsmArgs {
			s += " " + ConstantString(arg)
		}
		return s
	case MULTIANEWARRAY:
		return fmt.Sprintf("%s %s %d", name, insn.Desc, insn.Operand)
	}
	return name
}

func joinLabels(labels []Label) string {
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.String()
	}
	return strings.Join(names, " ")
}

// ConstantString formats an ldc constant the way it is written in replay scripts.
func ConstantString(value any) string {
	switch v := value.(type) {
	case int32:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%dL", v)
	case float32:
		return fmt.Sprintf("%gF", v)
	case float64:
		return fmt.Sprintf("%gD", v)
	case string:
		return fmt.Sprintf("%q", v)
	case Type:
		if v.Sort() == SortMethod {
			return "methodtype " + v.Descriptor()
		}
		return "class " + v.Descriptor()
	case Handle:
		return "handle " + v.String()
	case ConstantDynamic:
		return "condy " + v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// AnalyzerError is a failure of the analysis at one instruction.
type AnalyzerError struct {
	Index int // instruction index, -1 when the failure is not tied to an instruction
	Msg   string
	Err   error // ErrOutOfBounds for insufficient maxStack or maxLocals
}

func (e *AnalyzerError) Error() string {
	if e.Index < 0 {
		return e.Msg
	}
	return fmt.Sprintf("Error at instruction %d: %s", e.Index, e.Msg)
}

func (e *AnalyzerError) Unwrap() error {
	return e.Err
}

// StackAnalyzer computes the operand stack height, in slots, before every instruction by
// propagating heights along the control flow graph of the method. It fails on stack underflow,
// on heights or local indices beyond maxStack and maxLocals, on two paths merging with different
// heights, and when execution can fall off the end of the code.
type StackAnalyzer struct{}

func (StackAnalyzer) Analyze(body *MethodBody) ([]int, error) {
	n := len(body.Insns)
	heights := make([]int, n)
	for i := range heights {
		heights[i] = -1
	}
	if n == 0 {
		return heights, nil
	}
	if args := ArgumentsAndReturnSizes(body.Desc) >> 2; body.Access&ACC_STATIC != 0 && args-1 > body.MaxLocals || body.Access&ACC_STATIC == 0 && args > body.MaxLocals {
		return heights, &AnalyzerError{Index: -1, Msg: "Insufficient maximum locals for the method arguments", Err: ErrOutOfBounds}
	}
	a := stackAnalysis{body: body, heights: heights}
	if err := a.merge(-1, 0, 0); err != nil {
		return heights, err
	}
	for len(a.queue) > 0 {
		i := a.queue[len(a.queue)-1]
		a.queue = a.queue[:len(a.queue)-1]
		if err := a.step(i); err != nil {
			return heights, err
		}
	}
	return heights, nil
}

type stackAnalysis struct {
	body    *MethodBody
	heights []int
	queue   []int
}

// merge records height at instruction target, reached from instruction from.
func (a *stackAnalysis) merge(from, target, height int) error {
	if target >= len(a.heights) {
		return &AnalyzerError{Index: from, Msg: "Execution can fall off the end of the code"}
	}
	switch a.heights[target] {
	case -1:
		a.heights[target] = height
		a.queue = append(a.queue, target)
	case height:
	default:
		return &AnalyzerError{Index: target, Msg: fmt.Sprintf("Incompatible stack heights %d and %d", a.heights[target], height)}
	}
	return nil
}

func (a *stackAnalysis) position(from int, label Label) (int, error) {
	index, ok := a.body.Labels[label]
	if !ok {
		return 0, &AnalyzerError{Index: from, Msg: fmt.Sprintf("Undefined label %s", label)}
	}
	return index, nil
}

func (a *stackAnalysis) step(i int) error {
	insn := a.body.Insns[i]
	height := a.heights[i]

	for _, tc := range a.body.TryCatch {
		start, err := a.position(i, tc.Start)
		if err != nil {
			return err
		}
		end, err := a.position(i, tc.End)
		if err != nil {
			return err
		}
		if i < start || i >= end {
			continue
		}
		handler, err := a.position(i, tc.Handler)
		if err != nil {
			return err
		}
		if err := a.merge(i, handler, 1); err != nil {
			return err
		}
	}

	if err := a.checkLocals(i, insn); err != nil {
		return err
	}
	pop, push := stackEffect(insn)
	if height < pop {
		return &AnalyzerError{Index: i, Msg: "Cannot pop operand off an empty stack."}
	}
	next := height - pop + push
	if next > a.body.MaxStack {
		return &AnalyzerError{Index: i, Msg: "Insufficient maximum stack size.", Err: ErrOutOfBounds}
	}

	switch op := insn.Opcode; {
	case op >= IRETURN && op <= RETURN || op == ATHROW || op == RET:
		return nil
	case op == GOTO:
		target, err := a.position(i, insn.Label)
		if err != nil {
			return err
		}
		return a.merge(i, target, next)
	case op == JSR:
		target, err := a.position(i, insn.Label)
		if err != nil {
			return err
		}
		if err := a.merge(i, target, next); err != nil {
			return err
		}
		return a.merge(i, i+1, height)
	case OpcodeKind(op) == JumpInsn:
		target, err := a.position(i, insn.Label)
		if err != nil {
			return err
		}
		if err := a.merge(i, target, next); err != nil {
			return err
		}
	case op == TABLESWITCH || op == LOOKUPSWITCH:
		for _, l := range append([]Label{insn.Label}, insn.Labels...) {
			target, err := a.position(i, l)
			if err != nil {
				return err
			}
			if err := a.merge(i, target, next); err != nil {
				return err
			}
		}
		return nil
	}
	return a.merge(i, i+1, next)
}

func (a *stackAnalysis) checkLocals(i int, insn Insn) error {
	var index, size int
	switch op := insn.Opcode; {
	case op == LLOAD || op == DLOAD || op == LSTORE || op == DSTORE:
		index, size = insn.Operand, 2
	case OpcodeKind(op) == VarInsn || op == IINC:
		index, size = insn.Operand, 1
	default:
		return nil
	}
	if index+size > a.body.MaxLocals {
		return &AnalyzerError{Index: i, Msg: fmt.Sprintf("Trying to access an inexistant local variable %d", index), Err: ErrOutOfBounds}
	}
	return nil
}

// plainStackEffects holds the slots popped and pushed by the instructions without operands.
var plainStackEffects = func() map[int][2]int {
	m := map[int][2]int{
		NOP: {0, 0}, ACONST_NULL: {0, 1},
		LCONST_0: {0, 2}, LCONST_1: {0, 2}, DCONST_0: {0, 2}, DCONST_1: {0, 2},
		IALOAD: {2, 1}, LALOAD: {2, 2}, FALOAD: {2, 1}, DALOAD: {2, 2}, AALOAD: {2, 1}, BALOAD: {2, 1}, CALOAD: {2, 1}, SALOAD: {2, 1},
		IASTORE: {3, 0}, LASTORE: {4, 0}, FASTORE: {3, 0}, DASTORE: {4, 0}, AASTORE: {3, 0}, BASTORE: {3, 0}, CASTORE: {3, 0}, SASTORE: {3, 0},
		POP: {1, 0}, POP2: {2, 0}, DUP: {1, 2}, DUP_X1: {2, 3}, DUP_X2: {3, 4}, DUP2: {2, 4}, DUP2_X1: {3, 5}, DUP2_X2: {4, 6}, SWAP: {2, 2},
		INEG: {1, 1}, LNEG: {2, 2}, FNEG: {1, 1}, DNEG: {2, 2},
		ISHL: {2, 1}, LSHL: {3, 2}, ISHR: {2, 1}, LSHR: {3, 2}, IUSHR: {2, 1}, LUSHR: {3, 2},
		IAND: {2, 1}, LAND: {4, 2}, IOR: {2, 1}, LOR: {4, 2}, IXOR: {2, 1}, LXOR: {4, 2},
		I2L: {1, 2}, I2F: {1, 1}, I2D: {1, 2}, L2I: {2, 1}, L2F: {2, 1}, L2D: {2, 2}, F2I: {1, 1}, F2L: {1, 2}, F2D: {1, 2},
		D2I: {2, 1}, D2L: {2, 2}, D2F: {2, 1}, I2B: {1, 1}, I2C: {1, 1}, I2S: {1, 1},
		LCMP: {4, 1}, FCMPL: {2, 1}, FCMPG: {2, 1}, DCMPL: {4, 1}, DCMPG: {4, 1},
		IRETURN: {1, 0}, LRETURN: {2, 0}, FRETURN: {1, 0}, DRETURN: {2, 0}, ARETURN: {1, 0}, RETURN: {0, 0},
		ARRAYLENGTH: {1, 1}, ATHROW: {1, 0}, MONITORENTER: {1, 0}, MONITOREXIT: {1, 0},
	}
	for op := ICONST_M1; op <= ICONST_5; op++ {
		m[op] = [2]int{0, 1}
	}
	for op := FCONST_0; op <= FCONST_2; op++ {
		m[op] = [2]int{0, 1}
	}
	// IADD..DREM cycle through int, long, float and double operands.
	for op := IADD; op <= DREM; op++ {
		if (op-IADD)%4 == 1 || (op-IADD)%4 == 3 {
			m[op] = [2]int{4, 2}
		} else {
			m[op] = [2]int{2, 1}
		}
	}
	return m
}()

// stackEffect returns the number of slots an instruction pops and pushes.
func stackEffect(insn Insn) (pop, push int) {
	op := insn.Opcode
	if e, ok := plainStackEffects[op]; ok {
		return e[0], e[1]
	}
	switch op {
	case BIPUSH, SIPUSH:
		return 0, 1
	case NEWARRAY, ANEWARRAY, CHECKCAST, INSTANCEOF:
		return 1, 1
	case NEW:
		return 0, 1
	case ILOAD, FLOAD, ALOAD:
		return 0, 1
	case LLOAD, DLOAD:
		return 0, 2
	case ISTORE, FSTORE, ASTORE:
		return 1, 0
	case LSTORE, DSTORE:
		return 2, 0
	case RET, IINC, GOTO:
		return 0, 0
	case JSR:
		return 0, 1
	case IFEQ, IFNE, IFLT, IFGE, IFGT, IFLE, IFNULL, IFNONNULL, TABLESWITCH, LOOKUPSWITCH:
		return 1, 0
	case IF_ICMPEQ, IF_ICMPNE, IF_ICMPLT, IF_ICMPGE, IF_ICMPGT, IF_ICMPLE, IF_ACMPEQ, IF_ACMPNE:
		return 2, 0
	case LDC:
		return 0, constantSize(insn.Value)
	case GETSTATIC:
		return 0, TypeOf(insn.Desc).Size()
	case PUTSTATIC:
		return TypeOf(insn.Desc).Size(), 0
	case GETFIELD:
		return 1, TypeOf(insn.Desc).Size()
	case PUTFIELD:
		return 1 + TypeOf(insn.Desc).Size(), 0
	case INVOKEVIRTUAL, INVOKESPECIAL, INVOKEINTERFACE:
		sizes := ArgumentsAndReturnSizes(insn.Desc)
		return sizes >> 2, sizes & 3
	case INVOKESTATIC, INVOKEDYNAMIC:
		sizes := ArgumentsAndReturnSizes(insn.Desc)
		return sizes>>2 - 1, sizes & 3
	case MULTIANEWARRAY:
		return insn.Operand, 1
	}
	return 0, 0
}

func constantSize(value any) int {
	switch v := value.(type) {
	case int64, float64:
		return 2
	case ConstantDynamic:
		return v.Size()
	default:
		return 1
	}
}

// DumpFrames renders the analysis result of body: one line per instruction with its index,
// the stack height before it ("?" when unreached) and the instruction text.
func DumpFrames(body *MethodBody, heights []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s\n", body.Name, body.Desc)
	labelsAt := make(map[int][]Label)
	for label, index := range body.Labels {
		labelsAt[index] = append(labelsAt[index], label)
	}
	for i, insn := range body.Insns {
		height := "?"
		if i < len(heights) && heights[i] >= 0 {
			height = fmt.Sprintf("%d", heights[i])
		}
		prefix := ""
		if labels := labelsAt[i]; len(labels) > 0 {
			slices.Sort(labels)
			prefix = joinLabels(labels) + ": "
		}
		fmt.Fprintf(&b, "%05d %3s : %s%s\n", i, height, prefix, insn)
	}
	for _, tc := range body.TryCatch {
		fmt.Fprintf(&b, " TRYCATCHBLOCK %s %s %s %s\n", tc.Start, tc.End, tc.Handler, tc.Type)
	}
	return b.String()
}
