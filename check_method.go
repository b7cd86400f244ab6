package go_javad

import (
	"errors"
	"io"
	"math"
)

type methodPhase int

const (
	beforeCode methodPhase = iota
	inCode
	maxsSet
	ended
)

const invalidLocalIndex = "Invalid local variable index"

// MethodChecker checks the calls made to a MethodVisitor against the class file rules, then
// forwards each successful call to the next visitor exactly once.
//
// The method goes through four phases: before code, in code (after VisitCode), maxs set (after
// VisitMaxs) and ended (after VisitEnd). Instructions are only accepted in code. Labels may be
// referenced before they are declared; every reference is resolved when VisitMaxs is called.
type MethodChecker struct {
	version int
	access  int
	name    string
	desc    string
	next    MethodVisitor

	phase     methodPhase
	hasCode   bool
	insnCount int

	lastFrameInsn    int
	expandedFrames   int
	compressedFrames int

	labels     *LabelArena
	declared   map[Label]int // labels declared by this method
	referenced labelSet
	handlers   []Label // start and end label of every try catch block

	analyzer    Analyzer
	diagnostics io.Writer
	body        *MethodBody
}

// NewMethodChecker returns a checker for a method of a class of the given version.
func NewMethodChecker(version, access int, name, desc string, next MethodVisitor, opts ...Option) *MethodChecker {
	o := newOptions(opts)
	labels := o.labels
	if labels == nil {
		labels = NewLabelArena()
	}
	c := &MethodChecker{
		version:       version,
		access:        access,
		name:          name,
		desc:          desc,
		next:          methodOrDiscard(next),
		lastFrameInsn: -1,
		labels:        labels,
		declared:      make(map[Label]int),
		analyzer:      o.analyzer,
		diagnostics:   o.diagnostics,
	}
	if c.analyzer != nil {
		c.body = &MethodBody{Access: access, Name: name, Desc: desc, Labels: c.declared}
	}
	return c
}

// Labels returns the arena the checker records label positions in.
func (c *MethodChecker) Labels() *LabelArena {
	return c.labels
}

func (c *MethodChecker) VisitParameter(name string, access int) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if name != "" {
		if err := CheckUnqualifiedName(c.version, name, "name"); err != nil {
			return err
		}
	}
	if err := checkAccess(access, ACC_FINAL|ACC_MANDATED|ACC_SYNTHETIC); err != nil {
		return err
	}
	return c.next.VisitParameter(name, access)
}

func (c *MethodChecker) VisitAnnotationDefault() (AnnotationVisitor, error) {
	if err := c.checkNotEnded(); err != nil {
		return nil, err
	}
	next, err := c.next.VisitAnnotationDefault()
	if err != nil {
		return nil, err
	}
	return newValueChecker(next), nil
}

func (c *MethodChecker) VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkNotEnded(); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitAnnotation(desc, visible))
}

func (c *MethodChecker) VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkNotEnded(); err != nil {
		return nil, err
	}
	if err := checkTypeRefSort(typeRef, METHOD_TYPE_PARAMETER, METHOD_TYPE_PARAMETER_BOUND, METHOD_RETURN,
		METHOD_RECEIVER, METHOD_FORMAL_PARAMETER, THROWS); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitTypeAnnotation(typeRef, typePath, desc, visible))
}

func (c *MethodChecker) VisitAnnotableParameterCount(count int, visible bool) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	return c.next.VisitAnnotableParameterCount(count, visible)
}

func (c *MethodChecker) VisitParameterAnnotation(parameter int, desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkNotEnded(); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitParameterAnnotation(parameter, desc, visible))
}

// VisitAttribute forwards any non nil attribute. Unknown attribute types are accepted.
func (c *MethodChecker) VisitAttribute(attr Attribute) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if attr == nil {
		return illegalArgument("Invalid attribute (must not be null)")
	}
	return c.next.VisitAttribute(attr)
}

func (c *MethodChecker) VisitCode() error {
	if c.access&ACC_ABSTRACT != 0 {
		return unsupported("Abstract methods cannot have code")
	}
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if c.phase != beforeCode {
		return illegalState("visitCode can be called only once.")
	}
	c.phase = inCode
	c.hasCode = true
	return c.next.VisitCode()
}

func (c *MethodChecker) VisitFrame(frameType, numLocal int, local []any, numStack int, stack []any) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if c.insnCount == c.lastFrameInsn {
		return illegalState("At most one frame can be visited at a given code location.")
	}
	c.lastFrameInsn = c.insnCount

	var maxLocal, maxStack int
	switch frameType {
	case F_NEW, F_FULL:
		maxLocal, maxStack = math.MaxInt, math.MaxInt
	case F_SAME:
		maxLocal, maxStack = 0, 0
	case F_SAME1:
		maxLocal, maxStack = 0, 1
	case F_APPEND, F_CHOP:
		maxLocal, maxStack = 3, 0
	default:
		return illegalArgument("Invalid frame type %d", frameType)
	}
	if numLocal > maxLocal {
		return illegalArgument("Invalid numLocal=%d for frame type %d", numLocal, frameType)
	}
	if numStack > maxStack {
		return illegalArgument("Invalid numStack=%d for frame type %d", numStack, frameType)
	}
	if frameType != F_CHOP {
		if numLocal > 0 && len(local) < numLocal {
			return illegalArgument("Array local[] is shorter than numLocal")
		}
		for i := 0; i < numLocal; i++ {
			if err := c.checkFrameValue(local[i]); err != nil {
				return err
			}
		}
	}
	if numStack > 0 && len(stack) < numStack {
		return illegalArgument("Array stack[] is shorter than numStack")
	}
	for i := 0; i < numStack; i++ {
		if err := c.checkFrameValue(stack[i]); err != nil {
			return err
		}
	}
	if frameType == F_NEW {
		c.expandedFrames++
	} else {
		c.compressedFrames++
	}
	if c.expandedFrames > 0 && c.compressedFrames > 0 {
		return illegalArgument("Expanded and compressed frames must not be mixed.")
	}
	return c.next.VisitFrame(frameType, numLocal, local, numStack, stack)
}

func (c *MethodChecker) checkFrameValue(value any) error {
	switch v := value.(type) {
	case FrameTag:
		if v >= TOP && v <= UNINITIALIZED_THIS {
			return nil
		}
	case string:
		return CheckInternalName(c.version, v, "stack frame value")
	case Label:
		c.referenced.add(v)
		return nil
	}
	return illegalArgument("Invalid stack frame value: %v", value)
}

func (c *MethodChecker) VisitInsn(opcode int) error {
	if err := c.checkInsn(opcode, PlainInsn); err != nil {
		return err
	}
	return c.forwardInsn(Insn{Opcode: opcode}, func() error { return c.next.VisitInsn(opcode) })
}

func (c *MethodChecker) VisitIntInsn(opcode, operand int) error {
	if err := c.checkInsn(opcode, IntInsn); err != nil {
		return err
	}
	switch opcode {
	case BIPUSH:
		if err := checkSignedByte(operand, "Invalid operand"); err != nil {
			return err
		}
	case SIPUSH:
		if err := checkSignedShort(operand, "Invalid operand"); err != nil {
			return err
		}
	case NEWARRAY:
		if operand < T_BOOLEAN || operand > T_LONG {
			return illegalArgument("Invalid operand (must be an array type code T_xxx): %d", operand)
		}
	}
	return c.forwardInsn(Insn{Opcode: opcode, Operand: operand}, func() error { return c.next.VisitIntInsn(opcode, operand) })
}

func (c *MethodChecker) VisitVarInsn(opcode, varIndex int) error {
	if err := c.checkInsn(opcode, VarInsn); err != nil {
		return err
	}
	if err := checkUnsignedShort(varIndex, invalidLocalIndex); err != nil {
		return err
	}
	return c.forwardInsn(Insn{Opcode: opcode, Operand: varIndex}, func() error { return c.next.VisitVarInsn(opcode, varIndex) })
}

func (c *MethodChecker) VisitTypeInsn(opcode int, typ string) error {
	if err := c.checkInsn(opcode, TypeInsn); err != nil {
		return err
	}
	if err := CheckInternalName(c.version, typ, "type"); err != nil {
		return err
	}
	if opcode == NEW && typ[0] == '[' {
		return illegalArgument("NEW cannot be used to create arrays: %s", typ)
	}
	return c.forwardInsn(Insn{Opcode: opcode, Desc: typ}, func() error { return c.next.VisitTypeInsn(opcode, typ) })
}

func (c *MethodChecker) VisitFieldInsn(opcode int, owner, name, desc string) error {
	if err := c.checkInsn(opcode, FieldInsn); err != nil {
		return err
	}
	if err := CheckInternalName(c.version, owner, "owner"); err != nil {
		return err
	}
	if err := CheckUnqualifiedName(c.version, name, "name"); err != nil {
		return err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return err
	}
	insn := Insn{Opcode: opcode, Owner: owner, Name: name, Desc: desc}
	return c.forwardInsn(insn, func() error { return c.next.VisitFieldInsn(opcode, owner, name, desc) })
}

func (c *MethodChecker) VisitMethodInsn(opcode int, owner, name, desc string, isInterface bool) error {
	if err := c.checkInsn(opcode, MethodInsn); err != nil {
		return err
	}
	if opcode != INVOKESPECIAL || name != "<init>" {
		if err := CheckMethodIdentifier(c.version, name, "name"); err != nil {
			return err
		}
	}
	if err := CheckInternalName(c.version, owner, "owner"); err != nil {
		return err
	}
	if err := CheckMethodDescriptor(c.version, desc); err != nil {
		return err
	}
	switch {
	case opcode == INVOKEVIRTUAL && isInterface:
		return illegalArgument("INVOKEVIRTUAL can't be used with interfaces")
	case opcode == INVOKEINTERFACE && !isInterface:
		return illegalArgument("INVOKEINTERFACE can't be used with classes")
	case opcode == INVOKESPECIAL && isInterface && majorVersion(c.version) < V1_8:
		return illegalArgument("INVOKESPECIAL can't be used with interfaces prior to Java 8")
	}
	insn := Insn{Opcode: opcode, Owner: owner, Name: name, Desc: desc, IsInterface: isInterface}
	return c.forwardInsn(insn, func() error { return c.next.VisitMethodInsn(opcode, owner, name, desc, isInterface) })
}

func (c *MethodChecker) VisitInvokeDynamicInsn(name, desc string, bsm Handle, bsmArgs ...any) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := CheckMethodIdentifier(c.version, name, "name"); err != nil {
		return err
	}
	if err := CheckMethodDescriptor(c.version, desc); err != nil {
		return err
	}
	if bsm.Tag != H_INVOKESTATIC && bsm.Tag != H_NEWINVOKESPECIAL {
		return illegalArgument("invalid handle tag %d", bsm.Tag)
	}
	for _, arg := range bsmArgs {
		if err := c.checkLdcConstant(arg); err != nil {
			return err
		}
	}
	insn := Insn{Opcode: INVOKEDYNAMIC, Name: name, Desc: desc, Bsm: bsm, BsmArgs: bsmArgs}
	return c.forwardInsn(insn, func() error { return c.next.VisitInvokeDynamicInsn(name, desc, bsm, bsmArgs...) })
}

func (c *MethodChecker) VisitJumpInsn(opcode int, label Label) error {
	if err := c.checkInsn(opcode, JumpInsn); err != nil {
		return err
	}
	if err := c.checkLabel(label, false, "label"); err != nil {
		return err
	}
	c.referenced.add(label)
	return c.forwardInsn(Insn{Opcode: opcode, Label: label}, func() error { return c.next.VisitJumpInsn(opcode, label) })
}

func (c *MethodChecker) VisitLabel(label Label) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := c.checkLabel(label, false, "label"); err != nil {
		return err
	}
	if err := c.labels.declare(label, c.insnCount); err != nil {
		return err
	}
	c.declared[label] = c.insnCount
	return c.next.VisitLabel(label)
}

func (c *MethodChecker) VisitLdcInsn(value any) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := c.checkLdcConstant(value); err != nil {
		return err
	}
	return c.forwardInsn(Insn{Opcode: LDC, Value: value}, func() error { return c.next.VisitLdcInsn(value) })
}

func (c *MethodChecker) VisitIincInsn(varIndex, increment int) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := checkUnsignedShort(varIndex, invalidLocalIndex); err != nil {
		return err
	}
	if err := checkSignedShort(increment, "Invalid increment"); err != nil {
		return err
	}
	insn := Insn{Opcode: IINC, Operand: varIndex, Operand2: increment}
	return c.forwardInsn(insn, func() error { return c.next.VisitIincInsn(varIndex, increment) })
}

func (c *MethodChecker) VisitTableSwitchInsn(min, max int, dflt Label, labels ...Label) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if max < min {
		return illegalArgument("Max = %d must be greater than or equal to min = %d", max, min)
	}
	if err := c.checkLabel(dflt, false, "default label"); err != nil {
		return err
	}
	if len(labels) != max-min+1 {
		return illegalArgument("There must be max - min + 1 labels")
	}
	if err := c.checkSwitchLabels(labels); err != nil {
		return err
	}
	c.referenced.add(dflt)
	c.referenced.add(labels...)
	insn := Insn{Opcode: TABLESWITCH, Operand: min, Operand2: max, Label: dflt, Labels: labels}
	return c.forwardInsn(insn, func() error { return c.next.VisitTableSwitchInsn(min, max, dflt, labels...) })
}

func (c *MethodChecker) VisitLookupSwitchInsn(dflt Label, keys []int, labels []Label) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := c.checkLabel(dflt, false, "default label"); err != nil {
		return err
	}
	if keys == nil || labels == nil || len(keys) != len(labels) {
		return illegalArgument("There must be the same number of keys and labels")
	}
	if err := c.checkSwitchLabels(labels); err != nil {
		return err
	}
	c.referenced.add(dflt)
	c.referenced.add(labels...)
	insn := Insn{Opcode: LOOKUPSWITCH, Label: dflt, Keys: keys, Labels: labels}
	return c.forwardInsn(insn, func() error { return c.next.VisitLookupSwitchInsn(dflt, keys, labels) })
}

func (c *MethodChecker) checkSwitchLabels(labels []Label) error {
	for i, label := range labels {
		if label == NoLabel {
			return illegalArgument("Invalid label at index %d (must not be null)", i)
		}
	}
	return nil
}

func (c *MethodChecker) VisitMultiANewArrayInsn(desc string, numDimensions int) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return err
	}
	if desc[0] != '[' {
		return illegalArgument("Invalid descriptor (must be an array type descriptor): %s", desc)
	}
	if numDimensions < 1 {
		return illegalArgument("Invalid dimensions (must be greater than 0): %d", numDimensions)
	}
	if numDimensions > TypeOf(desc).Dimensions() {
		return illegalArgument("Invalid dimensions (must not be greater than number of dimensions of the descriptor): %d", numDimensions)
	}
	insn := Insn{Opcode: MULTIANEWARRAY, Desc: desc, Operand: numDimensions}
	return c.forwardInsn(insn, func() error { return c.next.VisitMultiANewArrayInsn(desc, numDimensions) })
}

func (c *MethodChecker) VisitInsnAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkInCode(); err != nil {
		return nil, err
	}
	if err := checkTypeRefSort(typeRef, INSTANCEOF_REF, NEW_REF, CONSTRUCTOR_REFERENCE, METHOD_REFERENCE, CAST,
		CONSTRUCTOR_INVOCATION_TYPE_ARGUMENT, METHOD_INVOCATION_TYPE_ARGUMENT,
		CONSTRUCTOR_REFERENCE_TYPE_ARGUMENT, METHOD_REFERENCE_TYPE_ARGUMENT); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitInsnAnnotation(typeRef, typePath, desc, visible))
}

func (c *MethodChecker) VisitTryCatchBlock(start, end, handler Label, typ string) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := c.checkLabel(start, false, "start label"); err != nil {
		return err
	}
	if err := c.checkLabel(end, false, "end label"); err != nil {
		return err
	}
	if err := c.checkLabel(handler, false, "handler label"); err != nil {
		return err
	}
	for _, l := range []Label{start, end, handler} {
		if _, ok := c.position(l); ok {
			return illegalState("Try catch blocks must be visited before their labels")
		}
	}
	if typ != "" {
		if err := CheckInternalName(c.version, typ, "type"); err != nil {
			return err
		}
	}
	c.handlers = append(c.handlers, start, end)
	if c.body != nil {
		c.body.TryCatch = append(c.body.TryCatch, TryCatchBlock{Start: start, End: end, Handler: handler, Type: typ})
	}
	return c.next.VisitTryCatchBlock(start, end, handler, typ)
}

func (c *MethodChecker) VisitTryCatchAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkInCode(); err != nil {
		return nil, err
	}
	if err := checkTypeRefSort(typeRef, EXCEPTION_PARAMETER); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitTryCatchAnnotation(typeRef, typePath, desc, visible))
}

func (c *MethodChecker) VisitLocalVariable(name, desc, signature string, start, end Label, index int) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := CheckUnqualifiedName(c.version, name, "name"); err != nil {
		return err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return err
	}
	if signature != "" {
		if err := CheckFieldSignature(signature); err != nil {
			return err
		}
	}
	if err := c.checkRange(start, end, index); err != nil {
		return err
	}
	return c.next.VisitLocalVariable(name, desc, signature, start, end, index)
}

func (c *MethodChecker) VisitLocalVariableAnnotation(typeRef int, typePath TypePath, start, end []Label, index []int, desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkInCode(); err != nil {
		return nil, err
	}
	if err := checkTypeRefSort(typeRef, LOCAL_VARIABLE, RESOURCE_VARIABLE); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	if start == nil || end == nil || index == nil || len(end) != len(start) || len(index) != len(start) {
		return nil, illegalArgument("Invalid start, end and index arrays (must be non null and of identical length")
	}
	for i := range start {
		if err := c.checkRange(start[i], end[i], index[i]); err != nil {
			return nil, err
		}
	}
	return checkedAnnotation(c.next.VisitLocalVariableAnnotation(typeRef, typePath, start, end, index, desc, visible))
}

// checkRange checks the scope of a local variable. Both labels must already be declared.
func (c *MethodChecker) checkRange(start, end Label, index int) error {
	if err := c.checkLabel(start, true, "start label"); err != nil {
		return err
	}
	if err := c.checkLabel(end, true, "end label"); err != nil {
		return err
	}
	if err := checkUnsignedShort(index, invalidLocalIndex); err != nil {
		return err
	}
	startIndex, _ := c.position(start)
	endIndex, _ := c.position(end)
	if endIndex < startIndex {
		return illegalArgument("Invalid start and end labels (end must be greater than start)")
	}
	return nil
}

func (c *MethodChecker) VisitLineNumber(line int, start Label) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if err := checkUnsignedShort(line, "Invalid line number"); err != nil {
		return err
	}
	if err := c.checkLabel(start, true, "start label"); err != nil {
		return err
	}
	return c.next.VisitLineNumber(line, start)
}

// VisitMaxs resolves every referenced label and checks every try catch block range.
func (c *MethodChecker) VisitMaxs(maxStack, maxLocals int) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	c.phase = maxsSet
	for _, l := range c.referenced.labels() {
		if _, ok := c.position(l); !ok {
			return illegalState("Undefined label used")
		}
	}
	for i := 0; i+1 < len(c.handlers); i += 2 {
		start, okStart := c.position(c.handlers[i])
		end, okEnd := c.position(c.handlers[i+1])
		if !okStart || !okEnd {
			return illegalState("Undefined try catch block labels")
		}
		if end <= start {
			return illegalState("Empty try catch block handler range")
		}
	}
	if err := checkUnsignedShort(maxStack, "Invalid max stack"); err != nil {
		return err
	}
	if err := checkUnsignedShort(maxLocals, "Invalid max locals"); err != nil {
		return err
	}
	if c.body != nil {
		c.body.MaxStack, c.body.MaxLocals = maxStack, maxLocals
	}
	return c.next.VisitMaxs(maxStack, maxLocals)
}

// VisitEnd ends the method. In data flow mode the recorded code is analyzed first.
func (c *MethodChecker) VisitEnd() error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	c.phase = ended
	if c.body != nil && c.hasCode {
		if err := c.checkDataFlow(); err != nil {
			return err
		}
	}
	return c.next.VisitEnd()
}

func (c *MethodChecker) checkDataFlow() error {
	heights, err := c.analyzer.Analyze(c.body)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrOutOfBounds) && c.body.MaxStack == 0 && c.body.MaxLocals == 0 {
		return wrapArgument(err, "Data flow checking option requires valid, non zero maxLocals and maxStack.")
	}
	dump := DumpFrames(c.body, heights)
	if c.diagnostics != nil {
		if _, werr := io.WriteString(c.diagnostics, dump); werr != nil {
			return werr
		}
	}
	return wrapArgument(err, "%s %s", err.Error(), dump)
}

func (c *MethodChecker) checkNotEnded() error {
	if c.phase == ended {
		return illegalState("Cannot visit elements after visitEnd has been called.")
	}
	return nil
}

func (c *MethodChecker) checkInCode() error {
	switch c.phase {
	case beforeCode:
		return illegalState("Cannot visit instructions before visitCode has been called.")
	case maxsSet:
		return illegalState("Cannot visit instructions after visitMaxs has been called.")
	case ended:
		return illegalState("Cannot visit elements after visitEnd has been called.")
	}
	return nil
}

// checkInsn checks the phase, then that opcode is visited by the call of the given kind.
func (c *MethodChecker) checkInsn(opcode int, kind InsnKind) error {
	if err := c.checkInCode(); err != nil {
		return err
	}
	if OpcodeKind(opcode) != kind {
		return illegalArgument("Invalid opcode: %d", opcode)
	}
	return nil
}

// forwardInsn records insn in data flow mode, forwards it and counts it.
func (c *MethodChecker) forwardInsn(insn Insn, forward func() error) error {
	if c.body != nil {
		c.body.Insns = append(c.body.Insns, insn)
	}
	if err := forward(); err != nil {
		return err
	}
	c.insnCount++
	return nil
}

func (c *MethodChecker) checkLabel(label Label, mustBeDeclared bool, what string) error {
	if label == NoLabel {
		return illegalArgument("Invalid %s (must not be null)", what)
	}
	if mustBeDeclared {
		if _, ok := c.position(label); !ok {
			return illegalArgument("Invalid %s (must be visited first)", what)
		}
	}
	return nil
}

func (c *MethodChecker) checkLdcConstant(value any) error {
	switch v := value.(type) {
	case Type:
		sort := v.Sort()
		if sort != SortObject && sort != SortArray && sort != SortMethod {
			return illegalArgument("Illegal LDC constant value")
		}
		if sort != SortMethod && majorVersion(c.version) < V1_5 {
			return illegalArgument("ldc of a constant class requires at least version 1.5")
		}
		if sort == SortMethod && majorVersion(c.version) < V1_7 {
			return illegalArgument("ldc of a method type requires at least version 1.7")
		}
		return nil
	case Handle:
		if majorVersion(c.version) < V1_7 {
			return illegalArgument("ldc of a Handle requires at least version 1.7")
		}
		return c.checkHandle(v)
	case ConstantDynamic:
		if majorVersion(c.version) < V11 {
			return illegalArgument("ldc of a ConstantDynamic requires at least version 11")
		}
		if err := CheckMethodIdentifier(c.version, v.Name, "constant dynamic name"); err != nil {
			return err
		}
		if err := CheckDescriptor(c.version, v.Descriptor, false); err != nil {
			return err
		}
		if err := c.checkLdcConstant(v.Bootstrap); err != nil {
			return err
		}
		for _, arg := range v.Args {
			if err := c.checkLdcConstant(arg); err != nil {
				return err
			}
		}
		return nil
	default:
		return CheckConstant(value)
	}
}

func (c *MethodChecker) checkHandle(h Handle) error {
	if h.Tag < H_GETFIELD || h.Tag > H_INVOKEINTERFACE {
		return illegalArgument("invalid handle tag %d", h.Tag)
	}
	if err := CheckInternalName(c.version, h.Owner, "handle owner"); err != nil {
		return err
	}
	if h.Tag <= H_PUTSTATIC {
		if err := CheckDescriptor(c.version, h.Desc, false); err != nil {
			return err
		}
	} else if err := CheckMethodDescriptor(c.version, h.Desc); err != nil {
		return err
	}
	if h.Name != "<init>" || h.Tag != H_NEWINVOKESPECIAL {
		if err := CheckMethodIdentifier(c.version, h.Name, "handle name"); err != nil {
			return err
		}
	}
	return nil
}

func checkSignedByte(value int, msg string) error {
	if value < math.MinInt8 || value > math.MaxInt8 {
		return illegalArgument("%s (must be a signed byte): %d", msg, value)
	}
	return nil
}

func checkSignedShort(value int, msg string) error {
	if value < math.MinInt16 || value > math.MaxInt16 {
		return illegalArgument("%s (must be a signed short): %d", msg, value)
	}
	return nil
}

func checkUnsignedShort(value int, msg string) error {
	if value < 0 || value > math.MaxUint16 {
		return illegalArgument("%s (must be an unsigned short): %d", msg, value)
	}
	return nil
}

// position returns the instruction index label was declared at in this method.
func (c *MethodChecker) position(label Label) (int, bool) {
	index, ok := c.declared[label]
	return index, ok
}
