package go_javad

import (
	"fmt"
	"io"
	"strings"
)

// printer writes one line per visit call, indented by the nesting depth of the visitor.
type printer struct {
	w     io.Writer
	depth int
}

func (p *printer) child() *printer {
	return &printer{w: p.w, depth: p.depth + 1}
}

func (p *printer) print(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", p.depth), fmt.Sprintf(format, args...))
	return err
}

func accessString(access int, kind AccessKind) string {
	names := AccessNames(access, kind)
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}

func optional(key, value string) string {
	if value == "" {
		return ""
	}
	return " " + key + " " + value
}

func visibility(visible bool) string {
	if visible {
		return "visible"
	}
	return "invisible"
}

// ClassTracer prints every call it receives to a writer, then forwards it to the next visitor.
// The members it returns trace into the same writer, one level deeper.
type ClassTracer struct {
	p    *printer
	next ClassVisitor
}

func NewClassTracer(w io.Writer, next ClassVisitor) *ClassTracer {
	return &ClassTracer{p: &printer{w: w}, next: classOrDiscard(next)}
}

func (t *ClassTracer) Visit(version, acc int, name, signature, superName string, interfaces []string) error {
	if err := t.p.print("class %s %s %s%s%s%s", VersionName(version), accessString(acc, ClassAccess), name,
		optional("extends", superName), optional("implements", strings.Join(interfaces, ",")),
		optional("signature", signature)); err != nil {
		return err
	}
	return t.next.Visit(version, acc, name, signature, superName, interfaces)
}

func (t *ClassTracer) VisitSource(source, debug string) error {
	if err := t.p.print("source %s%s", source, optional("debug", debug)); err != nil {
		return err
	}
	return t.next.VisitSource(source, debug)
}

func (t *ClassTracer) VisitModule(name string, acc int, version string) (ModuleVisitor, error) {
	if err := t.p.print("module %s %s%s", name, accessString(acc, ModuleAccess), optional("version", version)); err != nil {
		return nil, err
	}
	next, err := t.next.VisitModule(name, acc, version)
	if err != nil {
		return nil, err
	}
	return &ModuleTracer{p: t.p.child(), next: moduleOrDiscard(next)}, nil
}

func (t *ClassTracer) VisitNestHost(nestHost string) error {
	if err := t.p.print("nesthost %s", nestHost); err != nil {
		return err
	}
	return t.next.VisitNestHost(nestHost)
}

func (t *ClassTracer) VisitOuterClass(owner, name, desc string) error {
	if err := t.p.print("outerclass %s%s%s", owner, optional("method", name), optional("desc", desc)); err != nil {
		return err
	}
	return t.next.VisitOuterClass(owner, name, desc)
}

func (t *ClassTracer) VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("annotation %s %s", desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitAnnotation(desc, visible))
}

func (t *ClassTracer) VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("typeannotation %s %q %s %s", typeRefString(typeRef), string(typePath), desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitTypeAnnotation(typeRef, typePath, desc, visible))
}

func (t *ClassTracer) VisitAttribute(attr Attribute) error {
	if err := t.p.print("attribute %s", attributeType(attr)); err != nil {
		return err
	}
	return t.next.VisitAttribute(attr)
}

func (t *ClassTracer) VisitNestMember(nestMember string) error {
	if err := t.p.print("nestmember %s", nestMember); err != nil {
		return err
	}
	return t.next.VisitNestMember(nestMember)
}

func (t *ClassTracer) VisitPermittedSubclass(permittedSubclass string) error {
	if err := t.p.print("permittedsubclass %s", permittedSubclass); err != nil {
		return err
	}
	return t.next.VisitPermittedSubclass(permittedSubclass)
}

func (t *ClassTracer) VisitInnerClass(name, outerName, innerName string, acc int) error {
	if err := t.p.print("innerclass %s %s%s%s", accessString(acc, InnerClassAccess), name,
		optional("outer", outerName), optional("inner", innerName)); err != nil {
		return err
	}
	return t.next.VisitInnerClass(name, outerName, innerName, acc)
}

func (t *ClassTracer) VisitRecordComponent(name, desc, signature string) (RecordComponentVisitor, error) {
	if err := t.p.print("recordcomponent %s %s%s", name, desc, optional("signature", signature)); err != nil {
		return nil, err
	}
	next, err := t.next.VisitRecordComponent(name, desc, signature)
	if err != nil {
		return nil, err
	}
	return &memberTracer{p: t.p.child(), next: recordComponentOrDiscard(next)}, nil
}

func (t *ClassTracer) VisitField(acc int, name, desc, signature string, value any) (FieldVisitor, error) {
	line := fmt.Sprintf("field %s %s %s%s", accessString(acc, FieldAccess), name, desc, optional("signature", signature))
	if value != nil {
		line += " = " + ConstantString(value)
	}
	if err := t.p.print("%s", line); err != nil {
		return nil, err
	}
	next, err := t.next.VisitField(acc, name, desc, signature, value)
	if err != nil {
		return nil, err
	}
	return &memberTracer{p: t.p.child(), next: fieldOrDiscard(next)}, nil
}

func (t *ClassTracer) VisitMethod(acc int, name, desc, signature string, exceptions []string) (MethodVisitor, error) {
	if err := t.p.print("method %s %s%s%s%s", accessString(acc, MethodAccess), name, desc,
		optional("signature", signature), optional("throws", strings.Join(exceptions, ","))); err != nil {
		return nil, err
	}
	next, err := t.next.VisitMethod(acc, name, desc, signature, exceptions)
	if err != nil {
		return nil, err
	}
	return &MethodTracer{p: t.p.child(), next: methodOrDiscard(next)}, nil
}

func (t *ClassTracer) VisitEnd() error {
	if err := t.p.print("end"); err != nil {
		return err
	}
	return t.next.VisitEnd()
}

// annotation wraps the child visitor returned by next in a tracer one level deeper.
func (p *printer) annotation(next AnnotationVisitor, err error) (AnnotationVisitor, error) {
	if err != nil {
		return nil, err
	}
	return &AnnotationTracer{p: p.child(), next: annotationOrDiscard(next)}, nil
}

func attributeType(attr Attribute) string {
	if attr == nil {
		return "<nil>"
	}
	return attr.Type()
}

// memberTracer traces fields and record components, which share the same visitor methods.
type memberTracer struct {
	p    *printer
	next FieldVisitor
}

func (t *memberTracer) VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("annotation %s %s", desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitAnnotation(desc, visible))
}

func (t *memberTracer) VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("typeannotation %s %q %s %s", typeRefString(typeRef), string(typePath), desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitTypeAnnotation(typeRef, typePath, desc, visible))
}

func (t *memberTracer) VisitAttribute(attr Attribute) error {
	if err := t.p.print("attribute %s", attributeType(attr)); err != nil {
		return err
	}
	return t.next.VisitAttribute(attr)
}

func (t *memberTracer) VisitEnd() error {
	if err := t.p.print("end"); err != nil {
		return err
	}
	return t.next.VisitEnd()
}

// MethodTracer prints method calls. Instructions are printed the way DumpFrames prints them.
type MethodTracer struct {
	p    *printer
	next MethodVisitor
}

func NewMethodTracer(w io.Writer, next MethodVisitor) *MethodTracer {
	return &MethodTracer{p: &printer{w: w}, next: methodOrDiscard(next)}
}

func (t *MethodTracer) insn(insn Insn, forward func() error) error {
	if err := t.p.print("%s", insn); err != nil {
		return err
	}
	return forward()
}

func (t *MethodTracer) VisitParameter(name string, acc int) error {
	if err := t.p.print("parameter %s %s", name, accessString(acc, ParameterAccess)); err != nil {
		return err
	}
	return t.next.VisitParameter(name, acc)
}

func (t *MethodTracer) VisitAnnotationDefault() (AnnotationVisitor, error) {
	if err := t.p.print("annotationdefault"); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitAnnotationDefault())
}

func (t *MethodTracer) VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("annotation %s %s", desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitAnnotation(desc, visible))
}

func (t *MethodTracer) VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("typeannotation %s %q %s %s", typeRefString(typeRef), string(typePath), desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitTypeAnnotation(typeRef, typePath, desc, visible))
}

func (t *MethodTracer) VisitAnnotableParameterCount(count int, visible bool) error {
	if err := t.p.print("parametercount %d %s", count, visibility(visible)); err != nil {
		return err
	}
	return t.next.VisitAnnotableParameterCount(count, visible)
}

func (t *MethodTracer) VisitParameterAnnotation(parameter int, desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("parameterannotation %d %s %s", parameter, desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitParameterAnnotation(parameter, desc, visible))
}

func (t *MethodTracer) VisitAttribute(attr Attribute) error {
	if err := t.p.print("attribute %s", attributeType(attr)); err != nil {
		return err
	}
	return t.next.VisitAttribute(attr)
}

func (t *MethodTracer) VisitCode() error {
	if err := t.p.print("code"); err != nil {
		return err
	}
	return t.next.VisitCode()
}

func (t *MethodTracer) VisitFrame(frameType, numLocal int, local []any, numStack int, stack []any) error {
	if frameType == F_CHOP {
		if err := t.p.print("frame chop %d", numLocal); err != nil {
			return err
		}
		return t.next.VisitFrame(frameType, numLocal, local, numStack, stack)
	}
	if err := t.p.print("frame %s%s%s", FrameTypeName(frameType),
		optional("locals", frameValues(local, numLocal)), optional("stack", frameValues(stack, numStack))); err != nil {
		return err
	}
	return t.next.VisitFrame(frameType, numLocal, local, numStack, stack)
}

func frameValues(values []any, n int) string {
	if n > len(values) {
		n = len(values)
	}
	out := make([]string, n)
	for i, v := range values[:n] {
		if l, ok := v.(Label); ok {
			out[i] = "new:" + l.String()
			continue
		}
		out[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(out, " ")
}

func (t *MethodTracer) VisitInsn(opcode int) error {
	return t.insn(Insn{Opcode: opcode}, func() error { return t.next.VisitInsn(opcode) })
}

func (t *MethodTracer) VisitIntInsn(opcode, operand int) error {
	return t.insn(Insn{Opcode: opcode, Operand: operand}, func() error { return t.next.VisitIntInsn(opcode, operand) })
}

func (t *MethodTracer) VisitVarInsn(opcode, varIndex int) error {
	return t.insn(Insn{Opcode: opcode, Operand: varIndex}, func() error { return t.next.VisitVarInsn(opcode, varIndex) })
}

func (t *MethodTracer) VisitTypeInsn(opcode int, typ string) error {
	return t.insn(Insn{Opcode: opcode, Desc: typ}, func() error { return t.next.VisitTypeInsn(opcode, typ) })
}

func (t *MethodTracer) VisitFieldInsn(opcode int, owner, name, desc string) error {
	return t.insn(Insn{Opcode: opcode, Owner: owner, Name: name, Desc: desc}, func() error {
		return t.next.VisitFieldInsn(opcode, owner, name, desc)
	})
}

func (t *MethodTracer) VisitMethodInsn(opcode int, owner, name, desc string, isInterface bool) error {
	return t.insn(Insn{Opcode: opcode, Owner: owner, Name: name, Desc: desc, IsInterface: isInterface}, func() error {
		return t.next.VisitMethodInsn(opcode, owner, name, desc, isInterface)
	})
}

func (t *MethodTracer) VisitInvokeDynamicInsn(name, desc string, bsm Handle, bsmArgs ...any) error {
	return t.insn(Insn{Opcode: INVOKEDYNAMIC, Name: name, Desc: desc, Bsm: bsm, BsmArgs: bsmArgs}, func() error {
		return t.next.VisitInvokeDynamicInsn(name, desc, bsm, bsmArgs...)
	})
}

func (t *MethodTracer) VisitJumpInsn(opcode int, label Label) error {
	return t.insn(Insn{Opcode: opcode, Label: label}, func() error { return t.next.VisitJumpInsn(opcode, label) })
}

func (t *MethodTracer) VisitLabel(label Label) error {
	if err := t.p.print("%s:", label); err != nil {
		return err
	}
	return t.next.VisitLabel(label)
}

func (t *MethodTracer) VisitLdcInsn(value any) error {
	return t.insn(Insn{Opcode: LDC, Value: value}, func() error { return t.next.VisitLdcInsn(value) })
}

func (t *MethodTracer) VisitIincInsn(varIndex, increment int) error {
	return t.insn(Insn{Opcode: IINC, Operand: varIndex, Operand2: increment}, func() error {
		return t.next.VisitIincInsn(varIndex, increment)
	})
}

func (t *MethodTracer) VisitTableSwitchInsn(min, max int, dflt Label, labels ...Label) error {
	return t.insn(Insn{Opcode: TABLESWITCH, Operand: min, Operand2: max, Label: dflt, Labels: labels}, func() error {
		return t.next.VisitTableSwitchInsn(min, max, dflt, labels...)
	})
}

func (t *MethodTracer) VisitLookupSwitchInsn(dflt Label, keys []int, labels []Label) error {
	return t.insn(Insn{Opcode: LOOKUPSWITCH, Label: dflt, Keys: keys, Labels: labels}, func() error {
		return t.next.VisitLookupSwitchInsn(dflt, keys, labels)
	})
}

func (t *MethodTracer) VisitMultiANewArrayInsn(desc string, numDimensions int) error {
	return t.insn(Insn{Opcode: MULTIANEWARRAY, Desc: desc, Operand: numDimensions}, func() error {
		return t.next.VisitMultiANewArrayInsn(desc, numDimensions)
	})
}

func (t *MethodTracer) VisitInsnAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("insnannotation %s %q %s %s", typeRefString(typeRef), string(typePath), desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitInsnAnnotation(typeRef, typePath, desc, visible))
}

func (t *MethodTracer) VisitTryCatchBlock(start, end, handler Label, typ string) error {
	caught := typ
	if caught == "" {
		caught = "*"
	}
	if err := t.p.print("trycatch %s %s %s %s", start, end, handler, caught); err != nil {
		return err
	}
	return t.next.VisitTryCatchBlock(start, end, handler, typ)
}

func (t *MethodTracer) VisitTryCatchAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("trycatchannotation %s %q %s %s", typeRefString(typeRef), string(typePath), desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitTryCatchAnnotation(typeRef, typePath, desc, visible))
}

func (t *MethodTracer) VisitLocalVariable(name, desc, signature string, start, end Label, index int) error {
	if err := t.p.print("local %d %s %s %s %s%s", index, name, desc, start, end, optional("signature", signature)); err != nil {
		return err
	}
	return t.next.VisitLocalVariable(name, desc, signature, start, end, index)
}

func (t *MethodTracer) VisitLocalVariableAnnotation(typeRef int, typePath TypePath, start, end []Label, index []int, desc string, visible bool) (AnnotationVisitor, error) {
	if err := t.p.print("localannotation %s %q [%s] [%s] %v %s %s", typeRefString(typeRef), string(typePath),
		joinLabels(start), joinLabels(end), index, desc, visibility(visible)); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitLocalVariableAnnotation(typeRef, typePath, start, end, index, desc, visible))
}

func (t *MethodTracer) VisitLineNumber(line int, start Label) error {
	if err := t.p.print("line %d %s", line, start); err != nil {
		return err
	}
	return t.next.VisitLineNumber(line, start)
}

func (t *MethodTracer) VisitMaxs(maxStack, maxLocals int) error {
	if err := t.p.print("maxs %d %d", maxStack, maxLocals); err != nil {
		return err
	}
	return t.next.VisitMaxs(maxStack, maxLocals)
}

func (t *MethodTracer) VisitEnd() error {
	if err := t.p.print("end"); err != nil {
		return err
	}
	return t.next.VisitEnd()
}

// AnnotationTracer prints annotation values.
type AnnotationTracer struct {
	p    *printer
	next AnnotationVisitor
}

func (t *AnnotationTracer) Visit(name string, value any) error {
	if err := t.p.print("value %s= %s", prefix(name), annotationValueString(value)); err != nil {
		return err
	}
	return t.next.Visit(name, value)
}

func annotationValueString(value any) string {
	switch value.(type) {
	case int32, int64, float32, float64, string, Type:
		return ConstantString(value)
	}
	return fmt.Sprintf("%v", value)
}

func prefix(name string) string {
	if name == "" {
		return ""
	}
	return name + " "
}

func (t *AnnotationTracer) VisitEnum(name, desc, value string) error {
	if err := t.p.print("enum %s= %s.%s", prefix(name), desc, value); err != nil {
		return err
	}
	return t.next.VisitEnum(name, desc, value)
}

func (t *AnnotationTracer) VisitAnnotation(name, desc string) (AnnotationVisitor, error) {
	if err := t.p.print("annotation %s= %s", prefix(name), desc); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitAnnotation(name, desc))
}

func (t *AnnotationTracer) VisitArray(name string) (AnnotationVisitor, error) {
	if err := t.p.print("array %s", name); err != nil {
		return nil, err
	}
	return t.p.annotation(t.next.VisitArray(name))
}

func (t *AnnotationTracer) VisitEnd() error {
	if err := t.p.print("end"); err != nil {
		return err
	}
	return t.next.VisitEnd()
}

// ModuleTracer prints module directives.
type ModuleTracer struct {
	p    *printer
	next ModuleVisitor
}

func (t *ModuleTracer) VisitMainClass(mainClass string) error {
	if err := t.p.print("mainclass %s", mainClass); err != nil {
		return err
	}
	return t.next.VisitMainClass(mainClass)
}

func (t *ModuleTracer) VisitPackage(packaze string) error {
	if err := t.p.print("package %s", packaze); err != nil {
		return err
	}
	return t.next.VisitPackage(packaze)
}

func (t *ModuleTracer) VisitRequire(module string, acc int, version string) error {
	if err := t.p.print("requires %s %s%s", module, accessString(acc, RequiresAccess), optional("version", version)); err != nil {
		return err
	}
	return t.next.VisitRequire(module, acc, version)
}

func (t *ModuleTracer) VisitExport(packaze string, acc int, modules ...string) error {
	if err := t.p.print("exports %s %s%s", packaze, accessString(acc, ExportsAccess), optional("to", strings.Join(modules, ","))); err != nil {
		return err
	}
	return t.next.VisitExport(packaze, acc, modules...)
}

func (t *ModuleTracer) VisitOpen(packaze string, acc int, modules ...string) error {
	if err := t.p.print("opens %s %s%s", packaze, accessString(acc, ExportsAccess), optional("to", strings.Join(modules, ","))); err != nil {
		return err
	}
	return t.next.VisitOpen(packaze, acc, modules...)
}

func (t *ModuleTracer) VisitUse(service string) error {
	if err := t.p.print("uses %s", service); err != nil {
		return err
	}
	return t.next.VisitUse(service)
}

func (t *ModuleTracer) VisitProvide(service string, providers ...string) error {
	if err := t.p.print("provides %s with %s", service, strings.Join(providers, ",")); err != nil {
		return err
	}
	return t.next.VisitProvide(service, providers...)
}

func (t *ModuleTracer) VisitEnd() error {
	if err := t.p.print("end"); err != nil {
		return err
	}
	return t.next.VisitEnd()
}

// SignatureTracer prints the events of a signature walk, nesting the visitors of bounds,
// arguments and types.
type SignatureTracer struct {
	p    *printer
	next SignatureVisitor
}

func NewSignatureTracer(w io.Writer, next SignatureVisitor) *SignatureTracer {
	return &SignatureTracer{p: &printer{w: w}, next: signatureOrDiscard(next)}
}

func (t *SignatureTracer) child(event string, visit func() (SignatureVisitor, error)) (SignatureVisitor, error) {
	if err := t.p.print("%s", event); err != nil {
		return nil, err
	}
	next, err := visit()
	if err != nil {
		return nil, err
	}
	return &SignatureTracer{p: t.p.child(), next: signatureOrDiscard(next)}, nil
}

func (t *SignatureTracer) VisitFormalTypeParameter(name string) error {
	if err := t.p.print("formal %s", name); err != nil {
		return err
	}
	return t.next.VisitFormalTypeParameter(name)
}

func (t *SignatureTracer) VisitClassBound() (SignatureVisitor, error) {
	return t.child("classbound", t.next.VisitClassBound)
}

func (t *SignatureTracer) VisitInterfaceBound() (SignatureVisitor, error) {
	return t.child("interfacebound", t.next.VisitInterfaceBound)
}

func (t *SignatureTracer) VisitSuperclass() (SignatureVisitor, error) {
	return t.child("superclass", t.next.VisitSuperclass)
}

func (t *SignatureTracer) VisitInterface() (SignatureVisitor, error) {
	return t.child("interface", t.next.VisitInterface)
}

func (t *SignatureTracer) VisitParameterType() (SignatureVisitor, error) {
	return t.child("parameter", t.next.VisitParameterType)
}

func (t *SignatureTracer) VisitReturnType() (SignatureVisitor, error) {
	return t.child("return", t.next.VisitReturnType)
}

func (t *SignatureTracer) VisitExceptionType() (SignatureVisitor, error) {
	return t.child("exception", t.next.VisitExceptionType)
}

func (t *SignatureTracer) VisitBaseType(descriptor byte) error {
	if err := t.p.print("base %c", descriptor); err != nil {
		return err
	}
	return t.next.VisitBaseType(descriptor)
}

func (t *SignatureTracer) VisitTypeVariable(name string) error {
	if err := t.p.print("typevariable %s", name); err != nil {
		return err
	}
	return t.next.VisitTypeVariable(name)
}

func (t *SignatureTracer) VisitArrayType() (SignatureVisitor, error) {
	return t.child("array", t.next.VisitArrayType)
}

func (t *SignatureTracer) VisitClassType(name string) error {
	if err := t.p.print("class %s", name); err != nil {
		return err
	}
	return t.next.VisitClassType(name)
}

func (t *SignatureTracer) VisitInnerClassType(name string) error {
	if err := t.p.print("inner %s", name); err != nil {
		return err
	}
	return t.next.VisitInnerClassType(name)
}

func (t *SignatureTracer) VisitTypeArgument() error {
	if err := t.p.print("typeargument *"); err != nil {
		return err
	}
	return t.next.VisitTypeArgument()
}

func (t *SignatureTracer) VisitWildcardTypeArgument(wildcard byte) (SignatureVisitor, error) {
	return t.child(fmt.Sprintf("typeargument %c", wildcard), func() (SignatureVisitor, error) {
		return t.next.VisitWildcardTypeArgument(wildcard)
	})
}

func (t *SignatureTracer) VisitEnd() error {
	if err := t.p.print("end"); err != nil {
		return err
	}
	return t.next.VisitEnd()
}
