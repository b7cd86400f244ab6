package go_javad

// The visitor interfaces describe a class the way a class file reader walks it. A producer calls
// them in class file order; checkers validate each call and forward it to the next visitor.
// Every method returns an error, and the first error ends the walk.
//
// Absent strings are passed as "". A visit method returning a nil child visitor means the
// receiver is not interested in that member.

// ClassVisitor visits a class. Visit comes first and VisitEnd last.
type ClassVisitor interface {
	Visit(version, access int, name, signature, superName string, interfaces []string) error
	VisitSource(source, debug string) error
	VisitModule(name string, access int, version string) (ModuleVisitor, error)
	VisitNestHost(nestHost string) error
	VisitOuterClass(owner, name, desc string) error
	VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error)
	VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error)
	VisitAttribute(attr Attribute) error
	VisitNestMember(nestMember string) error
	VisitPermittedSubclass(permittedSubclass string) error
	VisitInnerClass(name, outerName, innerName string, access int) error
	VisitRecordComponent(name, desc, signature string) (RecordComponentVisitor, error)
	VisitField(access int, name, desc, signature string, value any) (FieldVisitor, error)
	VisitMethod(access int, name, desc, signature string, exceptions []string) (MethodVisitor, error)
	VisitEnd() error
}

// MethodVisitor visits a method. Metadata comes first, then VisitCode, the instructions,
// VisitMaxs and finally VisitEnd.
type MethodVisitor interface {
	VisitParameter(name string, access int) error
	VisitAnnotationDefault() (AnnotationVisitor, error)
	VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error)
	VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error)
	VisitAnnotableParameterCount(count int, visible bool) error
	VisitParameterAnnotation(parameter int, desc string, visible bool) (AnnotationVisitor, error)
	VisitAttribute(attr Attribute) error
	VisitCode() error
	// VisitFrame visits a stack map frame. Local and stack values are FrameTag, internal name
	// strings, or a Label designating the NEW instruction of an uninitialized object.
	VisitFrame(frameType, numLocal int, local []any, numStack int, stack []any) error
	VisitInsn(opcode int) error
	VisitIntInsn(opcode, operand int) error
	VisitVarInsn(opcode, varIndex int) error
	VisitTypeInsn(opcode int, typ string) error
	VisitFieldInsn(opcode int, owner, name, desc string) error
	VisitMethodInsn(opcode int, owner, name, desc string, isInterface bool) error
	VisitInvokeDynamicInsn(name, desc string, bsm Handle, bsmArgs ...any) error
	VisitJumpInsn(opcode int, label Label) error
	VisitLabel(label Label) error
	VisitLdcInsn(value any) error
	VisitIincInsn(varIndex, increment int) error
	VisitTableSwitchInsn(min, max int, dflt Label, labels ...Label) error
	VisitLookupSwitchInsn(dflt Label, keys []int, labels []Label) error
	VisitMultiANewArrayInsn(desc string, numDimensions int) error
	VisitInsnAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error)
	VisitTryCatchBlock(start, end, handler Label, typ string) error
	VisitTryCatchAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error)
	VisitLocalVariable(name, desc, signature string, start, end Label, index int) error
	VisitLocalVariableAnnotation(typeRef int, typePath TypePath, start, end []Label, index []int, desc string, visible bool) (AnnotationVisitor, error)
	VisitLineNumber(line int, start Label) error
	VisitMaxs(maxStack, maxLocals int) error
	VisitEnd() error
}

// FieldVisitor visits a field.
type FieldVisitor interface {
	VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error)
	VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error)
	VisitAttribute(attr Attribute) error
	VisitEnd() error
}

// RecordComponentVisitor visits a record component.
type RecordComponentVisitor interface {
	VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error)
	VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error)
	VisitAttribute(attr Attribute) error
	VisitEnd() error
}

// AnnotationVisitor visits the values of an annotation, of an annotation array value or of an
// annotation default. Names are "" in arrays and defaults.
type AnnotationVisitor interface {
	Visit(name string, value any) error
	VisitEnum(name, desc, value string) error
	VisitAnnotation(name, desc string) (AnnotationVisitor, error)
	VisitArray(name string) (AnnotationVisitor, error)
	VisitEnd() error
}

// ModuleVisitor visits the directives of a module.
type ModuleVisitor interface {
	VisitMainClass(mainClass string) error
	VisitPackage(packaze string) error
	VisitRequire(module string, access int, version string) error
	VisitExport(packaze string, access int, modules ...string) error
	VisitOpen(packaze string, access int, modules ...string) error
	VisitUse(service string) error
	VisitProvide(service string, providers ...string) error
	VisitEnd() error
}

// SignatureVisitor visits a generic signature. A class signature is
// (VisitFormalTypeParameter VisitClassBound? VisitInterfaceBound*)* VisitSuperclass VisitInterface*,
// a method signature is
// (VisitFormalTypeParameter VisitClassBound? VisitInterfaceBound*)* VisitParameterType* VisitReturnType VisitExceptionType*,
// and a type signature is one of VisitBaseType, VisitTypeVariable, VisitArrayType or
// VisitClassType (VisitTypeArgument | VisitWildcardTypeArgument)* (VisitInnerClassType (VisitTypeArgument | VisitWildcardTypeArgument)*)* VisitEnd.
type SignatureVisitor interface {
	VisitFormalTypeParameter(name string) error
	VisitClassBound() (SignatureVisitor, error)
	VisitInterfaceBound() (SignatureVisitor, error)
	VisitSuperclass() (SignatureVisitor, error)
	VisitInterface() (SignatureVisitor, error)
	VisitParameterType() (SignatureVisitor, error)
	VisitReturnType() (SignatureVisitor, error)
	VisitExceptionType() (SignatureVisitor, error)
	VisitBaseType(descriptor byte) error
	VisitTypeVariable(name string) error
	VisitArrayType() (SignatureVisitor, error)
	VisitClassType(name string) error
	VisitInnerClassType(name string) error
	// VisitTypeArgument visits an unbounded wildcard type argument.
	VisitTypeArgument() error
	// VisitWildcardTypeArgument visits a type argument: '+' extends, '-' super or '=' instanceof.
	VisitWildcardTypeArgument(wildcard byte) (SignatureVisitor, error)
	VisitEnd() error
}

// Terminal sinks. They accept every call and return themselves as child visitors.
var (
	DiscardClass           ClassVisitor           = discardClass{}
	DiscardMethod          MethodVisitor          = discardMethod{}
	DiscardField           FieldVisitor           = discardMember{}
	DiscardRecordComponent RecordComponentVisitor = discardMember{}
	DiscardAnnotation      AnnotationVisitor      = discardAnnotation{}
	DiscardModule          ModuleVisitor          = discardModule{}
	DiscardSignature       SignatureVisitor       = discardSignature{}
)

type discardClass struct{}

func (discardClass) Visit(int, int, string, string, string, []string) error { return nil }
func (discardClass) VisitSource(string, string) error { return nil }
func (discardClass) VisitModule(string, int, string) (ModuleVisitor, error) {
	return DiscardModule, nil
}
func (discardClass) VisitNestHost(string) error { return nil }
func (discardClass) VisitOuterClass(string, string, string) error { return nil }
func (discardClass) VisitAnnotation(string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardClass) VisitTypeAnnotation(int, TypePath, string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardClass) VisitAttribute(Attribute) error { return nil }
func (discardClass) VisitNestMember(string) error { return nil }
func (discardClass) VisitPermittedSubclass(string) error { return nil }
func (discardClass) VisitInnerClass(string, string, string, int) error { return nil }
func (discardClass) VisitRecordComponent(string, string, string) (RecordComponentVisitor, error) {
	return DiscardRecordComponent, nil
}
func (discardClass) VisitField(int, string, string, string, any) (FieldVisitor, error) {
	return DiscardField, nil
}
func (discardClass) VisitMethod(int, string, string, string, []string) (MethodVisitor, error) {
	return DiscardMethod, nil
}
func (discardClass) VisitEnd() error { return nil }

type discardMethod struct{}

func (discardMethod) VisitParameter(string, int) error { return nil }
func (discardMethod) VisitAnnotationDefault() (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMethod) VisitAnnotation(string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMethod) VisitTypeAnnotation(int, TypePath, string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMethod) VisitAnnotableParameterCount(int, bool) error { return nil }
func (discardMethod) VisitParameterAnnotation(int, string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMethod) VisitAttribute(Attribute) error { return nil }
func (discardMethod) VisitCode() error { return nil }
func (discardMethod) VisitFrame(int, int, []any, int, []any) error { return nil }
func (discardMethod) VisitInsn(int) error { return nil }
func (discardMethod) VisitIntInsn(int, int) error { return nil }
func (discardMethod) VisitVarInsn(int, int) error { return nil }
func (discardMethod) VisitTypeInsn(int, string) error { return nil }
func (discardMethod) VisitFieldInsn(int, string, string, string) error { return nil }
func (discardMethod) VisitMethodInsn(int, string, string, string, bool) error { return nil }
func (discardMethod) VisitInvokeDynamicInsn(string, string, Handle, ...any) error {
	return nil
}
func (discardMethod) VisitJumpInsn(int, Label) error { return nil }
func (discardMethod) VisitLabel(Label) error { return nil }
func (discardMethod) VisitLdcInsn(any) error { return nil }
func (discardMethod) VisitIincInsn(int, int) error { return nil }
func (discardMethod) VisitTableSwitchInsn(int, int, Label, ...Label) error { return nil }
func (discardMethod) VisitLookupSwitchInsn(Label, []int, []Label) error { return nil }
func (discardMethod) VisitMultiANewArrayInsn(string, int) error { return nil }
func (discardMethod) VisitInsnAnnotation(int, TypePath, string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMethod) VisitTryCatchBlock(Label, Label, Label, string) error { return nil }
func (discardMethod) VisitTryCatchAnnotation(int, TypePath, string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMethod) VisitLocalVariable(string, string, string, Label, Label, int) error {
	return nil
}
func (discardMethod) VisitLocalVariableAnnotation(int, TypePath, []Label, []Label, []int, string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMethod) VisitLineNumber(int, Label) error { return nil }
func (discardMethod) VisitMaxs(int, int) error { return nil }
func (discardMethod) VisitEnd() error { return nil }

// discardMember serves both fields and record components.
type discardMember struct{}

func (discardMember) VisitAnnotation(string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMember) VisitTypeAnnotation(int, TypePath, string, bool) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardMember) VisitAttribute(Attribute) error { return nil }
func (discardMember) VisitEnd() error { return nil }

type discardAnnotation struct{}

func (discardAnnotation) Visit(string, any) error { return nil }
func (discardAnnotation) VisitEnum(string, string, string) error { return nil }
func (discardAnnotation) VisitAnnotation(string, string) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardAnnotation) VisitArray(string) (AnnotationVisitor, error) {
	return DiscardAnnotation, nil
}
func (discardAnnotation) VisitEnd() error { return nil }

type discardModule struct{}

func (discardModule) VisitMainClass(string) error { return nil }
func (discardModule) VisitPackage(string) error { return nil }
func (discardModule) VisitRequire(string, int, string) error { return nil }
func (discardModule) VisitExport(string, int, ...string) error { return nil }
func (discardModule) VisitOpen(string, int, ...string) error { return nil }
func (discardModule) VisitUse(string) error { return nil }
func (discardModule) VisitProvide(string, ...string) error { return nil }
func (discardModule) VisitEnd() error { return nil }

type discardSignature struct{}

func (discardSignature) VisitFormalTypeParameter(string) error { return nil }
func (discardSignature) VisitClassBound() (SignatureVisitor, error) { return DiscardSignature, nil }
func (discardSignature) VisitInterfaceBound() (SignatureVisitor, error) { return DiscardSignature, nil }
func (discardSignature) VisitSuperclass() (SignatureVisitor, error) { return DiscardSignature, nil }
func (discardSignature) VisitInterface() (SignatureVisitor, error) { return DiscardSignature, nil }
func (discardSignature) VisitParameterType() (SignatureVisitor, error) { return DiscardSignature, nil }
func (discardSignature) VisitReturnType() (SignatureVisitor, error) { return DiscardSignature, nil }
func (discardSignature) VisitExceptionType() (SignatureVisitor, error) { return DiscardSignature, nil }
func (discardSignature) VisitBaseType(byte) error { return nil }
func (discardSignature) VisitTypeVariable(string) error { return nil }
func (discardSignature) VisitArrayType() (SignatureVisitor, error) { return DiscardSignature, nil }
func (discardSignature) VisitClassType(string) error { return nil }
func (discardSignature) VisitInnerClassType(string) error { return nil }
func (discardSignature) VisitTypeArgument() error { return nil }
func (discardSignature) VisitWildcardTypeArgument(byte) (SignatureVisitor, error) {
	return DiscardSignature, nil
}
func (discardSignature) VisitEnd() error { return nil }

// orDiscard helpers replace nil child visitors returned by a next visitor.

func classOrDiscard(v ClassVisitor) ClassVisitor {
	if v == nil {
		return DiscardClass
	}
	return v
}

func methodOrDiscard(v MethodVisitor) MethodVisitor {
	if v == nil {
		return DiscardMethod
	}
	return v
}

func fieldOrDiscard(v FieldVisitor) FieldVisitor {
	if v == nil {
		return DiscardField
	}
	return v
}

func recordComponentOrDiscard(v RecordComponentVisitor) RecordComponentVisitor {
	if v == nil {
		return DiscardRecordComponent
	}
	return v
}

func annotationOrDiscard(v AnnotationVisitor) AnnotationVisitor {
	if v == nil {
		return DiscardAnnotation
	}
	return v
}

func moduleOrDiscard(v ModuleVisitor) ModuleVisitor {
	if v == nil {
		return DiscardModule
	}
	return v
}

func signatureOrDiscard(v SignatureVisitor) SignatureVisitor {
	if v == nil {
		return DiscardSignature
	}
	return v
}
