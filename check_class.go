package go_javad

import (
	"math/bits"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

const (
	classAccessMask = ACC_PUBLIC | ACC_FINAL | ACC_SUPER | ACC_INTERFACE | ACC_ABSTRACT | ACC_SYNTHETIC |
		ACC_ANNOTATION | ACC_ENUM | ACC_DEPRECATED | ACC_RECORD | ACC_MODULE
	innerClassAccessMask = ACC_PUBLIC | ACC_PRIVATE | ACC_PROTECTED | ACC_STATIC | ACC_FINAL | ACC_INTERFACE |
		ACC_ABSTRACT | ACC_SYNTHETIC | ACC_ANNOTATION | ACC_ENUM
	fieldAccessMask = ACC_PUBLIC | ACC_PRIVATE | ACC_PROTECTED | ACC_STATIC | ACC_FINAL | ACC_VOLATILE |
		ACC_TRANSIENT | ACC_SYNTHETIC | ACC_ENUM | ACC_MANDATED | ACC_DEPRECATED
	methodAccessMask = ACC_PUBLIC | ACC_PRIVATE | ACC_PROTECTED | ACC_STATIC | ACC_FINAL | ACC_SYNCHRONIZED |
		ACC_BRIDGE | ACC_VARARGS | ACC_NATIVE | ACC_ABSTRACT | ACC_STRICT | ACC_SYNTHETIC | ACC_MANDATED |
		ACC_DEPRECATED
	moduleAccessMask = ACC_OPEN | ACC_SYNTHETIC | ACC_MANDATED
)

// ClassChecker checks the calls made to a ClassVisitor, then forwards each successful call to the
// next visitor. Members are wrapped in their own checkers, so a whole class is checked by driving
// a single ClassChecker.
type ClassChecker struct {
	next   ClassVisitor
	opts   []Option
	labels *LabelArena

	version int

	visited           bool
	sourceVisited     bool
	moduleVisited     bool
	nestHostVisited   bool
	outerClassVisited bool
	ended             bool

	nestMemberPackage string
	hasNestMember     bool
}

// NewClassChecker returns a checker forwarding to next. The options are handed to the checker of
// every method, together with the label arena of the class.
func NewClassChecker(next ClassVisitor, opts ...Option) *ClassChecker {
	o := newOptions(opts)
	labels := o.labels
	if labels == nil {
		labels = NewLabelArena()
	}
	return &ClassChecker{
		next:   classOrDiscard(next),
		opts:   append(slices.Clone(opts), WithLabels(labels)),
		labels: labels,
	}
}

// Labels returns the arena shared by the methods of the class.
func (c *ClassChecker) Labels() *LabelArena {
	return c.labels
}

func (c *ClassChecker) Visit(version, access int, name, signature, superName string, interfaces []string) error {
	if c.visited {
		return illegalState("visit must be called only once")
	}
	c.visited = true
	if err := c.checkState(); err != nil {
		return err
	}
	if err := checkAccess(access, classAccessMask); err != nil {
		return err
	}
	if name == "" {
		return illegalArgument("Illegal class name (null)")
	}
	if !strings.HasSuffix(name, "package-info") && !strings.HasSuffix(name, "module-info") {
		if err := CheckInternalName(version, name, "class name"); err != nil {
			return err
		}
	}
	switch {
	case name == "java/lang/Object":
		if superName != "" {
			return illegalArgument("The super class name of the Object class must be 'null'")
		}
	case strings.HasSuffix(name, "module-info"):
		if superName != "" {
			return illegalArgument("The super class name of a module-info class must be 'null'")
		}
	default:
		if err := CheckInternalName(version, superName, "super class name"); err != nil {
			return err
		}
	}
	if signature != "" {
		if err := CheckClassSignature(signature); err != nil {
			return err
		}
	}
	if access&ACC_INTERFACE != 0 && superName != "java/lang/Object" {
		return illegalArgument("The super class name of interfaces must be 'java/lang/Object'")
	}
	for i, itf := range interfaces {
		if err := CheckInternalName(version, itf, invalidIndex("interface name", i)); err != nil {
			return err
		}
	}
	c.version = version
	return c.next.Visit(version, access, name, signature, superName, interfaces)
}

func (c *ClassChecker) VisitSource(source, debug string) error {
	if err := c.checkState(); err != nil {
		return err
	}
	if c.sourceVisited {
		return illegalState("visitSource can be called only once.")
	}
	c.sourceVisited = true
	return c.next.VisitSource(source, debug)
}

func (c *ClassChecker) VisitModule(name string, access int, version string) (ModuleVisitor, error) {
	if err := c.checkState(); err != nil {
		return nil, err
	}
	if c.moduleVisited {
		return nil, illegalState("visitModule can be called only once.")
	}
	c.moduleVisited = true
	if err := CheckFullyQualifiedName(c.version, name, "module name"); err != nil {
		return nil, err
	}
	if err := checkAccess(access, moduleAccessMask); err != nil {
		return nil, err
	}
	next, err := c.next.VisitModule(name, access, version)
	if err != nil {
		return nil, err
	}
	return NewModuleChecker(c.version, access&ACC_OPEN != 0, next), nil
}

func (c *ClassChecker) VisitNestHost(nestHost string) error {
	if err := c.checkState(); err != nil {
		return err
	}
	if c.nestHostVisited {
		return illegalState("visitNestHost can be called only once.")
	}
	if c.hasNestMember {
		return illegalState("visitNestHost and visitNestMember are mutually exclusive.")
	}
	c.nestHostVisited = true
	if err := CheckInternalName(c.version, nestHost, "nestHost"); err != nil {
		return err
	}
	return c.next.VisitNestHost(nestHost)
}

func (c *ClassChecker) VisitOuterClass(owner, name, desc string) error {
	if err := c.checkState(); err != nil {
		return err
	}
	if c.outerClassVisited {
		return illegalState("visitOuterClass can be called only once.")
	}
	c.outerClassVisited = true
	if owner == "" {
		return illegalArgument("Illegal outer class owner")
	}
	if desc != "" {
		if err := CheckMethodDescriptor(c.version, desc); err != nil {
			return err
		}
	}
	return c.next.VisitOuterClass(owner, name, desc)
}

func (c *ClassChecker) VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkState(); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitAnnotation(desc, visible))
}

func (c *ClassChecker) VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkState(); err != nil {
		return nil, err
	}
	if err := checkTypeRefSort(typeRef, CLASS_TYPE_PARAMETER, CLASS_TYPE_PARAMETER_BOUND, CLASS_EXTENDS); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitTypeAnnotation(typeRef, typePath, desc, visible))
}

func (c *ClassChecker) VisitAttribute(attr Attribute) error {
	if err := c.checkState(); err != nil {
		return err
	}
	if attr == nil {
		return illegalArgument("Invalid attribute (must not be null)")
	}
	return c.next.VisitAttribute(attr)
}

// VisitNestMember accepts members of the package of the first nest member only.
func (c *ClassChecker) VisitNestMember(nestMember string) error {
	if err := c.checkState(); err != nil {
		return err
	}
	if c.nestHostVisited {
		return illegalState("visitNestHost and visitNestMember are mutually exclusive.")
	}
	if err := CheckInternalName(c.version, nestMember, "nestMember"); err != nil {
		return err
	}
	pkg := packageName(nestMember)
	if !c.hasNestMember {
		c.hasNestMember = true
		c.nestMemberPackage = pkg
	} else if pkg != c.nestMemberPackage {
		return illegalState("nest member %s should be in the package %s", nestMember, c.nestMemberPackage)
	}
	return c.next.VisitNestMember(nestMember)
}

func packageName(name string) string {
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		return name[:i]
	}
	return ""
}

func (c *ClassChecker) VisitPermittedSubclass(permittedSubclass string) error {
	if err := c.checkState(); err != nil {
		return err
	}
	if err := CheckInternalName(c.version, permittedSubclass, "permittedSubclass"); err != nil {
		return err
	}
	return c.next.VisitPermittedSubclass(permittedSubclass)
}

func (c *ClassChecker) VisitInnerClass(name, outerName, innerName string, access int) error {
	if err := c.checkState(); err != nil {
		return err
	}
	if err := CheckInternalName(c.version, name, "class name"); err != nil {
		return err
	}
	if outerName != "" {
		if err := CheckInternalName(c.version, outerName, "outer class name"); err != nil {
			return err
		}
	}
	if innerName != "" {
		// Local and anonymous classes are named after a number.
		start := strings.IndexFunc(innerName, func(r rune) bool { return !unicode.IsDigit(r) })
		if start == -1 {
			start = len(innerName)
		}
		if start == 0 || start < len(innerName) {
			if err := CheckIdentifier(c.version, innerName, start, -1, "inner class name"); err != nil {
				return err
			}
		}
	}
	if err := checkAccess(access, innerClassAccessMask); err != nil {
		return err
	}
	return c.next.VisitInnerClass(name, outerName, innerName, access)
}

func (c *ClassChecker) VisitRecordComponent(name, desc, signature string) (RecordComponentVisitor, error) {
	if err := c.checkState(); err != nil {
		return nil, err
	}
	if err := CheckUnqualifiedName(c.version, name, "record component name"); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	if signature != "" {
		if err := CheckFieldSignature(signature); err != nil {
			return nil, err
		}
	}
	next, err := c.next.VisitRecordComponent(name, desc, signature)
	if err != nil {
		return nil, err
	}
	return NewRecordComponentChecker(next), nil
}

func (c *ClassChecker) VisitField(access int, name, desc, signature string, value any) (FieldVisitor, error) {
	if err := c.checkState(); err != nil {
		return nil, err
	}
	if err := checkAccess(access, fieldAccessMask); err != nil {
		return nil, err
	}
	if err := CheckUnqualifiedName(c.version, name, "field name"); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(c.version, desc, false); err != nil {
		return nil, err
	}
	if signature != "" {
		if err := CheckFieldSignature(signature); err != nil {
			return nil, err
		}
	}
	if value != nil {
		if err := CheckConstant(value); err != nil {
			return nil, err
		}
	}
	next, err := c.next.VisitField(access, name, desc, signature, value)
	if err != nil {
		return nil, err
	}
	return NewFieldChecker(next), nil
}

// VisitMethod checks the method header and returns a MethodChecker for its body.
func (c *ClassChecker) VisitMethod(access int, name, desc, signature string, exceptions []string) (MethodVisitor, error) {
	if err := c.checkState(); err != nil {
		return nil, err
	}
	if err := checkAccess(access, methodAccessMask); err != nil {
		return nil, err
	}
	if majorVersion(c.version) < V17 && bits.OnesCount(uint(access&(ACC_STRICT|ACC_ABSTRACT))) > 1 {
		return nil, illegalArgument("strictfp and abstract are mutually exclusive: %d", access)
	}
	if name != "<init>" && name != "<clinit>" {
		if err := CheckMethodIdentifier(c.version, name, "method name"); err != nil {
			return nil, err
		}
	}
	if err := CheckMethodDescriptor(c.version, desc); err != nil {
		return nil, err
	}
	if signature != "" {
		if err := CheckMethodSignature(signature); err != nil {
			return nil, err
		}
	}
	for i, exception := range exceptions {
		if err := CheckInternalName(c.version, exception, invalidIndex("exception name", i)); err != nil {
			return nil, err
		}
	}
	next, err := c.next.VisitMethod(access, name, desc, signature, exceptions)
	if err != nil {
		return nil, err
	}
	return NewMethodChecker(c.version, access, name, desc, next, c.opts...), nil
}

func (c *ClassChecker) VisitEnd() error {
	if err := c.checkState(); err != nil {
		return err
	}
	c.ended = true
	return c.next.VisitEnd()
}

func (c *ClassChecker) checkState() error {
	if !c.visited {
		return illegalState("Cannot visit member before visit has been called.")
	}
	if c.ended {
		return illegalState("Cannot visit member after visitEnd has been called.")
	}
	return nil
}

func invalidIndex(what string, i int) string {
	return what + " at index " + strconv.Itoa(i)
}

// checkAccess checks that access only uses the possible flags, and at most one visibility.
func checkAccess(access, possible int) error {
	if access&^possible != 0 {
		return illegalArgument("Invalid access flags: %d", access)
	}
	if bits.OnesCount(uint(access&(ACC_PUBLIC|ACC_PROTECTED|ACC_PRIVATE))) > 1 {
		return illegalArgument("public, protected and private are mutually exclusive: %d", access)
	}
	if bits.OnesCount(uint(access&(ACC_FINAL|ACC_ABSTRACT))) > 1 {
		return illegalArgument("final and abstract are mutually exclusive: %d", access)
	}
	return nil
}
