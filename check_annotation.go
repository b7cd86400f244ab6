package go_javad

// AnnotationChecker checks the values of an annotation before forwarding them.
type AnnotationChecker struct {
	next       AnnotationVisitor
	namedValue bool // values of annotations are named, values of arrays and defaults are not
	ended      bool
}

// NewAnnotationChecker returns a checker for the named values of an annotation.
func NewAnnotationChecker(next AnnotationVisitor) *AnnotationChecker {
	return &AnnotationChecker{next: annotationOrDiscard(next), namedValue: true}
}

// newValueChecker returns a checker for the unnamed values of an array or an annotation default.
func newValueChecker(next AnnotationVisitor) *AnnotationChecker {
	return &AnnotationChecker{next: annotationOrDiscard(next)}
}

func (c *AnnotationChecker) Visit(name string, value any) error {
	if err := c.check(name); err != nil {
		return err
	}
	switch v := value.(type) {
	case int8, bool, uint16, int16, int32, int64, float32, float64, string,
		[]int8, []byte, []bool, []uint16, []int16, []int32, []int64, []float32, []float64:
	case Type:
		if v.Sort() == SortMethod {
			return illegalArgument("Invalid annotation value")
		}
	default:
		return illegalArgument("Invalid annotation value")
	}
	return c.next.Visit(name, value)
}

func (c *AnnotationChecker) VisitEnum(name, desc, value string) error {
	if err := c.check(name); err != nil {
		return err
	}
	if err := CheckDescriptor(V1_5, desc, false); err != nil {
		return err
	}
	if value == "" {
		return illegalArgument("Invalid enum value")
	}
	return c.next.VisitEnum(name, desc, value)
}

func (c *AnnotationChecker) VisitAnnotation(name, desc string) (AnnotationVisitor, error) {
	if err := c.check(name); err != nil {
		return nil, err
	}
	if err := CheckDescriptor(V1_5, desc, false); err != nil {
		return nil, err
	}
	next, err := c.next.VisitAnnotation(name, desc)
	if err != nil {
		return nil, err
	}
	return NewAnnotationChecker(next), nil
}

func (c *AnnotationChecker) VisitArray(name string) (AnnotationVisitor, error) {
	if err := c.check(name); err != nil {
		return nil, err
	}
	next, err := c.next.VisitArray(name)
	if err != nil {
		return nil, err
	}
	return newValueChecker(next), nil
}

func (c *AnnotationChecker) VisitEnd() error {
	if c.ended {
		return illegalState("Cannot call a visit method after visitEnd has been called")
	}
	c.ended = true
	return c.next.VisitEnd()
}

func (c *AnnotationChecker) check(name string) error {
	if c.ended {
		return illegalState("Cannot call a visit method after visitEnd has been called")
	}
	if c.namedValue && name == "" {
		return illegalArgument("Annotation value name must not be null")
	}
	return nil
}
