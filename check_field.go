package go_javad

// memberChecker holds the checks shared by fields and record components.
type memberChecker struct {
	allowedTypeRef int
	ended          bool
}

func (c *memberChecker) checkNotEnded() error {
	if c.ended {
		return illegalState("Cannot call a visit method after visitEnd has been called")
	}
	return nil
}

func (c *memberChecker) checkAnnotation(desc string) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	return CheckDescriptor(V1_5, desc, false)
}

func (c *memberChecker) checkTypeAnnotation(typeRef int, desc string) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if err := checkTypeRefSort(typeRef, c.allowedTypeRef); err != nil {
		return err
	}
	return CheckDescriptor(V1_5, desc, false)
}

func (c *memberChecker) checkAttribute(attr Attribute) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if attr == nil {
		return illegalArgument("Invalid attribute (must not be null)")
	}
	return nil
}

func (c *memberChecker) end() error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	c.ended = true
	return nil
}

func checkedAnnotation(next AnnotationVisitor, err error) (AnnotationVisitor, error) {
	if err != nil {
		return nil, err
	}
	return NewAnnotationChecker(next), nil
}

// FieldChecker checks the annotations and attributes of a field.
type FieldChecker struct {
	memberChecker
	next FieldVisitor
}

func NewFieldChecker(next FieldVisitor) *FieldChecker {
	return &FieldChecker{memberChecker: memberChecker{allowedTypeRef: FIELD}, next: fieldOrDiscard(next)}
}

func (c *FieldChecker) VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkAnnotation(desc); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitAnnotation(desc, visible))
}

func (c *FieldChecker) VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkTypeAnnotation(typeRef, desc); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitTypeAnnotation(typeRef, typePath, desc, visible))
}

func (c *FieldChecker) VisitAttribute(attr Attribute) error {
	if err := c.checkAttribute(attr); err != nil {
		return err
	}
	return c.next.VisitAttribute(attr)
}

func (c *FieldChecker) VisitEnd() error {
	if err := c.end(); err != nil {
		return err
	}
	return c.next.VisitEnd()
}

// RecordComponentChecker checks the annotations and attributes of a record component.
type RecordComponentChecker struct {
	memberChecker
	next RecordComponentVisitor
}

func NewRecordComponentChecker(next RecordComponentVisitor) *RecordComponentChecker {
	return &RecordComponentChecker{memberChecker: memberChecker{allowedTypeRef: FIELD}, next: recordComponentOrDiscard(next)}
}

func (c *RecordComponentChecker) VisitAnnotation(desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkAnnotation(desc); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitAnnotation(desc, visible))
}

func (c *RecordComponentChecker) VisitTypeAnnotation(typeRef int, typePath TypePath, desc string, visible bool) (AnnotationVisitor, error) {
	if err := c.checkTypeAnnotation(typeRef, desc); err != nil {
		return nil, err
	}
	return checkedAnnotation(c.next.VisitTypeAnnotation(typeRef, typePath, desc, visible))
}

func (c *RecordComponentChecker) VisitAttribute(attr Attribute) error {
	if err := c.checkAttribute(attr); err != nil {
		return err
	}
	return c.next.VisitAttribute(attr)
}

func (c *RecordComponentChecker) VisitEnd() error {
	if err := c.end(); err != nil {
		return err
	}
	return c.next.VisitEnd()
}
