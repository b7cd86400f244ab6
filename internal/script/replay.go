package script

import (
	"fmt"
	"strings"

	javad "github.com/itshacki/go-javad"
)

// Replay makes the visit calls described by c on v, in class file order, and stops at the first
// error. Errors name the member and, for code, the line they come from.
func Replay(c *Class, v javad.ClassVisitor) error {
	r := replayer{arena: javad.NewLabelArena()}
	if err := r.class(c, v); err != nil {
		return fmt.Errorf("class %s: %w", c.Name, err)
	}
	return nil
}

type replayer struct {
	arena *javad.LabelArena
}

func (r *replayer) class(c *Class, v javad.ClassVisitor) error {
	version, err := javad.ParseVersion(c.Version)
	if err != nil {
		return err
	}
	access, err := javad.ParseAccess(c.Access, javad.ClassAccess)
	if err != nil {
		return err
	}
	if err := v.Visit(version, access, c.Name, c.Signature, c.Super, c.Interfaces); err != nil {
		return err
	}
	if c.Source != "" || c.Debug != "" {
		if err := v.VisitSource(c.Source, c.Debug); err != nil {
			return err
		}
	}
	if c.Module != nil {
		if err := r.module(c.Module, v); err != nil {
			return fmt.Errorf("module %s: %w", c.Module.Name, err)
		}
	}
	if c.NestHost != "" {
		if err := v.VisitNestHost(c.NestHost); err != nil {
			return err
		}
	}
	if c.OuterClass != nil {
		if err := v.VisitOuterClass(c.OuterClass.Owner, c.OuterClass.Method, c.OuterClass.Desc); err != nil {
			return err
		}
	}
	if err := annotations(c.Annotations, v.VisitAnnotation, v.VisitTypeAnnotation); err != nil {
		return err
	}
	if err := attributes(c.Attributes, v.VisitAttribute); err != nil {
		return err
	}
	for _, m := range c.NestMembers {
		if err := v.VisitNestMember(m); err != nil {
			return err
		}
	}
	for _, p := range c.PermittedSubclasses {
		if err := v.VisitPermittedSubclass(p); err != nil {
			return err
		}
	}
	for _, ic := range c.InnerClasses {
		access, err := javad.ParseAccess(ic.Access, javad.InnerClassAccess)
		if err != nil {
			return err
		}
		if err := v.VisitInnerClass(ic.Name, ic.Outer, ic.Inner, access); err != nil {
			return err
		}
	}
	for _, rc := range c.RecordComponents {
		if err := recordComponent(rc, v); err != nil {
			return fmt.Errorf("record component %s: %w", rc.Name, err)
		}
	}
	for _, f := range c.Fields {
		if err := field(f, v); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
	}
	for _, m := range c.Methods {
		if err := r.method(m, v); err != nil {
			return fmt.Errorf("method %s%s: %w", m.Name, m.Desc, err)
		}
	}
	return v.VisitEnd()
}

func (r *replayer) module(m *Module, v javad.ClassVisitor) error {
	access, err := javad.ParseAccess(m.Access, javad.ModuleAccess)
	if err != nil {
		return err
	}
	mv, err := v.VisitModule(m.Name, access, m.Version)
	if err != nil || mv == nil {
		return err
	}
	if m.MainClass != "" {
		if err := mv.VisitMainClass(m.MainClass); err != nil {
			return err
		}
	}
	for _, p := range m.Packages {
		if err := mv.VisitPackage(p); err != nil {
			return err
		}
	}
	for _, req := range m.Requires {
		access, err := javad.ParseAccess(req.Access, javad.RequiresAccess)
		if err != nil {
			return err
		}
		if err := mv.VisitRequire(req.Module, access, req.Version); err != nil {
			return err
		}
	}
	for _, e := range m.Exports {
		access, err := javad.ParseAccess(e.Access, javad.ExportsAccess)
		if err != nil {
			return err
		}
		if err := mv.VisitExport(e.Package, access, e.To...); err != nil {
			return err
		}
	}
	for _, o := range m.Opens {
		access, err := javad.ParseAccess(o.Access, javad.ExportsAccess)
		if err != nil {
			return err
		}
		if err := mv.VisitOpen(o.Package, access, o.To...); err != nil {
			return err
		}
	}
	for _, u := range m.Uses {
		if err := mv.VisitUse(u); err != nil {
			return err
		}
	}
	for _, p := range m.Provides {
		if err := mv.VisitProvide(p.Service, p.With...); err != nil {
			return err
		}
	}
	return mv.VisitEnd()
}

func recordComponent(rc RecordComponent, v javad.ClassVisitor) error {
	rv, err := v.VisitRecordComponent(rc.Name, rc.Desc, rc.Signature)
	if err != nil || rv == nil {
		return err
	}
	if err := annotations(rc.Annotations, rv.VisitAnnotation, rv.VisitTypeAnnotation); err != nil {
		return err
	}
	if err := attributes(rc.Attributes, rv.VisitAttribute); err != nil {
		return err
	}
	return rv.VisitEnd()
}

func field(f Field, v javad.ClassVisitor) error {
	access, err := javad.ParseAccess(f.Access, javad.FieldAccess)
	if err != nil {
		return err
	}
	var value any
	if f.Value != "" {
		if value, err = ParseConstant(f.Value); err != nil {
			return err
		}
	}
	fv, err := v.VisitField(access, f.Name, f.Desc, f.Signature, value)
	if err != nil || fv == nil {
		return err
	}
	if err := annotations(f.Annotations, fv.VisitAnnotation, fv.VisitTypeAnnotation); err != nil {
		return err
	}
	if err := attributes(f.Attributes, fv.VisitAttribute); err != nil {
		return err
	}
	return fv.VisitEnd()
}

func (r *replayer) method(m Method, v javad.ClassVisitor) error {
	access, err := javad.ParseAccess(m.Access, javad.MethodAccess)
	if err != nil {
		return err
	}
	mv, err := v.VisitMethod(access, m.Name, m.Desc, m.Signature, m.Exceptions)
	if err != nil || mv == nil {
		return err
	}
	for _, p := range m.Parameters {
		access, err := javad.ParseAccess(p.Access, javad.ParameterAccess)
		if err != nil {
			return err
		}
		if err := mv.VisitParameter(p.Name, access); err != nil {
			return err
		}
	}
	if m.AnnotationDefault != nil {
		av, err := mv.VisitAnnotationDefault()
		if err != nil {
			return err
		}
		if av != nil {
			if err := annotationValue(av, *m.AnnotationDefault); err != nil {
				return err
			}
			if err := av.VisitEnd(); err != nil {
				return err
			}
		}
	}
	var plain []Annotation
	for _, a := range m.Annotations {
		if a.Parameter == nil {
			plain = append(plain, a)
			continue
		}
		av, err := mv.VisitParameterAnnotation(*a.Parameter, a.Desc, a.Visible)
		if err != nil {
			return err
		}
		if err := annotationValues(av, a.Values); err != nil {
			return err
		}
	}
	if err := annotations(plain, mv.VisitAnnotation, mv.VisitTypeAnnotation); err != nil {
		return err
	}
	if err := attributes(m.Attributes, mv.VisitAttribute); err != nil {
		return err
	}
	if len(m.Code) > 0 {
		if err := mv.VisitCode(); err != nil {
			return err
		}
		asm := newAssembler(r.arena)
		for i, line := range m.Code {
			if err := asm.emit(mv, line); err != nil {
				return fmt.Errorf("code line %d %q: %w", i+1, strings.TrimSpace(line), err)
			}
		}
	}
	return mv.VisitEnd()
}

type (
	visitAnnotation     func(desc string, visible bool) (javad.AnnotationVisitor, error)
	visitTypeAnnotation func(typeRef int, typePath javad.TypePath, desc string, visible bool) (javad.AnnotationVisitor, error)
)

func annotations(list []Annotation, visit visitAnnotation, visitType visitTypeAnnotation) error {
	for _, a := range list {
		var av javad.AnnotationVisitor
		var err error
		if a.TypeRef != nil {
			av, err = visitType(*a.TypeRef, javad.TypePath(a.TypePath), a.Desc, a.Visible)
		} else {
			av, err = visit(a.Desc, a.Visible)
		}
		if err != nil {
			return fmt.Errorf("annotation %s: %w", a.Desc, err)
		}
		if err := annotationValues(av, a.Values); err != nil {
			return fmt.Errorf("annotation %s: %w", a.Desc, err)
		}
	}
	return nil
}

func annotationValues(av javad.AnnotationVisitor, values []AnnotationValue) error {
	if av == nil {
		return nil
	}
	for _, v := range values {
		if err := annotationValue(av, v); err != nil {
			return err
		}
	}
	return av.VisitEnd()
}

func annotationValue(av javad.AnnotationVisitor, v AnnotationValue) error {
	switch {
	case v.Annotation != nil:
		child, err := av.VisitAnnotation(v.Name, v.Annotation.Desc)
		if err != nil {
			return err
		}
		return annotationValues(child, v.Annotation.Values)
	case v.Array != nil:
		child, err := av.VisitArray(v.Name)
		if err != nil {
			return err
		}
		return annotationValues(child, v.Array)
	case v.Enum != "":
		desc, value, ok := strings.Cut(v.Enum, ";.")
		if !ok {
			return fmt.Errorf("expected Ldesc;.VALUE, got %q", v.Enum)
		}
		return av.VisitEnum(v.Name, desc+";", value)
	default:
		value, err := ParseConstant(v.Value)
		if err != nil {
			return err
		}
		return av.Visit(v.Name, value)
	}
}

func attributes(names []string, visit func(javad.Attribute) error) error {
	for _, name := range names {
		if err := visit(&javad.RawAttribute{Name: name}); err != nil {
			return err
		}
	}
	return nil
}
