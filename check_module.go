package go_javad

// ModuleChecker checks the directives of a module. Names are checked as in a version 9 class file.
type ModuleChecker struct {
	next         ModuleVisitor
	classVersion int
	open         bool
	ended        bool

	requiredModules  nameSet
	exportedPackages nameSet
	openedPackages   nameSet
	usedServices     nameSet
	providedServices nameSet
}

// NewModuleChecker returns a checker for the module of a class of the given version.
// open tells whether the module was declared with ACC_OPEN.
func NewModuleChecker(classVersion int, open bool, next ModuleVisitor) *ModuleChecker {
	return &ModuleChecker{
		next:             moduleOrDiscard(next),
		classVersion:     classVersion,
		open:             open,
		requiredModules:  nameSet{kind: "Modules requires"},
		exportedPackages: nameSet{kind: "Module exports"},
		openedPackages:   nameSet{kind: "Module opens"},
		usedServices:     nameSet{kind: "Module uses"},
		providedServices: nameSet{kind: "Module provides"},
	}
}

// nameSet rejects names declared twice by the same kind of directive.
type nameSet struct {
	kind  string
	names map[string]struct{}
}

func (s *nameSet) add(name string) error {
	if _, ok := s.names[name]; ok {
		return illegalArgument("%s '%s' already declared", s.kind, name)
	}
	if s.names == nil {
		s.names = make(map[string]struct{})
	}
	s.names[name] = struct{}{}
	return nil
}

func (c *ModuleChecker) VisitMainClass(mainClass string) error {
	if err := CheckInternalName(V9, mainClass, "module main class"); err != nil {
		return err
	}
	return c.next.VisitMainClass(mainClass)
}

func (c *ModuleChecker) VisitPackage(packaze string) error {
	if err := CheckInternalName(V9, packaze, "module package"); err != nil {
		return err
	}
	return c.next.VisitPackage(packaze)
}

func (c *ModuleChecker) VisitRequire(module string, access int, version string) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if err := CheckFullyQualifiedName(V9, module, "required module"); err != nil {
		return err
	}
	if err := c.requiredModules.add(module); err != nil {
		return err
	}
	if err := checkAccess(access, ACC_STATIC_PHASE|ACC_TRANSITIVE|ACC_SYNTHETIC|ACC_MANDATED); err != nil {
		return err
	}
	if majorVersion(c.classVersion) >= V10 && module == "java.base" && access&(ACC_STATIC_PHASE|ACC_TRANSITIVE) != 0 {
		return illegalArgument("Invalid access flags: %d java.base can not be declared ACC_TRANSITIVE or ACC_STATIC_PHASE", access)
	}
	return c.next.VisitRequire(module, access, version)
}

func (c *ModuleChecker) VisitExport(packaze string, access int, modules ...string) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if err := CheckInternalName(V9, packaze, "package name"); err != nil {
		return err
	}
	if err := c.exportedPackages.add(packaze); err != nil {
		return err
	}
	if err := checkAccess(access, ACC_SYNTHETIC|ACC_MANDATED); err != nil {
		return err
	}
	for _, module := range modules {
		if err := CheckFullyQualifiedName(V9, module, "module export to"); err != nil {
			return err
		}
	}
	return c.next.VisitExport(packaze, access, modules...)
}

func (c *ModuleChecker) VisitOpen(packaze string, access int, modules ...string) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if c.open {
		return unsupported("An open module can not use open directive")
	}
	if err := CheckInternalName(V9, packaze, "package name"); err != nil {
		return err
	}
	if err := c.openedPackages.add(packaze); err != nil {
		return err
	}
	if err := checkAccess(access, ACC_SYNTHETIC|ACC_MANDATED); err != nil {
		return err
	}
	for _, module := range modules {
		if err := CheckFullyQualifiedName(V9, module, "module open to"); err != nil {
			return err
		}
	}
	return c.next.VisitOpen(packaze, access, modules...)
}

func (c *ModuleChecker) VisitUse(service string) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if err := CheckInternalName(V9, service, "service"); err != nil {
		return err
	}
	if err := c.usedServices.add(service); err != nil {
		return err
	}
	return c.next.VisitUse(service)
}

func (c *ModuleChecker) VisitProvide(service string, providers ...string) error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	if err := CheckInternalName(V9, service, "service"); err != nil {
		return err
	}
	if err := c.providedServices.add(service); err != nil {
		return err
	}
	if len(providers) == 0 {
		return illegalArgument("Providers cannot be null or empty")
	}
	for _, provider := range providers {
		if err := CheckInternalName(V9, provider, "provider"); err != nil {
			return err
		}
	}
	return c.next.VisitProvide(service, providers...)
}

func (c *ModuleChecker) VisitEnd() error {
	if err := c.checkNotEnded(); err != nil {
		return err
	}
	c.ended = true
	return c.next.VisitEnd()
}

func (c *ModuleChecker) checkNotEnded() error {
	if c.ended {
		return illegalState("Cannot call a visit method after visitEnd has been called")
	}
	return nil
}
