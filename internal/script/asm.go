package script

import (
	"fmt"
	"strconv"
	"strings"

	javad "github.com/itshacki/go-javad"
)

// assembler turns code lines into method visitor calls. Label names are scoped to one method.
type assembler struct {
	arena  *javad.LabelArena
	labels map[string]javad.Label
}

func newAssembler(arena *javad.LabelArena) *assembler {
	return &assembler{arena: arena, labels: make(map[string]javad.Label)}
}

func (a *assembler) label(name string) (javad.Label, error) {
	if name == "" {
		return javad.NoLabel, fmt.Errorf("missing label name")
	}
	if l, ok := a.labels[name]; ok {
		return l, nil
	}
	l := a.arena.NewLabel()
	a.labels[name] = l
	return l, nil
}

func (a *assembler) labelList(names []string) ([]javad.Label, error) {
	labels := make([]javad.Label, len(names))
	for i, name := range names {
		l, err := a.label(name)
		if err != nil {
			return nil, err
		}
		labels[i] = l
	}
	return labels, nil
}

// tokenize splits a line on blanks. A double quoted string is a single token, quotes included.
func tokenize(line string) ([]string, error) {
	var toks []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if rest[0] == '"' {
			quoted, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("unterminated string %s", rest)
			}
			toks = append(toks, quoted)
			rest = strings.TrimSpace(rest[len(quoted):])
			continue
		}
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			end = len(rest)
		}
		toks = append(toks, rest[:end])
		rest = strings.TrimSpace(rest[end:])
	}
	return toks, nil
}

func arity(op string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d operands, got %d", op, n, len(args))
	}
	return nil
}

func atoi(s string) (int, error) {
	n, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int(n), nil
}

// member splits "owner.name" at the last dot.
func member(s string) (owner, name string, err error) {
	i := strings.LastIndexByte(s, '.')
	if i < 0 {
		return "", "", fmt.Errorf("expected owner.name, got %q", s)
	}
	return s[:i], s[i+1:], nil
}

// emit assembles one code line and makes the matching call on mv.
func (a *assembler) emit(mv javad.MethodVisitor, line string) error {
	toks, err := tokenize(line)
	if err != nil {
		return err
	}
	if len(toks) == 0 {
		return nil
	}
	op, args := toks[0], toks[1:]
	if name, ok := strings.CutSuffix(op, ":"); ok && len(args) == 0 {
		l, err := a.label(name)
		if err != nil {
			return err
		}
		return mv.VisitLabel(l)
	}

	switch op {
	case "frame":
		return a.frame(mv, args)
	case "trycatch":
		return a.tryCatch(mv, args)
	case "line":
		if err := arity(op, args, 2); err != nil {
			return err
		}
		n, err := atoi(args[0])
		if err != nil {
			return err
		}
		l, err := a.label(args[1])
		if err != nil {
			return err
		}
		return mv.VisitLineNumber(n, l)
	case "local":
		return a.local(mv, args)
	case "maxs":
		if err := arity(op, args, 2); err != nil {
			return err
		}
		maxStack, err := atoi(args[0])
		if err != nil {
			return err
		}
		maxLocals, err := atoi(args[1])
		if err != nil {
			return err
		}
		return mv.VisitMaxs(maxStack, maxLocals)
	case "attribute":
		if err := arity(op, args, 1); err != nil {
			return err
		}
		return mv.VisitAttribute(&javad.RawAttribute{Name: args[0]})
	case "ldc":
		value, n, err := parseConstant(args)
		if err != nil {
			return err
		}
		if n != len(args) {
			return fmt.Errorf("unexpected operands after constant: %s", strings.Join(args[n:], " "))
		}
		return mv.VisitLdcInsn(value)
	case "iinc":
		if err := arity(op, args, 2); err != nil {
			return err
		}
		index, err := atoi(args[0])
		if err != nil {
			return err
		}
		increment, err := atoi(args[1])
		if err != nil {
			return err
		}
		return mv.VisitIincInsn(index, increment)
	case "tableswitch":
		return a.tableSwitch(mv, args)
	case "lookupswitch":
		return a.lookupSwitch(mv, args)
	case "multianewarray":
		if err := arity(op, args, 2); err != nil {
			return err
		}
		dims, err := atoi(args[1])
		if err != nil {
			return err
		}
		return mv.VisitMultiANewArrayInsn(args[0], dims)
	case "invokedynamic":
		return a.invokeDynamic(mv, args)
	}

	opcode, ok := javad.OpcodeByName(op)
	if !ok {
		return fmt.Errorf("unknown instruction %q", op)
	}
	switch javad.OpcodeKind(opcode) {
	case javad.PlainInsn:
		if err := arity(op, args, 0); err != nil {
			return err
		}
		return mv.VisitInsn(opcode)
	case javad.IntInsn:
		if err := arity(op, args, 1); err != nil {
			return err
		}
		if opcode == javad.NEWARRAY {
			if code, ok := javad.ArrayTypeByName(args[0]); ok {
				return mv.VisitIntInsn(opcode, code)
			}
		}
		n, err := atoi(args[0])
		if err != nil {
			return err
		}
		return mv.VisitIntInsn(opcode, n)
	case javad.VarInsn:
		if err := arity(op, args, 1); err != nil {
			return err
		}
		n, err := atoi(args[0])
		if err != nil {
			return err
		}
		return mv.VisitVarInsn(opcode, n)
	case javad.TypeInsn:
		if err := arity(op, args, 1); err != nil {
			return err
		}
		return mv.VisitTypeInsn(opcode, args[0])
	case javad.FieldInsn:
		args = withoutColon(args)
		if err := arity(op, args, 2); err != nil {
			return err
		}
		owner, name, err := member(args[0])
		if err != nil {
			return err
		}
		return mv.VisitFieldInsn(opcode, owner, name, args[1])
	case javad.MethodInsn:
		isInterface := len(args) == 3 && args[2] == "itf"
		if isInterface {
			args = args[:2]
		}
		if err := arity(op, args, 2); err != nil {
			return err
		}
		owner, name, err := member(args[0])
		if err != nil {
			return err
		}
		return mv.VisitMethodInsn(opcode, owner, name, args[1], isInterface)
	case javad.JumpInsn:
		if err := arity(op, args, 1); err != nil {
			return err
		}
		l, err := a.label(args[0])
		if err != nil {
			return err
		}
		return mv.VisitJumpInsn(opcode, l)
	}
	return fmt.Errorf("%s cannot be written in code", op)
}

func withoutColon(args []string) []string {
	var out []string
	for _, arg := range args {
		if arg != ":" {
			out = append(out, arg)
		}
	}
	return out
}

// frame reads "frame <type> [locals v...] [stack v...]", or "frame chop <n>".
func (a *assembler) frame(mv javad.MethodVisitor, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("frame type expected")
	}
	frameType, ok := javad.FrameTypeByName(args[0])
	if !ok {
		return fmt.Errorf("unknown frame type %q", args[0])
	}
	if frameType == javad.F_CHOP {
		if err := arity("frame chop", args[1:], 1); err != nil {
			return err
		}
		n, err := atoi(args[1])
		if err != nil {
			return err
		}
		return mv.VisitFrame(frameType, n, nil, 0, nil)
	}
	var local, stack []any
	var target *[]any
	for _, tok := range args[1:] {
		switch tok {
		case "locals":
			target = &local
			continue
		case "stack":
			target = &stack
			continue
		}
		if target == nil {
			return fmt.Errorf("frame value %q outside of locals or stack", tok)
		}
		v, err := a.frameValue(tok)
		if err != nil {
			return err
		}
		*target = append(*target, v)
	}
	return mv.VisitFrame(frameType, len(local), local, len(stack), stack)
}

var frameTags = map[string]javad.FrameTag{
	"T": javad.TOP, "I": javad.INTEGER, "F": javad.FLOAT, "D": javad.DOUBLE,
	"J": javad.LONG, "N": javad.NULL, "U": javad.UNINITIALIZED_THIS,
}

// frameValue reads a frame tag, "new:<label>" for an uninitialized value, or an internal name.
func (a *assembler) frameValue(tok string) (any, error) {
	if tag, ok := frameTags[tok]; ok {
		return tag, nil
	}
	if name, ok := strings.CutPrefix(tok, "new:"); ok {
		return a.label(name)
	}
	return tok, nil
}

func (a *assembler) tryCatch(mv javad.MethodVisitor, args []string) error {
	if len(args) != 3 && len(args) != 4 {
		return fmt.Errorf("trycatch takes a start, end and handler label and an optional type")
	}
	labels, err := a.labelList(args[:3])
	if err != nil {
		return err
	}
	typ := ""
	if len(args) == 4 && args[3] != "*" {
		typ = args[3]
	}
	return mv.VisitTryCatchBlock(labels[0], labels[1], labels[2], typ)
}

// local reads "local <index> <name> <desc> <start> <end> [signature <signature>]".
func (a *assembler) local(mv javad.MethodVisitor, args []string) error {
	if len(args) != 5 && (len(args) != 7 || args[5] != "signature") {
		return fmt.Errorf("local takes an index, name, descriptor, start and end label and an optional signature")
	}
	index, err := atoi(args[0])
	if err != nil {
		return err
	}
	labels, err := a.labelList(args[3:5])
	if err != nil {
		return err
	}
	signature := ""
	if len(args) == 7 {
		signature = args[6]
	}
	return mv.VisitLocalVariable(args[1], args[2], signature, labels[0], labels[1], index)
}

// tableSwitch reads "tableswitch <min> <max> default:<label> <labels...>".
func (a *assembler) tableSwitch(mv javad.MethodVisitor, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("tableswitch takes a min, a max and a default label")
	}
	min, err := atoi(args[0])
	if err != nil {
		return err
	}
	max, err := atoi(args[1])
	if err != nil {
		return err
	}
	dflt, err := a.defaultLabel(args[2])
	if err != nil {
		return err
	}
	labels, err := a.labelList(args[3:])
	if err != nil {
		return err
	}
	return mv.VisitTableSwitchInsn(min, max, dflt, labels...)
}

// lookupSwitch reads "lookupswitch default:<label> <key>:<label>...".
func (a *assembler) lookupSwitch(mv javad.MethodVisitor, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("lookupswitch takes a default label")
	}
	dflt, err := a.defaultLabel(args[0])
	if err != nil {
		return err
	}
	keys := make([]int, 0, len(args)-1)
	labels := make([]javad.Label, 0, len(args)-1)
	for _, pair := range args[1:] {
		k, name, ok := strings.Cut(pair, ":")
		if !ok {
			return fmt.Errorf("expected key:label, got %q", pair)
		}
		key, err := atoi(k)
		if err != nil {
			return err
		}
		l, err := a.label(name)
		if err != nil {
			return err
		}
		keys = append(keys, key)
		labels = append(labels, l)
	}
	return mv.VisitLookupSwitchInsn(dflt, keys, labels)
}

func (a *assembler) defaultLabel(tok string) (javad.Label, error) {
	name, ok := strings.CutPrefix(tok, "default:")
	if !ok {
		return javad.NoLabel, fmt.Errorf("expected default:label, got %q", tok)
	}
	return a.label(name)
}

// invokeDynamic reads "invokedynamic <name> <desc> <handle> [constants...]".
func (a *assembler) invokeDynamic(mv javad.MethodVisitor, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("invokedynamic takes a name, a descriptor and a bootstrap handle")
	}
	bsm, n, err := parseHandle(args[2:])
	if err != nil {
		return err
	}
	var bsmArgs []any
	rest := args[2+n:]
	for len(rest) > 0 {
		v, n, err := parseConstant(rest)
		if err != nil {
			return err
		}
		bsmArgs = append(bsmArgs, v)
		rest = rest[n:]
	}
	return mv.VisitInvokeDynamicInsn(args[0], args[1], bsm, bsmArgs...)
}

// parseHandle reads "<tag> <owner>.<name> <desc> [itf]" and returns the number of tokens used.
func parseHandle(toks []string) (javad.Handle, int, error) {
	if len(toks) < 3 {
		return javad.Handle{}, 0, fmt.Errorf("handle takes a tag, owner.name and a descriptor")
	}
	tag, ok := javad.HandleTagByName(toks[0])
	if !ok {
		n, err := atoi(toks[0])
		if err != nil {
			return javad.Handle{}, 0, fmt.Errorf("unknown handle tag %q", toks[0])
		}
		tag = n
	}
	owner, name, err := member(toks[1])
	if err != nil {
		return javad.Handle{}, 0, err
	}
	h := javad.Handle{Tag: tag, Owner: owner, Name: name, Desc: toks[2]}
	if len(toks) > 3 && toks[3] == "itf" {
		h.IsInterface = true
		return h, 4, nil
	}
	return h, 3, nil
}

// ParseConstant reads a constant literal: 10, 10L, 1.5F, 1.5D, "text", true, false,
// "class <desc>", "methodtype <desc>", "handle <handle>" or "condy <name> <desc> <handle>".
func ParseConstant(s string) (any, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	v, n, err := parseConstant(toks)
	if err != nil {
		return nil, err
	}
	if n != len(toks) {
		return nil, fmt.Errorf("unexpected tokens after constant: %s", strings.Join(toks[n:], " "))
	}
	return v, nil
}

// parseConstant reads one constant from the start of toks and returns the number of tokens used.
func parseConstant(toks []string) (any, int, error) {
	if len(toks) == 0 {
		return nil, 0, fmt.Errorf("constant expected")
	}
	tok := toks[0]
	switch tok {
	case "class", "methodtype":
		if len(toks) < 2 {
			return nil, 0, fmt.Errorf("%s takes a descriptor", tok)
		}
		if tok == "class" {
			return javad.TypeOf(toks[1]), 2, nil
		}
		return javad.MethodType(toks[1]), 2, nil
	case "handle":
		h, n, err := parseHandle(toks[1:])
		return h, n + 1, err
	case "condy":
		if len(toks) < 3 {
			return nil, 0, fmt.Errorf("condy takes a name, a descriptor and a bootstrap handle")
		}
		h, n, err := parseHandle(toks[3:])
		if err != nil {
			return nil, 0, err
		}
		return javad.ConstantDynamic{Name: toks[1], Descriptor: toks[2], Bootstrap: h}, n + 3, nil
	case "true":
		return true, 1, nil
	case "false":
		return false, 1, nil
	}
	if tok[0] == '"' {
		s, err := strconv.Unquote(tok)
		if err != nil {
			return nil, 0, fmt.Errorf("invalid string %s", tok)
		}
		return s, 1, nil
	}
	v, err := parseNumber(tok)
	if err != nil {
		return nil, 0, err
	}
	return v, 1, nil
}

// parseNumber reads an int (int32), 10L (int64), 1.5F (float32) or 1.5 / 1.5D (float64).
func parseNumber(tok string) (any, error) {
	isHex := strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "-0x")
	body, suffix := tok, byte(0)
	if last := tok[len(tok)-1]; !isHex && strings.IndexByte("LlFfDd", last) >= 0 {
		body, suffix = tok[:len(tok)-1], last|0x20
	}
	switch suffix {
	case 'l':
		n, err := strconv.ParseInt(body, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid long %q", tok)
		}
		return n, nil
	case 'f':
		f, err := strconv.ParseFloat(body, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid float %q", tok)
		}
		return float32(f), nil
	case 'd':
		f, err := strconv.ParseFloat(body, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid double %q", tok)
		}
		return f, nil
	}
	if !isHex && strings.ContainsAny(tok, ".eE") {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid double %q", tok)
		}
		return f, nil
	}
	n, err := strconv.ParseInt(tok, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid constant %q", tok)
	}
	return int32(n), nil
}
