package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/urfave/cli/v2"

	javad "github.com/itshacki/go-javad"
	"github.com/itshacki/go-javad/internal/script"
)

func oneArg(c *cli.Context, what string) (string, error) {
	if c.NArg() != 1 {
		return "", usagef("%s expects exactly one %s", c.Command.Name, what)
	}
	return c.Args().First(), nil
}

func replayAction(c *cli.Context) error {
	path, err := oneArg(c, "script")
	if err != nil {
		return err
	}
	class, err := script.Load(path)
	if err != nil {
		return err
	}

	check := javad.Check()
	if c.Bool("dataflow") {
		check = javad.DataFlowCheck(nil)
	}
	stages := []javad.Stage{check}
	var trace bytes.Buffer
	expect := c.String("expect")
	if c.Bool("trace") || expect != "" {
		stages = append(stages, javad.Trace(&trace))
	}
	replayErr := script.Replay(class, javad.NewPipeline(nil, stages...))

	if c.Bool("trace") {
		if _, err := trace.WriteTo(c.App.Writer); err != nil {
			return err
		}
	}
	if replayErr != nil {
		return replayErr
	}
	if expect != "" {
		return compareTrace(c.App.Writer, expect, trace.String())
	}
	if !c.Bool("trace") {
		fmt.Fprintf(c.App.Writer, "%s: ok\n", class.Name)
	}
	return nil
}

// compareTrace prints a unified diff of the expected and actual traces when they differ.
func compareTrace(w io.Writer, path, actual string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	expected := string(data)
	if expected == actual {
		return nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: path,
		ToFile:   "trace",
		Context:  3,
	})
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, diff); err != nil {
		return err
	}
	return fmt.Errorf("trace differs from %s", path)
}

var signatureKinds = map[string]javad.SignatureKind{
	"class":  javad.ClassSignature,
	"method": javad.MethodSignature,
	"field":  javad.TypeSignature,
}

func signatureAction(c *cli.Context) error {
	sig, err := oneArg(c, "signature")
	if err != nil {
		return err
	}
	kind, ok := signatureKinds[c.String("kind")]
	if !ok {
		return usagef("unknown signature kind %q", c.String("kind"))
	}
	return walkSignature(c.App.Writer, kind, sig)
}

// walkSignature checks sig against the grammar, then drives a checked tracer with it.
func walkSignature(w io.Writer, kind javad.SignatureKind, sig string) error {
	var err error
	switch kind {
	case javad.ClassSignature:
		err = javad.CheckClassSignature(sig)
	case javad.MethodSignature:
		err = javad.CheckMethodSignature(sig)
	default:
		err = javad.CheckFieldSignature(sig)
	}
	if err != nil {
		return err
	}
	v := javad.NewSignatureChecker(kind, javad.NewSignatureTracer(w, nil))
	if kind == javad.TypeSignature {
		return javad.AcceptTypeSignature(sig, v)
	}
	return javad.AcceptSignature(sig, v)
}

func versionOf(c *cli.Context) (int, error) {
	version, err := javad.ParseVersion(c.String("version"))
	if err != nil {
		return 0, usageError{err: err}
	}
	return version, nil
}

func descriptorAction(c *cli.Context) error {
	desc, err := oneArg(c, "descriptor")
	if err != nil {
		return err
	}
	version, err := versionOf(c)
	if err != nil {
		return err
	}
	if c.Bool("method") {
		err = javad.CheckMethodDescriptor(version, desc)
	} else {
		err = javad.CheckDescriptor(version, desc, false)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "ok")
	return nil
}

var nameChecks = map[string]func(version int, name, what string) error{
	"internal":    javad.CheckInternalName,
	"unqualified": javad.CheckUnqualifiedName,
	"method":      javad.CheckMethodIdentifier,
	"qualified":   javad.CheckFullyQualifiedName,
}

func checkName(kind string, version int, name string) error {
	check, ok := nameChecks[kind]
	if !ok {
		return usagef("unknown name kind %q", kind)
	}
	return check(version, name, kind+" name")
}

func nameAction(c *cli.Context) error {
	name, err := oneArg(c, "name")
	if err != nil {
		return err
	}
	version, err := versionOf(c)
	if err != nil {
		return err
	}
	if err := checkName(c.String("kind"), version, name); err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, "ok")
	return nil
}

var errQuit = errors.New("quit")

// evalLine runs one repl line: "sig <kind> S", "desc D", "mdesc D", "name <kind> N", "version V"
// or ":quit".
func evalLine(w io.Writer, version *int, line string) error {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	switch cmd {
	case "":
		return nil
	case ":quit", ":q":
		return errQuit
	case "sig":
		k, sig, _ := strings.Cut(rest, " ")
		kind, ok := signatureKinds[k]
		if !ok {
			return fmt.Errorf("unknown signature kind %q", k)
		}
		return walkSignature(w, kind, strings.TrimSpace(sig))
	case "desc":
		if err := javad.CheckDescriptor(*version, rest, false); err != nil {
			return err
		}
	case "mdesc":
		if err := javad.CheckMethodDescriptor(*version, rest); err != nil {
			return err
		}
	case "name":
		kind, name, _ := strings.Cut(rest, " ")
		if err := checkName(kind, *version, strings.TrimSpace(name)); err != nil {
			return err
		}
	case "version":
		v, err := javad.ParseVersion(rest)
		if err != nil {
			return err
		}
		*version = v
	default:
		return fmt.Errorf("unknown command %q, expected sig, desc, mdesc, name, version or :quit", cmd)
	}
	_, err := fmt.Fprintln(w, "ok")
	return err
}
