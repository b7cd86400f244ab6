// Command javad-check checks class descriptions, signatures, descriptors and names against the
// class file rules.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

const (
	exitCheckFailed = 1
	exitUsage       = 2
)

// usageError is a command line the tool cannot run.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func onUsageError(_ *cli.Context, err error, _ bool) error {
	return usageError{err: err}
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("javad-check: ")
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	err := newApp(stdout, stderr).Run(args)
	if err == nil {
		return 0
	}
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(stderr, "usage: %v\n", usage.err)
		return exitUsage
	}
	fmt.Fprintf(stderr, "ERROR: %v\n", err)
	return exitCheckFailed
}

func newApp(stdout, stderr io.Writer) *cli.App {
	versionFlag := &cli.StringFlag{
		Name:  "version",
		Usage: "class file `VERSION` the checks apply to, e.g. 1.4, V1_8 or 17",
		Value: "V23",
	}
	return &cli.App{
		Name:            "javad-check",
		Usage:           "check JVM class structures",
		Writer:          stdout,
		ErrWriter:       stderr,
		HideHelpCommand: true,
		OnUsageError:    onUsageError,
		// Errors are reported by run, which also picks the exit status.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:         "replay",
				Usage:        "check a class script",
				ArgsUsage:    "SCRIPT.yaml",
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dataflow", Usage: "analyze the operand stack of every method"},
					&cli.BoolFlag{Name: "trace", Usage: "print every checked visit call"},
					&cli.StringFlag{Name: "expect", Usage: "compare the trace with `FILE`"},
				},
				Action: replayAction,
			},
			{
				Name:         "signature",
				Usage:        "check a generic signature and print its visit events",
				ArgsUsage:    "SIGNATURE",
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "signature `KIND`: class, method or field", Value: "field"},
				},
				Action: signatureAction,
			},
			{
				Name:         "descriptor",
				Usage:        "check a field or method descriptor",
				ArgsUsage:    "DESCRIPTOR",
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "method", Usage: "check a method descriptor"},
					versionFlag,
				},
				Action: descriptorAction,
			},
			{
				Name:         "name",
				Usage:        "check a name",
				ArgsUsage:    "NAME",
				OnUsageError: onUsageError,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "kind", Usage: "name `KIND`: internal, unqualified, method or qualified", Value: "internal"},
					versionFlag,
				},
				Action: nameAction,
			},
			{
				Name:         "repl",
				Usage:        "check signatures, descriptors and names interactively",
				OnUsageError: onUsageError,
				Flags:        []cli.Flag{versionFlag},
				Action:       replAction,
			},
		},
	}
}
