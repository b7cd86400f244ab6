package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	javad "github.com/itshacki/go-javad"
)

const historyFile = ".javad_check_history"

func replAction(c *cli.Context) error {
	version, err := versionOf(c)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "javad-check, class version %s. Type :quit to exit.\n", javad.VersionName(version))

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		f, err := os.Create(histPath)
		if err != nil {
			log.Printf("failed to save history, %v", err)
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(c.App.Writer)
			return nil
		}
		if err != nil {
			return err
		}
		err = evalLine(c.App.Writer, &version, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(c.App.ErrWriter, "ERROR: %v\n", err)
		}
		if strings.TrimSpace(line) != "" {
			ln.AppendHistory(line)
		}
	}
}
