package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/nilay320/MCP-Session-Code/pkg/calc"
)

const (
	historyFile = ".mcp-server_history"
	replPrompt  = "calc> "
	replBanner  = "Scientific calculator. Type an expression, :names for functions and constants, :quit to exit."
)

// prompter is the part of liner.State the loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactive calculator with history and completion",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln := liner.NewLiner()
			defer ln.Close()
			ln.SetCtrlCAborts(true)

			ns := calc.DefaultNamespace()
			ln.SetWordCompleter(completer(ns.Names()))

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
				if f, err := os.Create(histPath); err == nil {
					_, _ = ln.WriteHistory(f)
					_ = f.Close()
				}
			}()

			return runREPL(ln, cmd.OutOrStdout(), calc.NewEvaluator(ns))
		},
	}
}

// runREPL evaluates lines until end of input or :quit.
func runREPL(p prompter, out io.Writer, ev *calc.Evaluator) error {
	fmt.Fprintln(out, replBanner)

	for {
		line, err := p.Prompt(replPrompt)
		if err != nil {
			if stderrors.Is(err, io.EOF) || stderrors.Is(err, liner.ErrPromptAborted) {
				fmt.Fprintln(out)
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit", ":q", "exit", "quit":
			return nil
		case ":names":
			fmt.Fprintln(out, strings.Join(calc.DefaultNamespace().Names(), " "))
			continue
		}

		p.AppendHistory(line)
		fmt.Fprintln(out, ev.Calculate(line))
	}
}

// completer completes the identifier under the cursor from names. liner
// reports pos in runes.
func completer(names []string) liner.WordCompleter {
	return func(line string, pos int) (string, []string, string) {
		runes := []rune(line)
		if pos > len(runes) {
			pos = len(runes)
		}
		start := pos
		for start > 0 && isIdentRune(runes[start-1]) {
			start--
		}
		head, tail := string(runes[:start]), string(runes[pos:])
		word := string(runes[start:pos])
		if word == "" {
			return head, nil, tail
		}

		var matches []string
		for _, name := range names {
			if strings.HasPrefix(name, word) {
				matches = append(matches, name)
			}
		}
		return head, matches, tail
	}
}

func isIdentRune(c rune) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
