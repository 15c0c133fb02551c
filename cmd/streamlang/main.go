// Command streamlang runs streamlang scripts against a simulated media
// player, or starts an interactive session when no script is given.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/zurustar/streamlang/pkg/cli"
	"github.com/zurustar/streamlang/pkg/compiler"
	"github.com/zurustar/streamlang/pkg/compiler/parser"
	"github.com/zurustar/streamlang/pkg/interp"
	"github.com/zurustar/streamlang/pkg/logger"
	"github.com/zurustar/streamlang/pkg/player"
)

const (
	historyFile = ".streamlang_history"
	promptMain  = ">> "
	promptCont  = ".. "
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	config, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if config.ShowHelp {
		usage()
		return 0
	}

	if err := logger.InitLogger(config.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	sim := player.NewSim()
	if config.Duration > 0 {
		sim.SetDuration(config.Duration)
	}

	if config.ScriptPath != "" {
		return runScript(config.ScriptPath, sim)
	}
	return runREPL(sim)
}

func usage() {
	fmt.Println(`usage: streamlang [flags] [script]

Runs a streamlang script against a simulated media player. Without a
script argument an interactive session is started.

flags:
  -l, -log-level LEVEL   log level: debug, info, warn, error (default info)
  -d, -duration SECONDS  simulated media duration (default 180)
  -h, -help              show this help`)
}

func runScript(path string, p player.Player) int {
	program, err := compiler.CompileFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := interp.New(p).Run(program); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runREPL executes statement batches against a persistent environment and
// player. Input continues on the next line while the parser reports an
// unexpected end of input.
func runREPL(p player.Player) int {
	fmt.Println("streamlang interactive session. Ctrl+C cancels input, Ctrl+D or :quit exits.")

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	env := interp.NewEnvironment()
	var buf strings.Builder

	for {
		prompt := promptMain
		if buf.Len() > 0 {
			prompt = promptCont
		}

		input, err := line.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			buf.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		trimmed := strings.TrimSpace(input)
		if buf.Len() == 0 && trimmed == "" {
			continue
		}
		if buf.Len() == 0 && trimmed == ":quit" {
			return 0
		}

		buf.WriteString(input)
		buf.WriteString("\n")

		source := buf.String()
		program, err := compiler.Compile(source)
		if err != nil {
			if parser.IsIncomplete(err) {
				continue
			}
			fmt.Fprintln(os.Stderr, err)
			buf.Reset()
			continue
		}

		line.AppendHistory(strings.TrimSuffix(source, "\n"))
		buf.Reset()

		// A fresh single-shot run per input; environment and player persist.
		if err := interp.NewWithEnvironment(p, env).Run(program); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}
