// Package cli parses the command-line surface of the streamlang runner.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the settings parsed from command-line arguments.
type Config struct {
	ScriptPath string // script file to run; empty starts the REPL
	LogLevel   string // debug, info, warn, error
	Duration   int64  // simulated media duration in seconds
	ShowHelp   bool
}

// ParseArgs parses command-line arguments (excluding the program name).
// Flags may appear before or after the script path; environment variables
// LOG_LEVEL and MEDIA_DURATION act as fallbacks.
func ParseArgs(args []string) (*Config, error) {
	reordered := reorderArgs(args)

	fs := flag.NewFlagSet("streamlang", flag.ContinueOnError)

	config := &Config{}

	var durationSec int
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	fs.StringVar(&config.LogLevel, "l", "info", "log level (shorthand)")
	fs.IntVar(&durationSec, "duration", 0, "simulated media duration in seconds")
	fs.IntVar(&durationSec, "d", 0, "simulated media duration in seconds (shorthand)")
	fs.BoolVar(&config.ShowHelp, "help", false, "show help")
	fs.BoolVar(&config.ShowHelp, "h", false, "show help (shorthand)")

	if err := fs.Parse(reordered); err != nil {
		return nil, err
	}

	// Environment fallbacks; flags win.
	if config.LogLevel == "info" {
		if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
			config.LogLevel = strings.ToLower(lvl)
		}
	}
	if durationSec == 0 {
		if env := os.Getenv("MEDIA_DURATION"); env != "" {
			if d, err := strconv.Atoi(env); err == nil && d > 0 {
				durationSec = d
			}
		}
	}
	if durationSec < 0 {
		return nil, fmt.Errorf("duration must be non-negative, got %d", durationSec)
	}
	config.Duration = int64(durationSec)

	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level: %s", config.LogLevel)
	}

	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one script path, got %d arguments", fs.NArg())
	}
	if fs.NArg() == 1 {
		config.ScriptPath = fs.Arg(0)
	}

	return config, nil
}

// reorderArgs moves flags in front of positional arguments so that a flag
// after the script path still takes effect.
func reorderArgs(args []string) []string {
	var flags, positional []string

	skipNext := false
	for i, arg := range args {
		if skipNext {
			flags = append(flags, arg)
			skipNext = false
			continue
		}

		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			// A value-taking flag without '=' consumes the next argument.
			if !strings.Contains(arg, "=") && takesValue(arg) && i+1 < len(args) {
				skipNext = true
			}
			continue
		}

		positional = append(positional, arg)
	}

	return append(flags, positional...)
}

func takesValue(arg string) bool {
	name := strings.TrimLeft(arg, "-")
	switch name {
	case "log-level", "l", "duration", "d":
		return true
	}
	return false
}
