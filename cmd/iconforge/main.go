package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/errors"
	"github.com/iconforge/iconforge/internal/mcp"
	"github.com/iconforge/iconforge/internal/ops"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"combine": true, "convert": true,
	"parse": true, "serialize": true, "roundtrip": true, "check": true,
	"lookup": true, "ui": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
   _                 ___
  (_)__ ___  _ _    | __|__ _ _ __ _ ___
  | / _/ _ \| ' \   | _/ _ \ '_/ _' / -_)
  |_\__\___/|_||_|  |_|\___/_| \__, \___|
                               |___/

  Icon-font and style rule converter

  Usage: iconforge <command> [options]
         iconforge --help

  MCP server mode requires piped input.`)
}

// exitOnError prints err to stderr and exits. Errors with an empty message
// (already reported on stdout) exit silently.
func exitOnError(err error) {
	if msg := err.Error(); msg != "" {
		fmt.Fprintf(os.Stderr, "error: %v\n", msg)
	}
	os.Exit(1)
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Handle --help/--version before loading config
	if isHelpOrVersion() {
		if err := newCLIApp(nil, nil).Run(os.Args); err != nil {
			exitOnError(err)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine home directory: %v\n", err)
		os.Exit(1)
	}
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: could not determine working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadWithRepo(filepath.Join(homeDir, ".iconforge"), cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := cfg.Logging.Prepare()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to prepare logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// CLI mode: known subcommand
	if isCLIMode() {
		if err := newCLIApp(cfg, log).Run(os.Args); err != nil {
			_ = log.Sync()
			exitOnError(err)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'iconforge --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default). The catalog tools report a missing data
	// file per call, so a missing catalog is not fatal here.
	cat, err := ops.LoadCatalog(cfg, "")
	if err != nil {
		if !errors.Is(err, errors.ErrFileNotFound) {
			log.Error("failed to load catalog", zap.Error(err))
			_ = log.Sync()
			os.Exit(1)
		}
		log.Warn("data file not found, catalog tools will report it", zap.String("path", cfg.DataFile))
	}

	if err := mcp.Run(cfg, cat, Version, log); err != nil {
		_ = log.Sync()
		exitOnError(err)
	}
}
