package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/iconforge/iconforge/internal/config"
	"github.com/iconforge/iconforge/internal/errors"
	"github.com/iconforge/iconforge/internal/ops"
	"github.com/iconforge/iconforge/internal/stylesheet"
	"github.com/iconforge/iconforge/internal/web"
)

// maxStdinBytes bounds how much piped input a command will read.
const maxStdinBytes = 16 << 20

// newCLIApp creates the CLI application with all commands.
func newCLIApp(cfg *config.Config, log *zap.Logger) *cli.App {
	if log == nil {
		log = zap.NewNop()
	}
	app := &cli.App{
		Name:    "iconforge",
		Usage:   "Convert icon-font exports and style rules into editor data files",
		Version: Version,
		Commands: []*cli.Command{
			combineCmd(cfg, log),
			convertCmd(cfg, log),
			parseCmd(),
			serializeCmd(),
			roundtripCmd(),
			checkCmd(),
			lookupCmd(cfg),
			uiCmd(cfg, log),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// combineCmd creates the combine command.
func combineCmd(cfg *config.Config, log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "combine",
		Usage:     "Combine every font-export .json file in a directory into one icon list",
		ArgsUsage: "[dir]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file (defaults to <output_dir>/<icons_output>)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Combine(cfg, log, ops.CombineInput{
				Dir:    c.Args().First(),
				Output: c.String("output"),
			})
			if err != nil {
				return outputError(err)
			}
			for _, w := range multierr.Errors(output.Warnings) {
				fmt.Fprintf(c.App.ErrWriter, "warning: %v\n", w)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// convertCmd creates the convert command.
func convertCmd(cfg *config.Config, log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert a .css file to a snippet list, or a .json document to a stylesheet",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output file (defaults to the configured output name)"},
			&cli.BoolFlag{Name: "auto", Aliases: []string{"a"}, Usage: "For .json input, also parse the produced stylesheet back into snippets"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("input file is required"))
			}
			output, err := ops.Convert(cfg, log, ops.ConvertInput{
				Path:   c.Args().First(),
				Output: c.String("output"),
				Auto:   c.Bool("auto"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// parseCmd creates the parse command.
func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse style rules into snippets (reads the file argument or stdin)",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			text, err := readSource(c)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, stylesheet.Parse(text))
		},
	}
}

// serializeCmd creates the serialize command.
func serializeCmd() *cli.Command {
	return &cli.Command{
		Name:      "serialize",
		Usage:     "Serialize a JSON document into stylesheet text (reads the file argument or stdin)",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			text, err := readSource(c)
			if err != nil {
				return outputError(err)
			}
			source := "stdin"
			if c.NArg() > 0 {
				source = c.Args().First()
			}
			doc, err := ops.DecodeDocument(source, []byte(text))
			if err != nil {
				return outputError(err)
			}
			css := stylesheet.Serialize(doc)
			if css != "" {
				fmt.Fprintln(c.App.Writer, css)
			}
			return nil
		},
	}
}

// roundtripCmd creates the roundtrip command.
func roundtripCmd() *cli.Command {
	return &cli.Command{
		Name:      "roundtrip",
		Usage:     "Parse, serialize and parse again (reads the file argument or stdin)",
		ArgsUsage: "[file]",
		Action: func(c *cli.Context) error {
			text, err := readSource(c)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, stylesheet.RoundTrip(text))
		},
	}
}

// checkCmd creates the check command.
func checkCmd() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check a stylesheet (or the stylesheet a .json document produces) with a full CSS parser",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return outputError(errors.NewInvalidRequest("input file is required"))
			}
			output, err := ops.CheckFile(c.Args().First())
			if err != nil {
				return outputError(err)
			}
			if err := outputJSON(c.App.Writer, output); err != nil {
				return err
			}
			if !output.OK {
				return cli.Exit(fmt.Sprintf("%d issue(s) found", len(output.Issues)), 1)
			}
			return nil
		},
	}
}

// lookupCmd creates the lookup command.
func lookupCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "lookup",
		Usage:     "Look up a catalog entry by name",
		ArgsUsage: "<name>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "Data file (defaults to data_file from config)"},
			&cli.BoolFlag{Name: "markdown", Aliases: []string{"m"}, Usage: "Print only the hover text"},
		},
		Action: func(c *cli.Context) error {
			cat, err := ops.LoadCatalog(cfg, c.String("data"))
			if err != nil {
				return outputError(err)
			}
			output, err := ops.Lookup(cat, c.Args().First())
			if err != nil {
				return outputError(err)
			}
			if c.Bool("markdown") {
				fmt.Fprintln(c.App.Writer, output.Hover)
				return nil
			}
			return outputJSON(c.App.Writer, output)
		},
	}
}

// uiCmd creates the ui command.
func uiCmd(cfg *config.Config, log *zap.Logger) *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Browse the catalog in a local web preview",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "data", Aliases: []string{"d"}, Usage: "Data file (defaults to data_file from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8484, Usage: "Port to listen on"},
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind to"},
		},
		Action: func(c *cli.Context) error {
			source := c.String("data")
			if source == "" && cfg != nil {
				source = cfg.DataFile
			}
			cat, err := ops.LoadCatalog(cfg, source)
			if err != nil {
				if !errors.Is(err, errors.ErrFileNotFound) {
					return outputError(err)
				}
				log.Warn("data file not found, serving an empty catalog", zap.String("path", source))
			}

			srv, err := web.NewServer(cat, source, Version, c.String("bind"), c.Int("port"), log)
			if err != nil {
				return outputError(errors.NewInternal(err))
			}
			return web.Run(srv, log)
		},
	}
}

// Helper functions

// outputJSON writes v to w as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var fErr *errors.ForgeError
	if stderrors.As(err, &fErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", fErr.Code, fErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// readSource returns the contents of the file argument, or of stdin when none is given.
func readSource(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		path := c.Args().First()
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return "", errors.NewFileNotFound(path)
			}
			return "", errors.NewInternal(err)
		}
		return string(data), nil
	}

	if !stdinHasData() {
		return "", errors.NewInvalidRequest("input must be a file argument or piped via stdin")
	}
	text, err := readStdin(maxStdinBytes)
	if err != nil {
		return "", err
	}
	return text, nil
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads stdin up to limit bytes.
func readStdin(limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, limit+1))
	if err != nil {
		return "", errors.NewInternal(err)
	}
	if int64(len(data)) > limit {
		return "", errors.NewInvalidRequest(fmt.Sprintf("stdin exceeds %d bytes", limit))
	}
	return strings.TrimSpace(string(data)), nil
}
