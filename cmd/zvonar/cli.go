package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/avolkov/zvonar/internal/config"
	"github.com/avolkov/zvonar/internal/errors"
	"github.com/avolkov/zvonar/internal/ops"
	"github.com/avolkov/zvonar/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "zvonar",
		Usage:   "Parish schedule text to HTML pipeline",
		Version: Version,
		Commands: []*cli.Command{
			convertCmd(),
			patchCmd(cfg),
			runCmd(db, cfg),
			historyCmd(db),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// convertCmd creates the convert command.
func convertCmd() *cli.Command {
	return &cli.Command{
		Name:  "convert",
		Usage: "Convert schedule text to an HTML fragment (reads text from stdin, --file or --dir)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read schedule text from a file"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "Gather .txt files from a directory"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the fragment to a file instead of the JSON output"},
		},
		Action: func(c *cli.Context) error {
			text, err := resolveText(c)
			if err != nil {
				return outputError(err)
			}

			output, err := ops.Convert(ops.ConvertInput{Text: text})
			if err != nil {
				return outputError(err)
			}

			if out := c.String("out"); out != "" {
				if err := os.WriteFile(out, []byte(output.Fragment), 0o644); err != nil {
					return outputError(errors.NewInternal(err))
				}
				return outputJSON(map[string]any{
					"out":     out,
					"entries": output.Entries,
					"rows":    output.Rows,
				})
			}

			return outputJSON(output)
		},
	}
}

// patchCmd creates the patch command.
func patchCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "patch",
		Usage: "Splice an HTML fragment into the target page (reads fragment from stdin or --fragment-file)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "Target HTML file (defaults to config target_file)"},
			&cli.StringFlag{Name: "fragment-file", Usage: "Read the fragment from a file instead of stdin"},
		},
		Action: func(c *cli.Context) error {
			var fragment string
			if path := c.String("fragment-file"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					if os.IsNotExist(err) {
						return outputError(errors.NewFileNotFound(path))
					}
					return outputError(errors.NewInternal(err))
				}
				fragment = string(data)
			} else {
				if !stdinHasData() {
					return outputError(errors.NewInvalidRequest("fragment must be piped via stdin or passed with --fragment-file"))
				}
				var err error
				fragment, err = readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
			}

			target := c.String("target")
			if target == "" && cfg != nil {
				target = cfg.TargetFile
			}

			input := ops.ApplyInput{
				TargetPath: target,
				Fragment:   fragment,
			}
			if cfg != nil {
				input.BackupKeep = cfg.BackupKeep
			}

			output, err := ops.Apply(input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// runCmd creates the run command.
func runCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Execute the whole pipeline: gather, convert, patch, journal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Source file or directory (defaults to config source_dir)"},
			&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "Target HTML file (defaults to config target_file)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.RunInput{
				SourcePath: c.String("source"),
				TargetPath: c.String("target"),
			}

			// Piped text takes precedence over --source and config.
			if stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				input.Text = text
			}

			output, err := ops.Run(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recorded pipeline runs, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultHistoryLimit, Usage: "Maximum number of runs to return"},
			&cli.IntFlag{Name: "offset", Usage: "Number of runs to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.History(db, ops.HistoryInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the preview web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8787, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			fmt.Fprintf(os.Stderr, "zvonar %s serving on http://%s\n", Version, srv.Addr)
			if err := web.Run(srv); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// resolveText gathers schedule text from --file, --dir or piped stdin.
func resolveText(c *cli.Context) (string, error) {
	if path := c.String("file"); path != "" {
		gathered, err := ops.Gather(path)
		if err != nil {
			return "", err
		}
		return gathered.Text, nil
	}
	if dir := c.String("dir"); dir != "" {
		gathered, err := ops.Gather(dir)
		if err != nil {
			return "", err
		}
		return gathered.Text, nil
	}
	if !stdinHasData() {
		return "", errors.NewInvalidRequest("schedule text must be piped via stdin or passed with --file/--dir")
	}
	return readStdin()
}

// outputJSON writes v to stdout as indented JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if zErr, ok := err.(*errors.Error); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", zErr.Code, zErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
