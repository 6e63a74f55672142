// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Command excelify converts a CSV file into a formatted XLSX file,
// next to the input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/travishorn/excelify"
	"github.com/travishorn/excelify/xlsx"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

const usage = "excelify [flags] <path_to_csv_file>"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	err := Main(ctx, os.Args[1:], os.Stdout)
	cancel()
	if code := report(os.Stdout, err); code != 0 {
		os.Exit(code)
	}
}

// usageError is a command line problem, detected before reading anything.
type usageError string

func (ue usageError) Error() string        { return string(ue) }
func (ue usageError) Is(target error) bool { return target == excelify.ErrUsage }

var errArgCount = usageError("Usage: " + usage)

// report prints the outcome of Main, and returns the exit code.
func report(w io.Writer, err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errArgCount):
		fmt.Fprintln(w, err.Error())
	default:
		fmt.Fprintf(w, "Error: %s\n", err)
	}
	return 1
}

func Main(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("excelify", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagConfig := fs.String("config", excelify.DefaultConfigPath(), "configuration file (JSON or YAML)")
	flagEnc := fs.String("charset", "utf-8", "csv charset name")
	flagComma := fs.String("comma", ",", "field delimiter (one character, or \\t)")
	flagSheet := fs.String("sheet", "Sheet1", "sheet name")
	flagNoInfer := fs.Bool("no-infer", false, "keep every cell as text")

	app := ffcli.Command{Name: "excelify", ShortUsage: usage, FlagSet: fs,
		Options: []ff.Option{ff.WithEnvVarPrefix("EXCELIFY")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return errArgCount
			}
			input := args[0]
			if !strings.HasSuffix(strings.ToLower(input), ".csv") {
				return usageError("Input file must be a CSV file")
			}
			output := OutputPath(input)
			comma, err := excelify.ParseComma(*flagComma)
			if err != nil {
				return err
			}

			cfg := excelify.LoadConfig(*flagConfig, stdout)
			logger.Debug("config", "path", *flagConfig, "uppercase", cfg.UppercaseWords.Words())

			table, err := excelify.ReadTable(input, excelify.ReadOptions{
				Charset:    *flagEnc,
				Comma:      comma,
				InferTypes: !*flagNoInfer,
			})
			if err != nil {
				return err
			}
			headers := excelify.FormatHeaders(table.Columns, cfg.UppercaseWords)
			logger.Debug("read", "path", input, "columns", table.Columns, "headers", headers, "rows", len(table.Rows))
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := writeFile(output, func(w io.Writer) error {
				xlw := xlsx.NewWriter(w, excelify.DefaultLayout)
				if err := excelify.WriteTable(ctx, xlw, *flagSheet, table, headers); err != nil {
					return err
				}
				return xlw.Close()
			}); err != nil {
				return err
			}
			logger.Debug("written", "path", output)
			fmt.Fprintf(stdout, "Successfully converted %s to %s\n", input, output)
			return nil
		},
	}

	if err := app.Parse(args); err != nil {
		return err
	}
	return app.Run(ctx)
}

// OutputPath replaces the extension of the last element of path with .xlsx,
// or appends .xlsx if there is none.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".xlsx"
}

// writeFile calls write with a temporary file next to path,
// and renames it to path only if everything succeeded.
//
// The returned error wraps excelify.ErrWrite.
func writeFile(path string, write func(io.Writer) error) error {
	wrap := func(err error) error {
		if errors.Is(err, excelify.ErrWrite) {
			return fmt.Errorf("%s: %w", path, err)
		}
		return fmt.Errorf("%w: %s: %w", excelify.ErrWrite, path, err)
	}
	fh, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return wrap(err)
	}
	tmp := fh.Name()
	defer os.Remove(tmp)
	if err = write(fh); err != nil {
		fh.Close()
		return wrap(err)
	}
	if err = fh.Chmod(0o644); err != nil {
		logger.Debug("chmod", "file", tmp, "error", err)
	}
	if err = fh.Close(); err != nil {
		return wrap(err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return wrap(err)
	}
	return nil
}
