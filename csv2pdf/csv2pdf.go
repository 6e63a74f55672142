// Copyright 2021, 2026 Tamas Gulacsi. All rights reserved.

// Command csv2pdf prints a CSV file as a PDF table,
// with the headers formatted the same way as excelify does.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/UNO-SOFT/zlog/v2"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/travishorn/excelify"
	"github.com/travishorn/excelify/pdf"
)

var verbose zlog.VerboseVar
var logger = zlog.NewLogger(zlog.MaybeConsoleHandler(&verbose, os.Stderr)).SLog()

func main() {
	if err := Main(); err != nil {
		logger.Error("MAIN", "error", err)
		os.Exit(1)
	}
}

func Main() error {
	fs := flag.NewFlagSet("csv2pdf", flag.ContinueOnError)
	fs.Var(&verbose, "v", "logging verbosity")
	flagEnc := fs.String("charset", excelify.EncName, "csv charset name")
	flagComma := fs.String("comma", ",", "field delimiter (one character, or \\t)")
	flagConfig := fs.String("config", excelify.DefaultConfigPath(), "configuration file (JSON or YAML)")
	flagOut := fs.String("o", "", "output file name (default input file + .pdf)")
	flagColor := fs.String("alternate-color", pdf.FormatColor(pdf.DefaultAlternateColor), "alternate color")
	flagLandscape := fs.Bool("L", false, "landscape orientation (default: portrait)")
	flagFontSize := fs.Float64("f", 8, "font size")

	app := ffcli.Command{Name: "csv2pdf", ShortUsage: "csv2pdf [flags] <file.csv>", FlagSet: fs,
		Options: []ff.Option{ff.WithEnvVarPrefix("CSV2PDF")},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 1 {
				return flag.ErrHelp
			}
			alternateColor, err := pdf.ParseColor(*flagColor)
			if err != nil {
				return err
			}
			comma, err := excelify.ParseComma(*flagComma)
			if err != nil {
				return err
			}
			cfg := excelify.LoadConfig(*flagConfig, os.Stderr)
			table, err := excelify.ReadTable(args[0], excelify.ReadOptions{Charset: *flagEnc, Comma: comma})
			if err != nil {
				return err
			}
			headers := excelify.FormatHeaders(table.Columns, cfg.UppercaseWords)
			logger.Debug("read", "headers", headers, "rows", len(table.Rows))

			out := *flagOut
			if out == "" {
				out = args[0] + ".pdf"
			}
			fh := os.Stdout
			if out != "-" {
				if fh, err = os.Create(out); err != nil {
					return err
				}
			}
			defer fh.Close()
			w := pdf.NewWriter(fh, pdf.Options{
				FontSize:       *flagFontSize,
				Landscape:      *flagLandscape,
				AlternateColor: &alternateColor,
			})
			if err := excelify.WriteTable(ctx, w, "", table, headers); err != nil {
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}
			return fh.Close()
		},
	}

	args := make([]string, 0, len(os.Args))
	for _, a := range os.Args[1:] {
		if strings.HasPrefix(a, "-f") && len(a) > 2 && '0' <= a[2] && a[2] <= '9' {
			args = append(args, "-f", a[2:])
		} else {
			args = append(args, a)
		}
	}
	logger.Debug("args", "original", os.Args[1:], "fixed", args)
	if err := app.Parse(args); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return app.Run(ctx)
}
