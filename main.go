// Package main implements the main entry point for a CHIP-8 virtual machine
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/chip8vm/internal/cli"
	"github.com/retroenv/chip8vm/internal/config"
	"github.com/retroenv/chip8vm/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if err := fileprocessor.ProcessFile(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
			return
		}
		logger.Error("Processing failed", log.Err(err))
		os.Exit(1)
	}
}
