package main

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/inoxlang/islands/internal/pipeline"
	"github.com/inoxlang/islands/internal/scan"
	"github.com/spf13/pflag"
)

func ServeProject(ctx context.Context, args []string, outW, errW io.Writer) (exitCode int) {
	flags := pflag.NewFlagSet(SERVE_SUBCMD, pflag.ContinueOnError)
	flags.SetOutput(errW)

	var project projectFlags
	project.register(flags)
	debounceDuration := flags.Duration("debounce", pipeline.DEFAULT_WATCH_DEBOUNCE_DURATION, "duration without changes after which the changed files are transformed")

	if showHelp(SERVE_SUBCMD, flags, args, outW) {
		return
	}

	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	opts, err := project.load(errW)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	server, err := pipeline.NewServer(opts)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	//Initial emission.

	files, err := scan.ScanSources(ctx, opts.Fs, scan.Configuration{
		Patterns: opts.Config.Patterns(),
		Exclude:  []string{path.Join(opts.Config.Build.OutDir, "**")},
	})
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	//Island modules are emitted again once all the files using them are emitted.
	for _, file := range files {
		if err := server.Emit(ctx, file); err != nil {
			opts.Logger.Err(err).Str("file", file).Msg("failed to emit file")
		}
	}
	for _, moduleID := range server.Registry().ModuleIDs() {
		if err := server.Emit(ctx, moduleID); err != nil {
			opts.Logger.Err(err).Str("file", moduleID).Msg("failed to emit island module")
		}
	}

	if err := pipeline.Watch(ctx, pipeline.WatchOptions{
		Server:   server,
		Debounce: *debounceDuration,
	}); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	return 0
}
