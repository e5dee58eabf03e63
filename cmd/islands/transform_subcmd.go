package main

import (
	"context"
	"fmt"
	"io"

	"github.com/inoxlang/islands/internal/pipeline"
	"github.com/spf13/pflag"
)

func TransformFile(ctx context.Context, args []string, outW, errW io.Writer) (exitCode int) {
	flags := pflag.NewFlagSet(TRANSFORM_SUBCMD, pflag.ContinueOnError)
	flags.SetOutput(errW)

	var project projectFlags
	project.register(flags)
	ssr := flags.Bool("ssr", false, "transform the file for the server")

	if showHelp(TRANSFORM_SUBCMD, flags, args, outW) {
		return
	}

	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	if flags.NArg() == 0 {
		fmt.Fprintln(errW, "missing file path")
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

	code, err := server.TransformFile(ctx, flags.Arg(0), *ssr)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	fmt.Fprint(outW, code)
	return 0
}
