package main

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

func CheckConfig(args []string, outW, errW io.Writer) (exitCode int) {
	flags := pflag.NewFlagSet(CHECK_CONFIG_SUBCMD, pflag.ContinueOnError)
	flags.SetOutput(errW)

	var project projectFlags
	project.register(flags)

	if showHelp(CHECK_CONFIG_SUBCMD, flags, args, outW) {
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

	if err := opts.Config.Validate(); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	fmt.Fprintln(outW, "valid configuration")
	return 0
}
