package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/pflag"
)

const (
	BUILD_SUBCMD                 = "build"
	SERVE_SUBCMD                 = "serve"
	TRANSFORM_SUBCMD             = "transform"
	INSPECT_SUBCMD               = "inspect"
	CHECK_CONFIG_SUBCMD          = "check-config"
	INSTALL_COMPLETIONS_SUBCMD   = "install-completions"
	UNINSTALL_COMPLETIONS_SUBCMD = "uninstall-completions"
	HELP_SUBCMD                  = "help"
)

var (
	SUBCOMMANDS = []string{
		BUILD_SUBCMD, SERVE_SUBCMD, TRANSFORM_SUBCMD, INSPECT_SUBCMD, CHECK_CONFIG_SUBCMD,
		INSTALL_COMPLETIONS_SUBCMD, UNINSTALL_COMPLETIONS_SUBCMD, HELP_SUBCMD,
	}

	HELP_SUBCMD_EQUIVALENTS = []string{"--help", "-help", "-h"}

	SUBCOMMAND_DESCRIPTIONS = [][2]string{
		{BUILD_SUBCMD, "transform the project for production, the client and server outputs are written in the out dir"},
		{SERVE_SUBCMD, "watch the project and write the transformed files in the dev directory of the out dir"},
		{TRANSFORM_SUBCMD, "print the transformed code of a single file (client side by default)"},
		{INSPECT_SUBCMD, "list the island wrappers of a rendered HTML document"},
		{CHECK_CONFIG_SUBCMD, "validate the configuration file"},

		{INSTALL_COMPLETIONS_SUBCMD, "install CLI completions by addding the completion command to the detected rc file (supported shells are bash, zsh and fish)"},
		{UNINSTALL_COMPLETIONS_SUBCMD, "uninstall CLI completions by removing the completion command from the detected rc file"},
		{HELP_SUBCMD, "show the general help or command-specific help"},
	}

	SUBCOMMAND_DESCRIPTION_MAP = map[string]string{}

	CMD_HELP = "commands:\n"
)

func init() {
	for _, entry := range SUBCOMMAND_DESCRIPTIONS {
		cmd, desc := entry[0], entry[1]
		SUBCOMMAND_DESCRIPTION_MAP[cmd] = desc
		CMD_HELP += "\t" + cmd + " - " + desc + "\n"
	}
	CMD_HELP += "\nType `" + COMMAND_NAME + " help <command>` to get command-specific help.\n"
}

func showHelp(cmd string, flags *pflag.FlagSet, args []string, out io.Writer) bool {
	//only show help
	if slices.Contains(args, "-h") || slices.Contains(args, "--help") {

		if desc, ok := SUBCOMMAND_DESCRIPTION_MAP[cmd]; ok {
			fmt.Fprintln(out, desc)
		}

		flags.SetOutput(out)
		fmt.Fprint(out, "\noptions:\n")
		flags.PrintDefaults()

		return true
	}

	return false
}
