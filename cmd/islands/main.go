package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"unicode"

	"github.com/inoxlang/islands/internal/afs"
	"github.com/inoxlang/islands/internal/config"
	"github.com/inoxlang/islands/internal/pipeline"
	"github.com/posener/complete/v2/install"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

const (
	ERROR_STATUS_CODE = 1

	COMMAND_NAME      = "islands"
	DEFAULT_LOG_LEVEL = "info"
)

func main() {
	//handle completions
	completer.Complete(COMMAND_NAME)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	statusCode := _main(ctx, os.Args, os.Stdout, os.Stderr)
	cancel()

	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

func _main(ctx context.Context, args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	if len(args) == 1 { //no subcommand specified
		fmt.Fprint(outW, CMD_HELP)
		return
	}

	mainSubCommand := args[1]
	mainSubCommandArgs := args[2:]

	//if the command has the shape help <subcommand> ... we modify the arguments to ask the subcommand to print its help message.
	if mainSubCommand == HELP_SUBCMD && len(mainSubCommandArgs) > 0 && mainSubCommandArgs[0] != "" && unicode.IsLetter(rune(mainSubCommandArgs[0][0])) {
		mainSubCommand = mainSubCommandArgs[0]
		mainSubCommandArgs = []string{"-h"}
	}

	if slices.Contains(HELP_SUBCMD_EQUIVALENTS, mainSubCommand) {
		mainSubCommand = HELP_SUBCMD
	}

	//unknown command
	if !slices.Contains(SUBCOMMANDS, mainSubCommand) {
		fmt.Fprintf(errW, "unknown command '%s'\n%s", mainSubCommand, CMD_HELP)
		return ERROR_STATUS_CODE
	}

	switch mainSubCommand {
	case HELP_SUBCMD:
		fmt.Fprint(outW, CMD_HELP)
		return
	case INSTALL_COMPLETIONS_SUBCMD:
		err := install.Install(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "installed")
		return
	case UNINSTALL_COMPLETIONS_SUBCMD:
		err := install.Uninstall(COMMAND_NAME)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		fmt.Fprintln(outW, "uninstalled")
		return
	case BUILD_SUBCMD:
		return BuildProject(ctx, mainSubCommandArgs, outW, errW)
	case SERVE_SUBCMD:
		return ServeProject(ctx, mainSubCommandArgs, outW, errW)
	case TRANSFORM_SUBCMD:
		return TransformFile(ctx, mainSubCommandArgs, outW, errW)
	case INSPECT_SUBCMD:
		return InspectDocument(mainSubCommandArgs, outW, errW)
	case CHECK_CONFIG_SUBCMD:
		return CheckConfig(mainSubCommandArgs, outW, errW)
	}

	return
}

// projectFlags are the flags shared by the subcommands operating on a project.
type projectFlags struct {
	dir        string
	configPath string
	logLevel   string
}

func (f *projectFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.dir, "dir", ".", "project directory")
	flags.StringVarP(&f.configPath, "config", "c", config.CONFIG_FILENAME, "configuration file, relative to the project directory")
	flags.StringVar(&f.logLevel, "log-level", DEFAULT_LOG_LEVEL, "minimum log level (debug, info, warn, error)")
}

// load returns the options of the pipelines, the configuration file is optional.
func (f *projectFlags) load(errW io.Writer) (pipeline.Options, error) {
	logger, err := newLogger(errW, f.logLevel)
	if err != nil {
		return pipeline.Options{}, err
	}

	fls, err := afs.NewOsFilesystem(f.dir)
	if err != nil {
		return pipeline.Options{}, err
	}

	cfg, err := config.Load(fls, filepath.ToSlash(f.configPath))
	if err != nil {
		return pipeline.Options{}, err
	}

	return pipeline.Options{
		Fs:     fls,
		Config: cfg,
		Logger: logger,
	}, nil
}

func newLogger(errW io.Writer, level string) (zerolog.Logger, error) {
	parsedLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level: %q", level)
	}

	out := zerolog.ConsoleWriter{
		Out:     errW,
		NoColor: !config.SHOULD_COLORIZE,
	}
	return zerolog.New(out).Level(parsedLevel).With().Timestamp().Logger(), nil
}
