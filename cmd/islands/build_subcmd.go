package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/inoxlang/islands/internal/config"
	"github.com/inoxlang/islands/internal/pipeline"
	"github.com/maruel/natural"
	"github.com/spf13/pflag"
	"golang.org/x/exp/maps"
)

func BuildProject(ctx context.Context, args []string, outW, errW io.Writer) (exitCode int) {
	flags := pflag.NewFlagSet(BUILD_SUBCMD, pflag.ContinueOnError)
	flags.SetOutput(errW)

	var (
		project projectFlags
		outDir  string
		minify  bool
		stamp   string
	)
	project.register(flags)
	flags.StringVar(&outDir, "out-dir", "", "output directory, overrides build.outDir")
	flags.BoolVar(&minify, "minify", false, "minify the hydration code, overrides build.minify")
	flags.StringVar(&stamp, "stamp", "", "cache busting stamp appended to the asset URLs (a new ULID by default)")

	if showHelp(BUILD_SUBCMD, flags, args, outW) {
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

	if outDir != "" {
		opts.Config.Build.OutDir = outDir
	}
	if flags.Changed("minify") {
		opts.Config.Build.Minify = minify
	}

	result, err := pipeline.Build(ctx, pipeline.BuildOptions{
		Options: opts,
		Stamp:   stamp,
	})
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	profile := config.COLOR_PROFILE
	header := profile.String("build done").Foreground(profile.Color("2")).Bold()

	fmt.Fprintf(outW, "%s in %s, %d files transformed, %d island modules\n", header, result.Duration.Round(time.Millisecond), len(result.Files), result.Registry.Count())

	for _, moduleID := range result.Registry.ModuleIDs() {
		fmt.Fprintf(outW, "  %s %v\n", profile.String(moduleID).Foreground(profile.Color("6")), result.Registry.TagNames(moduleID))
	}

	names := maps.Keys(result.Input)
	sort.Sort(natural.StringSlice(names))

	if len(names) > 0 {
		fmt.Fprintln(outW, profile.String("entries:").Bold())
		for _, name := range names {
			fmt.Fprintf(outW, "  %s: %s\n", name, result.Input[name])
		}
	}

	return 0
}
