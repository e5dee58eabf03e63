package main

import (
	"fmt"
	"io"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
	"github.com/inoxlang/islands/internal/config"
	"github.com/inoxlang/islands/internal/hydration"
	"github.com/inoxlang/islands/internal/islands"
	"github.com/spf13/pflag"
)

type inspectedIsland struct {
	Hash      string         `json:"hash"`
	Component string         `json:"component"`
	Hydrated  string         `json:"hydrated"`
	Props     map[string]any `json:"props"`
	PropsErr  string         `json:"propsError,omitempty"`
}

// InspectDocument lists the island wrappers of a rendered HTML document (file path or - for stdin).
func InspectDocument(args []string, outW, errW io.Writer) (exitCode int) {
	flags := pflag.NewFlagSet(INSPECT_SUBCMD, pflag.ContinueOnError)
	flags.SetOutput(errW)
	asJSON := flags.Bool("json", false, "print the islands as JSON")

	if showHelp(INSPECT_SUBCMD, flags, args, outW) {
		return
	}

	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	if flags.NArg() == 0 {
		fmt.Fprintln(errW, "missing HTML file path")
		return ERROR_STATUS_CODE
	}

	var input io.Reader = os.Stdin
	if path := flags.Arg(0); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		defer f.Close()
		input = f
	}

	doc, err := goquery.NewDocumentFromReader(input)
	if err != nil {
		fmt.Fprintln(errW, err)
		return ERROR_STATUS_CODE
	}

	var found []inspectedIsland
	for _, island := range hydration.FindIslands(doc) {
		inspected := inspectedIsland{
			Hash:      island.Hash,
			Component: island.Component,
			Hydrated:  island.Hydrated,
		}
		props, err := island.Props()
		if err != nil {
			inspected.PropsErr = err.Error()
		} else {
			inspected.Props = props
		}
		found = append(found, inspected)
	}

	if *asJSON {
		if found == nil {
			found = []inspectedIsland{}
		}
		encoder := json.NewEncoder(outW)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(found); err != nil {
			fmt.Fprintln(errW, err)
			return ERROR_STATUS_CODE
		}
		return 0
	}

	profile := config.COLOR_PROFILE
	fmt.Fprintf(outW, "%d islands\n", len(found))

	for _, island := range found {
		state := profile.String(island.Hydrated).Foreground(profile.Color("3"))
		if island.Hydrated == islands.HYDRATED_VALUE {
			state = profile.String(island.Hydrated).Foreground(profile.Color("2"))
		}
		fmt.Fprintf(outW, "  %s (%s) hydrated=%s", profile.String(island.Component).Bold(), island.Hash, state)
		if island.PropsErr != "" {
			fmt.Fprintf(outW, " %s", profile.String(island.PropsErr).Foreground(profile.Color("1")))
		} else {
			fmt.Fprintf(outW, " props=%d", len(island.Props))
		}
		fmt.Fprintln(outW)
	}

	return 0
}
