package main

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

var (
	projectFlagPredictors = map[string]complete.Predictor{
		"dir":       predict.Dirs("*"),
		"config":    predict.Files("*.yaml"),
		"log-level": predict.Set{"debug", "info", "warn", "error"},
	}

	completer = &complete.Command{
		Sub: map[string]*complete.Command{
			BUILD_SUBCMD: {
				Flags: withProjectFlags(map[string]complete.Predictor{
					"out-dir": predict.Dirs("*"),
					"minify":  predict.Nothing,
					"stamp":   predict.Nothing,
				}),
			},
			SERVE_SUBCMD: {
				Flags: withProjectFlags(map[string]complete.Predictor{
					"debounce": predict.Set{"100ms", "500ms"},
				}),
			},
			TRANSFORM_SUBCMD: {
				Flags: withProjectFlags(map[string]complete.Predictor{
					"ssr": predict.Nothing,
				}),
				Args: predict.Files("*"),
			},
			INSPECT_SUBCMD: {
				Flags: map[string]complete.Predictor{
					"json": predict.Nothing,
				},
				Args: predict.Files("*.html"),
			},
			CHECK_CONFIG_SUBCMD: {
				Flags: withProjectFlags(nil),
			},
			HELP_SUBCMD:                  {},
			INSTALL_COMPLETIONS_SUBCMD:   {},
			UNINSTALL_COMPLETIONS_SUBCMD: {},
		},
	}
)

func withProjectFlags(flags map[string]complete.Predictor) map[string]complete.Predictor {
	merged := map[string]complete.Predictor{}
	for name, predictor := range projectFlagPredictors {
		merged[name] = predictor
	}
	for name, predictor := range flags {
		merged[name] = predictor
	}
	return merged
}
