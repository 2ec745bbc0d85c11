// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the attributes available to --attrs and --sort",
		HideDefault: true,
	}
}

// NewGlobalFlags returns the output flags shared by every query command.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
			Validator: func(value int) error {
				return FlagValidators(value, PaddingValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewQueryFlag returns the --query flag. Its text is joined with the command's
// positional arguments.
func NewQueryFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "query",
		Aliases: []string{"q"},
		Usage:   "search text, combined with any positional search terms",
	}
}

// NewDBFlag constructs the "db" flag, optionally namespaced to a command and
// config file. params[1] is the config file.
func NewDBFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:  "db",
		Usage: "path of the game library database",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("GAMESQ_DB"),
		),
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NewLibraryFlags returns the flags shared by the commands that search the
// game library.
func NewLibraryFlags(ns string, cfgPath string) []cli.Flag {
	return []cli.Flag{
		NewDBFlag(ns, cfgPath),
		&cli.BoolFlag{
			Name:  "hidden",
			Usage: "include hidden games unless the search says otherwise",
			Value: false,
		},
		&cli.BoolFlag{
			Name:  "installed",
			Usage: "only installed games unless the search says otherwise",
			Value: false,
		},
		&cli.StringFlag{
			Name:  "service",
			Usage: "search the catalog of a service, such as steam or gog",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("GAMESQ_SERVICE"),
			),
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
