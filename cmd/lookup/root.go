/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"dirpx.dev/lookup"
	"dirpx.dev/lookup/config"
	"dirpx.dev/lookup/internal/demo"
)

var (
	configFile  string
	outputFile  string
	verbose     bool
	private     bool
	static      bool
	fields      bool
	events      bool
	unsupported bool
	extensions  bool
	maxItems    int

	output io.Writer
	model  *demo.Document
)

var rootCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Object inspector for the demo building model",
	Long: `lookup reflects the members of a sample building document
(walls, doors, parameters) and prints them as a tree.

Settings are read from LOOKUP_* environment variables (and a .env
file), then from --config, then from flags.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(cmd); err != nil {
			return err
		}
		if outputFile != "" {
			f, err := os.Create(outputFile)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			output = f
		} else {
			output = cmd.OutOrStdout()
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if f, ok := output.(*os.File); ok && f != os.Stdout {
			f.Close()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "read settings from a YAML or JSON file")
	flags.StringVarP(&outputFile, "output", "o", "", "write output to file instead of stdout")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log debug messages to stderr")
	flags.BoolVar(&private, "private", config.DefaultIncludePrivate, "include unexported fields")
	flags.BoolVar(&static, "static", config.DefaultIncludeStatic, "include static members on instances")
	flags.BoolVar(&fields, "fields", config.DefaultIncludeFields, "include struct fields")
	flags.BoolVar(&events, "events", config.DefaultIncludeEvents, "include func and chan fields")
	flags.BoolVar(&unsupported, "unsupported", config.DefaultIncludeUnsupported, "keep members that cannot be evaluated")
	flags.BoolVar(&extensions, "extensions", config.DefaultIncludeExtensions, "include computed extension members")
	flags.IntVar(&maxItems, "max-items", config.DefaultMaxItems, "maximum children listed per collection")

	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(staticCmd)
}

var registerOnce = sync.OnceValue(func() error {
	return registerDemo()
})

// setup applies settings in order of precedence and installs the demo
// describers into the global registries.
func setup(cmd *cobra.Command) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	lookup.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.FromEnv(config.DefaultConfig())
	if err != nil {
		return err
	}
	if configFile != "" {
		if cfg, err = config.LoadFile(configFile, cfg); err != nil {
			return err
		}
	}

	var opts []config.Option
	flags := cmd.Flags()
	if flags.Changed("private") {
		opts = append(opts, config.WithIncludePrivate(private))
	}
	if flags.Changed("static") {
		opts = append(opts, config.WithIncludeStatic(static))
	}
	if flags.Changed("fields") {
		opts = append(opts, config.WithIncludeFields(fields))
	}
	if flags.Changed("events") {
		opts = append(opts, config.WithIncludeEvents(events))
	}
	if flags.Changed("unsupported") {
		opts = append(opts, config.WithIncludeUnsupported(unsupported))
	}
	if flags.Changed("extensions") {
		opts = append(opts, config.WithIncludeExtensions(extensions))
	}
	if flags.Changed("max-items") {
		opts = append(opts, config.WithMaxItems(maxItems))
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	lookup.SetConfig(cfg)

	if err := registerOnce(); err != nil {
		return fmt.Errorf("failed to register demo describers: %w", err)
	}
	if model == nil {
		model = demo.Sample()
	}
	return nil
}

func registerDemo() error {
	if err := demo.Register(lookup.Registry()); err != nil {
		return err
	}
	if err := demo.RegisterStatics(lookup.Engine().Statics()); err != nil {
		return err
	}
	return demo.RegisterExtensions(lookup.Engine().Extensions())
}
