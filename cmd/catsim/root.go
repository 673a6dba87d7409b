package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

// app carries the per-invocation viper instance shared by all commands.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "catsim",
		Short: "Category hierarchy similarity",
		Long: `catsim turns a leveled category hierarchy into a pairwise weighted
Jaccard similarity matrix over the items at its bottom level.

Flags can also be set through CATSIM_* environment variables, a .env file
or a .catsim.yaml config file.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(a.v, a.cfgFile)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./.catsim.yaml or $HOME/.catsim.yaml)")
	pf.StringP("store", "s", "", "store location: dir, file://dir, s3://bucket/prefix or minio://host/bucket/prefix")
	pf.String("codec", "go-json", "JSON codec: json or go-json")
	pf.String("log-format", "text", "log format: text or json")
	pf.String("log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		newSimilarityCmd(a),
		newSilhouetteCmd(a),
		newStagesCmd(),
		newRegroupCmd(a),
	)
	return root
}

// flagKeys maps viper keys to the flags of the executing command.
var flagKeys = map[string]string{
	"store":                   "store",
	"codec":                   "codec",
	"log.format":              "log-format",
	"log.level":               "log-level",
	"output":                  "output",
	"project":                 "project",
	"levels":                  "levels",
	"paths":                   "paths",
	"columns":                 "columns",
	"weights":                 "weights",
	"caps":                    "caps",
	"epsilon":                 "epsilon",
	"workers":                 "workers",
	"marker":                  "marker",
	"rules":                   "rules",
	"compression":             "compression",
	"metrics_out":             "metrics-out",
	"limits.memory_bytes":     "memory-limit",
	"limits.io_bytes_per_sec": "io-limit",
	"limits.max_workers":      "max-workers",
}

// load binds the flags of cmd and returns the validated configuration.
// Binding happens per invocation so commands sharing a key do not clash.
func (a *app) load(cmd *cobra.Command) (cliConfig, error) {
	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return cliConfig{}, fmt.Errorf("bind %s: %w", name, err)
			}
		}
	}
	return loadConfig(a.v)
}
