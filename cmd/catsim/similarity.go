package main

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/hupe1980/catsim"
	"github.com/hupe1980/catsim/prom"
	"github.com/hupe1980/catsim/table"
)

func newSimilarityCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similarity",
		Short: "Compute the similarity matrix and save it to the store",
		Example: `  catsim similarity --store ./data --levels 3
  catsim similarity --store s3://bucket/wiki --paths level0.csv,level1.csv \
      --columns category,infra1 --weights 1,0.5 --output run1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}
			return runSimilarity(cmd, cfg)
		},
	}

	f := cmd.Flags()
	f.IntP("levels", "l", 0, "number of hierarchy levels (derives table paths)")
	f.StringSlice("paths", nil, "explicit level table paths, level 0 first")
	f.String("project", "", "project directory the derived paths live in")
	f.StringSlice("columns", nil, "category column per level")
	f.StringSlice("weights", nil, "relative weight per level")
	f.StringSlice("caps", nil, "maximum category size per level, 0 for no cap")
	f.Float64("epsilon", 1e-4, "similarity floor")
	f.IntP("workers", "w", 0, "co-occurrence workers, 0 for GOMAXPROCS")
	f.String("marker", catsim.DefaultDisambiguationMarker, "exclude items whose categories contain this, empty to keep all")
	f.String("rules", "", "YAML category filter rules")
	f.String("compression", "zstd", "matrix compression: none, lz4 or zstd")
	f.StringP("output", "o", "", "store prefix for the result")
	f.String("metrics-out", "", "write Prometheus metrics to this file")
	f.Int64("memory-limit", 0, "accumulator memory limit in bytes, 0 for unlimited")
	f.Int64("io-limit", 0, "table read limit in bytes per second, 0 for unlimited")
	f.Int64("max-workers", 0, "worker budget shared by the run")
	return cmd
}

func runSimilarity(cmd *cobra.Command, cfg cliConfig) error {
	ctx := cmd.Context()

	store, err := openStore(ctx, cfg.Store, cfg.MinIO)
	if err != nil {
		return err
	}
	rc := cfg.controller()
	opts, err := cfg.options(rc)
	if err != nil {
		return err
	}
	log := cfg.logger(cmd)
	opts = append(opts, catsim.WithLogger(log))

	var reg *prometheus.Registry
	if cfg.MetricsOut != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, catsim.WithMetricsCollector(prom.NewCollector(reg)))
	}

	src := table.NewBlobSource(store, table.WithCodec(cfg.codec()), table.WithController(rc))
	res, err := catsim.LeveledJaccardSimilarity(ctx, src, opts...)
	if reg != nil {
		if werr := prometheus.WriteToTextfile(cfg.MetricsOut, reg); werr != nil {
			log.WarnContext(ctx, "write metrics failed", "path", cfg.MetricsOut, "error", werr)
		}
	}
	if err != nil {
		return err
	}

	if err := catsim.SaveResult(ctx, store, cfg.Output, res,
		catsim.WithCompression(cfg.compression()),
		catsim.WithCodec(cfg.codec()),
		catsim.WithSaveLogger(log),
	); err != nil {
		return err
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d items, %d excluded, %d entries\n",
		res.RunID, len(res.Items), len(res.Excluded), res.Similarity.NNZ())
	return err
}
