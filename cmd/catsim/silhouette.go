package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/catsim"
	"github.com/hupe1980/catsim/filter"
	"github.com/hupe1980/catsim/model"
	"github.com/hupe1980/catsim/silhouette"
	"github.com/hupe1980/catsim/table"
)

func newSilhouetteCmd(a *app) *cobra.Command {
	var (
		idColumn    string
		labelColumn string
	)
	cmd := &cobra.Command{
		Use:   "silhouette <labels>",
		Short: "Score a clustering of a saved result",
		Long: `silhouette loads a result saved by "catsim similarity" and a labels table
from the same store, then prints the mean silhouette coefficient of the
labeling under the distance 1 - similarity.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.load(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			store, err := openStore(ctx, cfg.Store, cfg.MinIO)
			if err != nil {
				return err
			}
			res, err := catsim.LoadResult(ctx, store, cfg.Output, catsim.WithCodec(cfg.codec()))
			if err != nil {
				return err
			}
			records, err := table.NewBlobSource(store, table.WithCodec(cfg.codec())).Load(ctx, args[0])
			if err != nil {
				return err
			}
			labels, names, err := clusterLabels(res.Items, records, idColumn, labelColumn)
			if err != nil {
				return err
			}
			score, err := silhouette.ScoreSimilarity(res.Similarity, labels)
			if err != nil {
				return namedLabelingError(err, names)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", score)
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&idColumn, "id-column", table.DefaultIDColumn, "item id column of the labels table")
	f.StringVar(&labelColumn, "label-column", "cluster", "cluster label column of the labels table")
	f.StringP("output", "o", "", "store prefix of the saved result")
	return cmd
}

// clusterLabels aligns a labels table with items. Cluster names are numbered
// in order of first appearance; names[l] is the name of label l.
func clusterLabels(items []model.Item, records []table.Record, idColumn, labelColumn string) (labels []int, names []string, err error) {
	byID := make(map[string]string, len(records))
	for i, rec := range records {
		id, ok := rec[idColumn]
		if !ok {
			return nil, nil, model.NewMalformedInputError(i, idColumn, nil, catsim.ErrMissingColumns)
		}
		byID[filter.Label(id)] = filter.Label(rec[labelColumn])
	}

	clusters := make(map[string]int)
	labels = make([]int, len(items))
	for i, it := range items {
		name, ok := byID[it.ID]
		if !ok {
			return nil, nil, fmt.Errorf("item %q has no cluster label", it.ID)
		}
		c, ok := clusters[name]
		if !ok {
			c = len(names)
			clusters[name] = c
			names = append(names, name)
		}
		labels[i] = c
	}
	return labels, names, nil
}

// namedLabelingError reports a singleton cluster by its name in the labels
// table instead of its internal number.
func namedLabelingError(err error, names []string) error {
	var ile *silhouette.InvalidLabelingError
	if !errors.As(err, &ile) || !ile.Singleton || ile.Label < 0 || ile.Label >= len(names) {
		return err
	}
	return &silhouette.InvalidLabelingError{
		Reason:    fmt.Sprintf("cluster %q has a single member", names[ile.Label]),
		Label:     ile.Label,
		Singleton: true,
	}
}
