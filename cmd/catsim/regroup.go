package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/catsim/table"
)

func newRegroupCmd(a *app) *cobra.Command {
	var (
		child   string
		parent  string
		members string
		out     string
		prefix  string
	)
	cmd := &cobra.Command{
		Use:   "regroup <stage>",
		Short: "Collect the items of every parent category of a stage table",
		Long: `regroup reads a (child, parent) stage table, unions the item ids of all
children sharing a parent and writes one row per parent. The output is the
first two columns of the next stage table.`,
		Example: `  catsim regroup --store ./physics category_with_infra1.csv --child category --parent infra1`,
		Args:    cobra.ExactArgs(1),
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
			records, err := table.NewBlobSource(store, table.WithCodec(cfg.codec())).Load(ctx, args[0])
			if err != nil {
				return err
			}
			rows, err := table.CategoryRows(records, table.CategoryColumns{
				Label:   child,
				Members: members,
				Parents: parent,
			})
			if err != nil {
				return err
			}
			links, err := table.Links(rows, members)
			if err != nil {
				return err
			}
			cats := table.Regroup(links, prefix)

			var buf bytes.Buffer
			if err := table.EncodeCSV(&buf, []string{parent, members}, table.CategoryRecords(cats, parent, members)); err != nil {
				return err
			}
			name := out
			if name == "" {
				name = parent + ".csv"
			}
			if err := store.Put(ctx, name, buf.Bytes()); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			cfg.logger(cmd).InfoContext(ctx, "regrouped", "stage", args[0], "output", name, "categories", len(cats))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d categories\n", name, len(cats))
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&child, "child", "category", "child label column")
	f.StringVar(&parent, "parent", "infra1", "parent labels column")
	f.StringVar(&members, "members", table.DefaultMembersColumn, "item ids column")
	f.StringVar(&prefix, "prefix", table.DefaultLabelPrefix, "prefix added to every parent label")
	f.StringVar(&out, "out", "", "output table name (default <parent>.csv)")
	return cmd
}
