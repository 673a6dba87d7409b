package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/catsim/table"
)

func newStagesCmd() *cobra.Command {
	var (
		levels  int
		final   string
		project string
	)
	cmd := &cobra.Command{
		Use:   "stages",
		Short: "List the stage tables of a hierarchy build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if levels < 0 {
				return fmt.Errorf("levels must be >= 0, got %d", levels)
			}
			out := cmd.OutOrStdout()
			for _, st := range table.GenerateStages(levels, final) {
				if _, err := fmt.Fprintln(out, table.DataPath(st, project)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.IntVarP(&levels, "levels", "l", 1, "number of intermediate levels")
	f.StringVar(&final, "final", table.DefaultFinalStage, "name of the last stage")
	f.StringVar(&project, "project", "", "project directory")
	return cmd
}
