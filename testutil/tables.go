package testutil

import (
	"fmt"
	"slices"

	"github.com/hupe1980/catsim/table"
)

// Records renders level l of h as the rows of its stage table. Level l ≥ 1
// rows carry the unfiltered member ids when withMembers is set.
func (h *Hierarchy) Records(level int, withMembers bool) []table.Record {
	cols := table.LevelColumns(h.Levels())
	if level == 0 {
		out := make([]table.Record, h.Items)
		for i, ls := range h.Labels {
			out[i] = table.Record{
				table.DefaultTitleColumn:   fmt.Sprintf("item-%d", i),
				table.DefaultMembersColumn: i,
				cols[0]:                    slices.Clone(ls),
			}
		}
		return out
	}

	member := h.Memberships(nil)
	var out []table.Record
	for _, c := range h.categories(level - 1) {
		rec := table.Record{
			cols[level-1]: c,
			cols[level]:   slices.Clone(h.Parents[level-1][c]),
		}
		if withMembers {
			var ids []int
			for i := range h.Items {
				if member[level-1][i][c] {
					ids = append(ids, i)
				}
			}
			rec[table.DefaultMembersColumn] = ids
		}
		out = append(out, rec)
	}
	return out
}

// Source returns every level of h as an in-memory table source laid out
// like a project with h.Levels() levels.
func (h *Hierarchy) Source(project string, withMembers bool) table.MemorySource {
	src := make(table.MemorySource)
	for l, p := range table.LevelPaths(h.Levels(), project) {
		src[p] = h.Records(l, withMembers)
	}
	return src
}
