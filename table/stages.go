package table

import (
	"fmt"
	"path"
	"strings"
)

// Stage names the columns a stage file joins: a single name for the title
// and final stages, a (child, parent) pair otherwise.
type Stage []string

const (
	titleColumn    = "title"
	categoryColumn = "category"
	infraPrefix    = "infra"

	// DefaultFinalStage names the last stage file.
	DefaultFinalStage = "final"
	// DefaultMembersColumn holds item ids in every level table.
	DefaultMembersColumn = "index"
	// DefaultIDColumn holds external item ids in the level-0 table.
	DefaultIDColumn = "id"
	// DefaultTitleColumn holds item titles in the level-0 table.
	DefaultTitleColumn = titleColumn
)

// GenerateStages lists the stages of a project with n infracategory levels.
// The first two are always (title) and (title, category), the last is
// (final). There are n+3 stages in total.
func GenerateStages(n int, final string) []Stage {
	if final == "" {
		final = DefaultFinalStage
	}
	s := []Stage{{titleColumn}, {titleColumn, categoryColumn}}
	if n >= 1 {
		s = append(s, Stage{categoryColumn, infraPrefix + "1"})
	}
	for i := 2; i <= n; i++ {
		s = append(s, Stage{fmt.Sprintf("%s%d", infraPrefix, i-1), fmt.Sprintf("%s%d", infraPrefix, i)})
	}
	return append(s, Stage{final})
}

// Name returns the file name of the stage.
func (s Stage) Name() string {
	return strings.Join(s, "_with_") + ".csv"
}

// DataPath returns the slash-separated path of a stage file inside project.
func DataPath(stage Stage, project string) string {
	return path.Join(project, stage.Name())
}

// LevelColumns returns the label column of each of the given number of
// levels: category, infra1, infra2, ...
func LevelColumns(levels int) []string {
	cols := make([]string, levels)
	for i := range cols {
		if i == 0 {
			cols[i] = categoryColumn
		} else {
			cols[i] = fmt.Sprintf("%s%d", infraPrefix, i)
		}
	}
	return cols
}

// LevelPaths returns the level table paths of a project with the given
// number of levels. Level 0 is title_with_category.csv.
func LevelPaths(levels int, project string) []string {
	if levels <= 0 {
		return nil
	}
	stages := GenerateStages(levels-1, "")
	paths := make([]string, levels)
	for l := range paths {
		paths[l] = DataPath(stages[l+1], project)
	}
	return paths
}
