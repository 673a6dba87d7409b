package catsim_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/catsim"
	"github.com/hupe1980/catsim/silhouette"
	"github.com/hupe1980/catsim/table"
)

// Example demonstrates the similarity of three items tagged with two
// categories.
func Example() {
	src := table.MemorySource{
		"physics/title_with_category.csv": {
			{"title": "Atom", "category": "['Physics']"},
			{"title": "Electron", "category": "['Physics', 'Particles']"},
			{"title": "Proton", "category": "['Physics', 'Particles', 'Living people']"},
		},
	}

	res, err := catsim.LeveledJaccardSimilarity(context.Background(), src,
		catsim.WithLevels(1),
		catsim.WithProject("physics"),
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s ~ %s: %.3f\n", res.Items[1].Title, res.Items[2].Title, res.Similarity.At(1, 2))
	fmt.Printf("%s ~ %s: %.3f\n", res.Items[0].Title, res.Items[1].Title, res.Similarity.At(0, 1))
	fmt.Println(res.Items[2].Categories)
	// Output:
	// Electron ~ Proton: 1.000
	// Atom ~ Electron: 0.500
	// [Physics Particles]
}

// Example_configError shows that a level configuration must be unambiguous.
func Example_configError() {
	_, err := catsim.LeveledJaccardSimilarity(context.Background(), table.MemorySource{},
		catsim.WithLevels(2),
		catsim.WithLevelPaths("a.csv", "b.csv"),
	)
	fmt.Println(err)
	// Output: catsim: invalid levels: both level count and level paths given
}

// Example_silhouette scores a clustering of the similarity matrix.
func Example_silhouette() {
	src := table.MemorySource{
		"l0.json": {
			{"title": "a", "category": []any{"X"}},
			{"title": "b", "category": []any{"X"}},
			{"title": "c", "category": []any{"Y"}},
			{"title": "d", "category": []any{"Y"}},
		},
	}
	res, err := catsim.LeveledJaccardSimilarity(context.Background(), src,
		catsim.WithLevelPaths("l0.json"),
		catsim.WithColumns("category"),
	)
	if err != nil {
		log.Fatal(err)
	}

	score, err := silhouette.ScoreSimilarity(res.Similarity, []int{0, 0, 1, 1})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%.3f\n", score)
	// Output: 1.000
}
