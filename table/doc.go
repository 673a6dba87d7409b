// Package table reads the per-level category tables a similarity run
// consumes and reshapes them into model.Category lists.
//
// # Layout
//
// A project with n infracategory levels is stored as n+3 stage files:
//
//	title.csv                  title[, id]
//	title_with_category.csv    title, index, category        (level 0)
//	category_with_infra1.csv   category, index, infra1       (level 1)
//	infra1_with_infra2.csv     infra1, index, infra2         (level 2)
//	...
//	final.csv                  obj, ids, obj_name
//
// At level 0 each row is an item (its row position is its model.ItemIndex)
// with the list of categories attached to it. At level l ≥ 1 each row is a
// category of level l-1, the ids of the items it holds and its parent
// categories at level l.
//
// List-valued cells are bracketed list literals ("['A', 'B']", "[1, 2]").
// A member list that cannot be read as item ids yields a
// *MalformedInputError.
package table
