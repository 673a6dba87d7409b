package table

import (
	"cmp"
	"slices"
	"strings"

	"github.com/hupe1980/catsim/filter"
	"github.com/hupe1980/catsim/model"
)

// DefaultLabelPrefix is the namespace prefix stage tables put in front of
// the labels in their first column.
const DefaultLabelPrefix = "Category:"

// CanonicalLabel strips surrounding space and DefaultLabelPrefix so that
// labels from different stages compare equal.
func CanonicalLabel(label string) string {
	return strings.TrimPrefix(strings.TrimSpace(label), DefaultLabelPrefix)
}

// ItemRow is one row of the level-0 table.
type ItemRow struct {
	ID         string
	Title      string
	Categories any // raw cell: list literal, []string, []any or nil
}

// Raw returns the unparsed category cell as a string.
func (r ItemRow) Raw() string {
	return filter.Label(r.Categories)
}

// Membership attaches one label to one item.
type Membership struct {
	Item  model.ItemIndex
	Label string
}

// Explode returns one Membership per (item, label) pair, in row order.
// Row i is model.ItemIndex(i).
func Explode(rows []ItemRow) ([]Membership, error) {
	var out []Membership
	for i, r := range rows {
		labels, err := ParseLabels(r.Categories)
		if err != nil {
			return nil, model.NewMalformedInputError(i, "categories", r.Categories, err)
		}
		for _, l := range labels {
			out = append(out, Membership{Item: model.ItemIndex(i), Label: CanonicalLabel(l)})
		}
	}
	return out, nil
}

// Group collects memberships into categories, sorted by label.
func Group(ms []Membership) []model.Category {
	byLabel := make(map[string]*model.ItemSet)
	for _, m := range ms {
		set, ok := byLabel[m.Label]
		if !ok {
			set = model.NewItemSet()
			byLabel[m.Label] = set
		}
		set.Add(m.Item)
	}
	return sortedCategories(byLabel, "")
}

// CategoryRow is one row of a level l ≥ 1 table.
type CategoryRow struct {
	Label   any // category of level l-1
	Members any // item ids of Label
	Parents any // labels of Label's parents at level l
}

// Link is a parsed CategoryRow. Members is nil when the row carries no ids.
type Link struct {
	Child   string
	Members *model.ItemSet
	Parents []string
}

// Links parses rows. membersColumn names the ids column in errors.
func Links(rows []CategoryRow, membersColumn string) ([]Link, error) {
	out := make([]Link, 0, len(rows))
	for i, r := range rows {
		members, err := parseMembers(r.Members)
		if err != nil {
			return nil, model.NewMalformedInputError(i, membersColumn, r.Members, err)
		}
		parents, err := ParseLabels(r.Parents)
		if err != nil {
			return nil, model.NewMalformedInputError(i, "parents", r.Parents, err)
		}
		for j := range parents {
			parents[j] = CanonicalLabel(parents[j])
		}
		out = append(out, Link{
			Child:   CanonicalLabel(filter.Label(r.Label)),
			Members: members,
			Parents: parents,
		})
	}
	return out, nil
}

// Regroup explodes the parents of every link and unions the members of all
// links sharing a parent. Labels are prefixed with prefix. Links without
// members contribute nothing.
func Regroup(links []Link, prefix string) []model.Category {
	byLabel := make(map[string]*model.ItemSet)
	for _, l := range links {
		if l.Members.IsEmpty() {
			continue
		}
		for _, p := range l.Parents {
			set, ok := byLabel[p]
			if !ok {
				set = model.NewItemSet()
				byLabel[p] = set
			}
			set.Union(l.Members)
		}
	}
	return sortedCategories(byLabel, prefix)
}

func sortedCategories(byLabel map[string]*model.ItemSet, prefix string) []model.Category {
	out := make([]model.Category, 0, len(byLabel))
	for label, set := range byLabel {
		out = append(out, model.Category{Label: prefix + label, Members: set})
	}
	slices.SortFunc(out, func(a, b model.Category) int { return cmp.Compare(a.Label, b.Label) })
	return out
}

// CategoryRecords renders categories as the first two columns of the next
// stage table.
func CategoryRecords(cats []model.Category, labelColumn, membersColumn string) []Record {
	out := make([]Record, len(cats))
	for i, c := range cats {
		out[i] = Record{labelColumn: c.Label, membersColumn: formatIDs(c.Members.Slice())}
	}
	return out
}
