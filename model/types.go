package model

import (
	"fmt"
	"iter"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
)

// ItemIndex is the stable, 0-based position of an item in the level-0 table.
// It is assigned once and never changes while a pipeline runs.
type ItemIndex uint32

// String returns a string representation of the ItemIndex.
func (i ItemIndex) String() string {
	return fmt.Sprintf("Item(%d)", uint32(i))
}

// MaxItems is the largest number of items an ItemIndex can address.
const MaxItems = math.MaxUint32

// ItemSet is a set of item indices backed by a 32-bit Roaring bitmap.
// Iteration is always in ascending order, so an ItemSet doubles as the
// sorted, de-duplicated member list of a category.
type ItemSet struct {
	rb *roaring.Bitmap
}

// NewItemSet creates a set holding the given indices.
func NewItemSet(ids ...ItemIndex) *ItemSet {
	s := &ItemSet{rb: roaring.New()}
	for _, id := range ids {
		s.rb.Add(uint32(id))
	}
	return s
}

// Add adds an index to the set.
func (s *ItemSet) Add(id ItemIndex) {
	s.rb.Add(uint32(id))
}

// Contains reports whether id is in the set.
func (s *ItemSet) Contains(id ItemIndex) bool {
	if s == nil {
		return false
	}
	return s.rb.Contains(uint32(id))
}

// Len returns the number of indices in the set.
func (s *ItemSet) Len() int {
	if s == nil {
		return 0
	}
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set is empty.
func (s *ItemSet) IsEmpty() bool {
	return s == nil || s.rb.IsEmpty()
}

// Max returns the largest index in the set. ok is false for an empty set.
func (s *ItemSet) Max() (id ItemIndex, ok bool) {
	if s.IsEmpty() {
		return 0, false
	}
	return ItemIndex(s.rb.Maximum()), true
}

// Union adds every index of other to s.
func (s *ItemSet) Union(other *ItemSet) {
	if other == nil {
		return
	}
	s.rb.Or(other.rb)
}

// Clone returns a deep copy of the set.
func (s *ItemSet) Clone() *ItemSet {
	if s == nil {
		return NewItemSet()
	}
	return &ItemSet{rb: s.rb.Clone()}
}

// Slice returns the indices in ascending order.
func (s *ItemSet) Slice() []ItemIndex {
	if s == nil {
		return nil
	}
	out := make([]ItemIndex, 0, s.rb.GetCardinality())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, ItemIndex(it.Next()))
	}
	return out
}

// All returns an iterator over the set in ascending order.
func (s *ItemSet) All() iter.Seq[ItemIndex] {
	return func(yield func(ItemIndex) bool) {
		if s == nil {
			return
		}
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(ItemIndex(it.Next())) {
				return
			}
		}
	}
}

// Category is a category label and the set of items belonging to it.
type Category struct {
	Label   string
	Members *ItemSet
}

// Size returns the number of member items.
func (c Category) Size() int {
	return c.Members.Len()
}

// Item is one row of the pipeline output.
// Categories holds the filtered top-level categories and is never nil.
type Item struct {
	Index      ItemIndex `json:"-"`
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Categories []string  `json:"categories"`
}
