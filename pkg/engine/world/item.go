package world

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// EntityID identifies an entity registered with a World. Zero is never assigned.
type EntityID uint64

// NoEntity is the zero EntityID.
const NoEntity EntityID = 0

// EntitySet is a set of entity ids.
type EntitySet = mapset.Set[EntityID]

// NewEntitySet creates an empty entity set.
func NewEntitySet() EntitySet {
	return mapset.New[EntityID]()
}

// SortedIDs returns the members of s in ascending order.
func SortedIDs(s EntitySet) []EntityID {
	ids := make([]EntityID, 0, s.Size())
	s.Each(func(id EntityID) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
