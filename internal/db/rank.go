package db

import "errors"

// Rank maintenance for one sibling set (all lists, or all items of one
// list). Ranks are consecutive integers starting at 0 in display order.
// Functions here only compute plans; applying them is the caller's job.

// RankUpdate assigns a new rank to one entity.
type RankUpdate struct {
	ID   int64
	Rank int
}

// NextRank returns the rank for an entity appended after the given sibling
// ranks: one past the maximum, or 0 for an empty set.
func NextRank(ranks []int) int {
	next := 0
	for _, r := range ranks {
		if r >= next {
			next = r + 1
		}
	}
	return next
}

// RenumberPlan maps each id to its position in the given order. Used after
// a deletion to restore contiguity; relative order is preserved because the
// input is already sorted by rank.
func RenumberPlan(orderedIDs []int64) []RankUpdate {
	plan := make([]RankUpdate, len(orderedIDs))
	for i, id := range orderedIDs {
		plan[i] = RankUpdate{ID: id, Rank: i}
	}
	return plan
}

// MovePlan renumbers the sibling set so the entity at position from ends up
// at position to, shifting the entities between them by one. from == to is
// a no-op and yields an empty plan.
func MovePlan(orderedIDs []int64, from, to int) ([]RankUpdate, error) {
	n := len(orderedIDs)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, errors.New("move position out of range")
	}
	if from == to {
		return nil, nil
	}

	final := make([]int64, 0, n)
	final = append(final, orderedIDs[:from]...)
	final = append(final, orderedIDs[from+1:]...)
	final = append(final[:to], append([]int64{orderedIDs[from]}, final[to:]...)...)

	return RenumberPlan(final), nil
}
