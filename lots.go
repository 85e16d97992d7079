package plbook

import (
	"slices"

	"github.com/etnz/plbook/date"
)

// BuildLots groups transactions into lots.
//
// Transactions are processed in contract date order; the sort is stable so
// fills of the same day keep their input order. Each transaction belongs to
// exactly one lot.
//
// Fills are partitioned by instrument group (see SameInstrumentGroup). Within
// a group, the first fill opens a lot, and the following fills are fed into
// it until it closes. The next fill of the group then opens a brand new lot:
// a closed lot never reopens.
//
// Lots are returned in the order of the fill that opened them.
func BuildLots(transactions []Transaction) []*Lot {
	if len(transactions) == 0 {
		return nil
	}
	sorted := slices.Clone(transactions)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return a.ContractDate.Compare(b.ContractDate)
	})

	// first pass: partition indexes by group, in order of first appearance.
	var keys []groupKey
	groups := make(map[groupKey][]int)
	for i, t := range sorted {
		k := t.groupKey()
		if _, exists := groups[k]; !exists {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], i)
	}

	// second pass: sequential consumption within each group.
	type opened struct {
		seed int // index of the opening fill
		lot  *Lot
	}
	result := make([]opened, 0, len(keys))
	for _, k := range keys {
		var current *Lot
		for _, i := range groups[k] {
			if current == nil {
				current = newLot(sorted[i])
				result = append(result, opened{seed: i, lot: current})
				continue
			}
			current.add(sorted[i])
			if current.Closed() {
				current = nil
			}
		}
	}

	slices.SortFunc(result, func(a, b opened) int { return a.seed - b.seed })
	lots := make([]*Lot, len(result))
	for i, o := range result {
		lots[i] = o.lot
	}
	return lots
}

// OpenLots returns the lots still open.
func OpenLots(lots []*Lot) []*Lot {
	var open []*Lot
	for _, l := range lots {
		if !l.Closed() {
			open = append(open, l)
		}
	}
	return open
}

// LotsAsOf returns the state of every lot already opened on day 'on'.
func LotsAsOf(lots []*Lot, on date.Date) []*Lot {
	var res []*Lot
	for _, l := range lots {
		if past := l.AsOf(on); past != nil {
			res = append(res, past)
		}
	}
	return res
}
