package geometry

import (
	"math"
	"sort"
)

// operand identifies which side of a boolean operation a boundary belongs to
type operand int

const (
	operandA operand = iota
	operandB
)

// boundary is a single crossing of an operand's surface along a ray.
// Its normal always faces against the ray: entries keep the outward
// normal, exits carry it negated.
type boundary struct {
	hit   Hit
	owner operand
}

// Region is a stretch of the ray between two consecutive boundaries,
// tagged with which operands the stretch lies inside.
type Region struct {
	Start   Hit
	End     Hit
	InsideA bool
	InsideB bool
}

// keepFunc decides from operand membership whether a region is solid
type keepFunc func(insideA, insideB bool) bool

func keepIntersection(insideA, insideB bool) bool { return insideA && insideB }
func keepDifference(insideA, insideB bool) bool   { return insideA && !insideB }

// boundaries flattens entry/exit pairs into owner-tagged crossing events
func boundaries(pairs []EntryExit, owner operand) []boundary {
	events := make([]boundary, 0, 2*len(pairs))
	for _, pair := range pairs {
		events = append(events,
			boundary{hit: pair.Entry, owner: owner},
			boundary{hit: pair.Exit.flipped(), owner: owner},
		)
	}
	return events
}

// Regions sweeps the boundaries of a and b along the ray and returns every
// interval between consecutive boundaries, from -Inf to +Inf.
func Regions(a, b []EntryExit) []Region {
	events := append(boundaries(a, operandA), boundaries(b, operandB)...)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].hit.Distance < events[j].hit.Distance
	})

	regions := make([]Region, 0, len(events)+1)
	current := Region{Start: sentinelHit(math.Inf(-1))}
	for _, event := range events {
		current.End = event.hit
		regions = append(regions, current)

		next := Region{
			Start:   event.hit,
			InsideA: current.InsideA,
			InsideB: current.InsideB,
		}
		if event.owner == operandA {
			next.InsideA = !next.InsideA
		} else {
			next.InsideB = !next.InsideB
		}
		current = next
	}
	current.End = sentinelHit(math.Inf(1))
	regions = append(regions, current)

	return regions
}

// combine keeps the solid regions of a boolean operation as entry/exit pairs.
// Zero-length regions from coincident boundaries are dropped.
func combine(a, b []EntryExit, keep keepFunc) []EntryExit {
	var pairs []EntryExit
	for _, region := range Regions(a, b) {
		if !keep(region.InsideA, region.InsideB) {
			continue
		}
		if region.End.Distance <= region.Start.Distance {
			continue
		}
		pairs = append(pairs, EntryExit{
			Entry: region.Start,
			Exit:  region.End.flipped(),
		})
	}
	return pairs
}
