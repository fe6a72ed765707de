package schedule

import "sort"

// Overlaps reports whether two half-open intervals share any time.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ConflictingBlockIDs returns the ids of blocks that collide with another block
// on the same mixer. Blocks without a mixer tag are ignored.
//
// Detection scans adjacent pairs after sorting each mixer's blocks by
// (start, end). Downstream gating (reorder rollback, publish) is defined
// against this scan, not against an exhaustive pairwise check.
func ConflictingBlockIDs(blocks []Block) []string {
	byMixer := make(map[string][]Block)
	for _, b := range blocks {
		if b.MixerID == "" {
			continue
		}
		byMixer[b.MixerID] = append(byMixer[b.MixerID], b)
	}

	seen := make(map[string]bool)
	var conflicts []string
	mark := func(id string) {
		if !seen[id] {
			seen[id] = true
			conflicts = append(conflicts, id)
		}
	}

	mixers := make([]string, 0, len(byMixer))
	for id := range byMixer {
		mixers = append(mixers, id)
	}
	sort.Strings(mixers)

	for _, mixerID := range mixers {
		group := byMixer[mixerID]
		sort.Slice(group, func(i, j int) bool {
			if group[i].Start != group[j].Start {
				return group[i].Start < group[j].Start
			}
			return group[i].End < group[j].End
		})
		for i := 0; i+1 < len(group); i++ {
			cur, next := group[i], group[i+1]
			if Overlaps(cur.Start, cur.End, next.Start, next.End) {
				mark(cur.ID)
				mark(next.ID)
			}
		}
	}

	return conflicts
}
