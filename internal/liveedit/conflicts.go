package liveedit

import (
	"sort"
	"strconv"
	"strings"

	"bottling-backend/internal/schedule"
)

type timedBlock struct {
	mixerID string
	blockID string
	start   int
	end     int
}

// parseClock parses HH:MM without a day bound: a live-edit line repacked from
// the anchor may legitimately run past 24:00.
func parseClock(v string) (int, bool) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// calculateConflicts reports mixer collisions between the session's assigned
// positions and the live mixer reservations. Per mixer, blocks with a valid
// positive span are sorted by (start, end) and only adjacent pairs are
// compared; gating is defined against this scan.
func calculateConflicts(lines []Line, reservations []schedule.MixerBlock) []Conflict {
	byMixer := make(map[string][]timedBlock)

	for _, line := range lines {
		for _, p := range line.Positions {
			if p.MixerID == "" {
				continue
			}
			start, okStart := parseClock(p.StartAt)
			end, okEnd := parseClock(p.EndAt)
			if !okStart || !okEnd {
				continue
			}
			byMixer[p.MixerID] = append(byMixer[p.MixerID], timedBlock{
				mixerID: p.MixerID,
				blockID: "order-" + p.OrderID,
				start:   start,
				end:     end,
			})
		}
	}

	for _, r := range reservations {
		if r.MixerID == "" {
			continue
		}
		blockID := r.ID
		if blockID == "" {
			blockID = "res-" + r.OrderID
		}
		byMixer[r.MixerID] = append(byMixer[r.MixerID], timedBlock{
			mixerID: r.MixerID,
			blockID: blockID,
			start:   r.Start,
			end:     r.End,
		})
	}

	mixerIDs := make([]string, 0, len(byMixer))
	for id := range byMixer {
		mixerIDs = append(mixerIDs, id)
	}
	sort.Strings(mixerIDs)

	var conflicts []Conflict
	for _, mixerID := range mixerIDs {
		blocks := byMixer[mixerID][:0:0]
		for _, b := range byMixer[mixerID] {
			if b.end > b.start {
				blocks = append(blocks, b)
			}
		}
		sort.Slice(blocks, func(i, j int) bool {
			if blocks[i].start != blocks[j].start {
				return blocks[i].start < blocks[j].start
			}
			return blocks[i].end < blocks[j].end
		})

		for i := 0; i+1 < len(blocks); i++ {
			cur, next := blocks[i], blocks[i+1]
			if cur.start < next.end && next.start < cur.end {
				conflicts = append(conflicts, Conflict{
					MixerID:      mixerID,
					BlockAID:     cur.blockID,
					BlockBID:     next.blockID,
					OverlapStart: schedule.ToHHMM(max(cur.start, next.start)),
					OverlapEnd:   schedule.ToHHMM(min(cur.end, next.end)),
				})
			}
		}
	}
	return conflicts
}
