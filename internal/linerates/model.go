package linerates

import (
	"math"

	"bottling-backend/internal/schedule"
)

// DefaultLitersPerMinute applies wherever no explicit rate is maintained.
const DefaultLitersPerMinute = 30.0

// Rates maps lineID -> bottle size -> fill rate in liters per minute.
type Rates map[string]map[schedule.BottleSize]float64

// Defaults builds a full rate table at the default rate for every line and
// bottle size.
func Defaults() Rates {
	out := make(Rates)
	for _, line := range schedule.Lines() {
		out[line.ID] = make(map[schedule.BottleSize]float64)
		for _, bottle := range schedule.BottleSizes() {
			out[line.ID][bottle] = DefaultLitersPerMinute
		}
	}
	return out
}

// Sanitize fills gaps and replaces non-finite or non-positive values with the
// default, so a rate lookup always yields a usable number.
func Sanitize(raw Rates) Rates {
	out := Defaults()
	for lineID, perBottle := range raw {
		if _, ok := out[lineID]; !ok {
			continue
		}
		for bottle, rate := range perBottle {
			if _, ok := out[lineID][bottle]; !ok {
				continue
			}
			if rate > 0 && !math.IsInf(rate, 0) && !math.IsNaN(rate) {
				out[lineID][bottle] = rate
			}
		}
	}
	return out
}
