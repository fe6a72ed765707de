package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// DayMinutes is the length of the planning day.
const DayMinutes = 24 * 60

// BottleSize is the bottle format an order is filled into. Fill rates are
// maintained per line and bottle size in the line-rates master data.
type BottleSize string

const (
	BottleThird      BottleSize = "0.33L"
	BottleHalf       BottleSize = "0.5L"
	BottleOne        BottleSize = "1.0L"
	BottleOneAndHalf BottleSize = "1.5L"
)

// BottleSizes lists all supported bottle formats.
func BottleSizes() []BottleSize {
	return []BottleSize{BottleThird, BottleHalf, BottleOne, BottleOneAndHalf}
}

// ValidBottleSize reports whether the given value is a known bottle format.
func ValidBottleSize(v BottleSize) bool {
	switch v {
	case BottleThird, BottleHalf, BottleOne, BottleOneAndHalf:
		return true
	}
	return false
}

// OrderStatus is the derived lifecycle state of an order.
type OrderStatus string

const (
	StatusUnassigned OrderStatus = "unassigned"
	StatusAssigned   OrderStatus = "assigned"
	StatusLocked     OrderStatus = "locked"
)

// Order is a fill order occupying one line for one contiguous window of the day.
// Start and End are minutes since midnight.
type Order struct {
	ID                    string     `json:"id"`
	ProductionOrderNumber string     `json:"productionOrderNumber"`
	ProductID             string     `json:"productId"`
	ProductName           string     `json:"productName"`
	VolumeLiters          float64    `json:"volumeLiters"`
	BottleSize            BottleSize `json:"bottleSize"`
	LineID                string     `json:"lineId"`
	Start                 int        `json:"start"`
	End                   int        `json:"end"`
	FillDuration          int        `json:"fillDuration"`
	ManufacturingDuration int        `json:"manufacturingDuration"`
	MixerID               string     `json:"mixerId,omitempty"`
	Locked                bool       `json:"locked"`
	StartQty              float64    `json:"startQty"`
	RestQty               float64    `json:"restQty"`
}

// Status derives the lifecycle state from the order's fields.
func (o Order) Status() OrderStatus {
	switch {
	case o.Locked:
		return StatusLocked
	case o.MixerID != "":
		return StatusAssigned
	default:
		return StatusUnassigned
	}
}

// BlockKind distinguishes stored manufacturing reservations from the
// held fill-window projection of an assigned order.
type BlockKind string

const (
	KindManufacturing BlockKind = "manufacturing"
	KindHeld          BlockKind = "held"
)

// MixerBlock reserves an interval on a mixer for the batch preceding an order.
// Only manufacturing blocks are stored; the held block that keeps the mixer
// occupied through bottling is projected from the order on demand.
type MixerBlock struct {
	ID      string    `json:"id"`
	MixerID string    `json:"mixerId"`
	OrderID string    `json:"orderId"`
	Start   int       `json:"start"`
	End     int       `json:"end"`
	Kind    BlockKind `json:"kind"`
}

// Block is the unit the overlap detector works on: an interval tagged by the
// mixer resource that owns it.
type Block struct {
	ID      string
	MixerID string
	Start   int
	End     int
	Kind    BlockKind
}

// HeldBlock projects an assigned order's fill window onto its mixer. The mixer
// holds the batch until bottling completes.
func HeldBlock(o Order) Block {
	return Block{
		ID:      "order-" + o.ID,
		MixerID: o.MixerID,
		Start:   o.Start,
		End:     o.End,
		Kind:    KindHeld,
	}
}

// Line is a bottling line resource.
type Line struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Mixer is a batch-production resource feeding the lines.
type Mixer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Lines returns the fixed set of fill lines.
func Lines() []Line {
	return []Line{
		{ID: "L1", Name: "Abfülllinie 1"},
		{ID: "L2", Name: "Abfülllinie 2"},
		{ID: "L3", Name: "Abfülllinie 3"},
		{ID: "L4", Name: "Abfülllinie 4"},
	}
}

// Mixers returns the fixed set of mixers.
func Mixers() []Mixer {
	out := make([]Mixer, 0, 10)
	for i := 1; i <= 10; i++ {
		out = append(out, Mixer{ID: fmt.Sprintf("M%d", i), Name: fmt.Sprintf("Rührwerk %d", i)})
	}
	return out
}

// ValidLine reports whether the given id names a fill line.
func ValidLine(id string) bool {
	for _, l := range Lines() {
		if l.ID == id {
			return true
		}
	}
	return false
}

// ValidMixer reports whether the given id names a mixer.
func ValidMixer(id string) bool {
	for _, m := range Mixers() {
		if m.ID == id {
			return true
		}
	}
	return false
}

// ToHHMM renders minutes since midnight as a zero-padded HH:MM clock value.
func ToHHMM(totalMinutes int) string {
	return fmt.Sprintf("%02d:%02d", totalMinutes/60, totalMinutes%60)
}

// ToMinutes parses an HH:MM clock value into minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	if h == 24 && m != 0 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	return h*60 + m, nil
}

// NormalizeOrderNumber canonicalizes a production order number for uniqueness
// checks, the same way article numbers are normalized in the product master data.
func NormalizeOrderNumber(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}
