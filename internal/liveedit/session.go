package liveedit

import (
	"math"
	"sort"

	"bottling-backend/internal/schedule"
)

// AnchorMinutes is the fixed daily anchor (06:00) live-edit timing is repacked
// from.
const AnchorMinutes = 6 * 60

// Position is one order's slot within a line of a live-edit session. Rank
// order equals time order; slots are contiguous from the anchor.
type Position struct {
	Position              int     `json:"position"`
	OrderID               string  `json:"orderId"`
	ProductionOrderNumber string  `json:"productionOrderNumber"`
	Status                string  `json:"status"`
	Locked                bool    `json:"locked"`
	StartQty              float64 `json:"startQty"`
	RestQty               float64 `json:"restQty"`
	StartAt               string  `json:"startAt"`
	EndAt                 string  `json:"endAt"`
	DurationMin           int     `json:"durationMin"`
	MixerID               string  `json:"mixerId,omitempty"`
}

// Line groups a session's positions per fill line.
type Line struct {
	LineID    string     `json:"lineId"`
	Positions []Position `json:"positions"`
}

// Conflict is one detected mixer collision between two adjacent blocks.
type Conflict struct {
	MixerID      string `json:"mixerId"`
	BlockAID     string `json:"blockAId"`
	BlockBID     string `json:"blockBId"`
	OverlapStart string `json:"overlapStart"`
	OverlapEnd   string `json:"overlapEnd"`
}

// Session is a forked, versioned working copy of the day schedule for same-day
// corrections. It never touches the authoritative plan; only a conflict-free
// publish hands its positions back.
type Session struct {
	SessionID        string
	Version          int
	Lines            []Line
	Dirty            bool
	Conflicts        []Conflict
	HasConflicts     bool
	CanUpdatePlanner bool

	history []snapshot
}

// snapshot is a full pre-mutation copy of the session state, minus the
// history stack itself. Undo restores the whole value rather than inverting a
// single field.
type snapshot struct {
	Version          int
	Lines            []Line
	Dirty            bool
	Conflicts        []Conflict
	HasConflicts     bool
	CanUpdatePlanner bool
}

// HistoryDepth reports how many undo steps are available.
func (s Session) HistoryDepth() int {
	return len(s.history)
}

func cloneLines(lines []Line) []Line {
	out := make([]Line, len(lines))
	for i, line := range lines {
		out[i] = Line{
			LineID:    line.LineID,
			Positions: append([]Position(nil), line.Positions...),
		}
	}
	return out
}

func cloneConflicts(conflicts []Conflict) []Conflict {
	return append([]Conflict(nil), conflicts...)
}

func (s Session) clone() Session {
	next := s
	next.Lines = cloneLines(s.Lines)
	next.Conflicts = cloneConflicts(s.Conflicts)
	next.history = make([]snapshot, len(s.history))
	for i, h := range s.history {
		next.history[i] = snapshot{
			Version:          h.Version,
			Lines:            cloneLines(h.Lines),
			Dirty:            h.Dirty,
			Conflicts:        cloneConflicts(h.Conflicts),
			HasConflicts:     h.HasConflicts,
			CanUpdatePlanner: h.CanUpdatePlanner,
		}
	}
	return next
}

func (s Session) toSnapshot() snapshot {
	return snapshot{
		Version:          s.Version,
		Lines:            cloneLines(s.Lines),
		Dirty:            s.Dirty,
		Conflicts:        cloneConflicts(s.Conflicts),
		HasConflicts:     s.HasConflicts,
		CanUpdatePlanner: s.CanUpdatePlanner,
	}
}

// New forks a session from the authoritative plan. Orders are grouped per
// line and ranked by start time; initial conflicts are computed against the
// supplied mixer reservations.
func New(date string, orders []schedule.Order, reservations []schedule.MixerBlock) Session {
	session := Session{
		SessionID: "ist-" + date,
		Version:   1,
		Lines:     buildLines(orders),
	}
	session.refreshConflicts(reservations)
	return session
}

func buildLines(orders []schedule.Order) []Line {
	byLine := make(map[string][]schedule.Order)
	for _, o := range orders {
		byLine[o.LineID] = append(byLine[o.LineID], o)
	}

	lineIDs := make([]string, 0, len(byLine))
	for id := range byLine {
		lineIDs = append(lineIDs, id)
	}
	sort.Strings(lineIDs)

	lines := make([]Line, 0, len(lineIDs))
	for _, lineID := range lineIDs {
		lineOrders := byLine[lineID]
		sort.SliceStable(lineOrders, func(i, j int) bool { return lineOrders[i].Start < lineOrders[j].Start })

		positions := make([]Position, 0, len(lineOrders))
		for i, o := range lineOrders {
			startQty := o.StartQty
			if startQty == 0 {
				startQty = o.VolumeLiters
			}
			restQty := o.RestQty
			if restQty == 0 {
				restQty = o.VolumeLiters
			}
			duration := o.End - o.Start
			if duration < 1 {
				duration = 1
			}
			positions = append(positions, Position{
				Position:              i + 1,
				OrderID:               o.ID,
				ProductionOrderNumber: o.ProductionOrderNumber,
				Status:                string(o.Status()),
				Locked:                o.Locked,
				StartQty:              startQty,
				RestQty:               restQty,
				StartAt:               schedule.ToHHMM(o.Start),
				EndAt:                 schedule.ToHHMM(o.End),
				DurationMin:           duration,
				MixerID:               o.MixerID,
			})
		}
		lines = append(lines, Line{LineID: lineID, Positions: positions})
	}
	return lines
}

func (s *Session) findPosition(orderID string) (lineIndex, posIndex int, ok bool) {
	for li := range s.Lines {
		for pi := range s.Lines[li].Positions {
			if s.Lines[li].Positions[pi].OrderID == orderID {
				return li, pi, true
			}
		}
	}
	return 0, 0, false
}

// retimeFrom repacks a line's positions contiguously from the 06:00 anchor,
// starting at the changed slot. Earlier positions keep their times.
func retimeFrom(line *Line, changedIndex int) {
	if changedIndex < 0 || changedIndex >= len(line.Positions) {
		return
	}
	cursor := AnchorMinutes
	for i := changedIndex; i < len(line.Positions); i++ {
		p := &line.Positions[i]
		p.StartAt = schedule.ToHHMM(cursor)
		p.EndAt = schedule.ToHHMM(cursor + p.DurationMin)
		cursor += p.DurationMin
	}
}

func renumber(line *Line) {
	for i := range line.Positions {
		line.Positions[i].Position = i + 1
	}
}

// finalizeMutation bumps the version and recomputes conflict state after an
// edit has been applied.
func (s *Session) finalizeMutation(reservations []schedule.MixerBlock) {
	s.Version++
	s.refreshConflicts(reservations)
}

func (s *Session) refreshConflicts(reservations []schedule.MixerBlock) {
	s.Conflicts = calculateConflicts(s.Lines, reservations)
	s.HasConflicts = len(s.Conflicts) > 0
	s.CanUpdatePlanner = !s.HasConflicts && s.Dirty
}

// SaveRestQty records the remaining quantity for one position. A zero rest
// removes the position; otherwise the slot's duration shrinks proportionally
// (never below one minute) and the slot plus everything after it is repacked
// from the anchor. The pre-mutation session is kept for undo.
func (s Session) SaveRestQty(orderID string, restQty float64, expectedVersion int, reservations []schedule.MixerBlock) (Session, error) {
	if expectedVersion != s.Version {
		return Session{}, schedule.ErrVersionConflict
	}
	if math.IsNaN(restQty) || math.IsInf(restQty, 0) || restQty < 0 {
		return Session{}, schedule.NewValidationError("restqty-invalid", "rest quantity must be a number >= 0")
	}

	li, pi, ok := s.findPosition(orderID)
	if !ok {
		return Session{}, schedule.ErrNotFound
	}
	if restQty > s.Lines[li].Positions[pi].StartQty {
		return Session{}, schedule.NewValidationError("restqty-exceeds-start", "rest quantity must not exceed the start quantity")
	}
	if restQty == 0 && s.Lines[li].Positions[pi].Locked {
		return Session{}, schedule.NewStateError("order %s is locked and cannot be removed", orderID)
	}

	next := s.clone()
	next.history = append(next.history, s.toSnapshot())
	line := &next.Lines[li]

	if restQty == 0 {
		line.Positions = append(line.Positions[:pi], line.Positions[pi+1:]...)
		renumber(line)
		if pi < len(line.Positions) {
			retimeFrom(line, pi)
		}
		next.Dirty = true
		next.finalizeMutation(reservations)
		return next, nil
	}

	target := &line.Positions[pi]
	target.RestQty = restQty
	target.DurationMin = scaledDuration(target.DurationMin, restQty, target.StartQty)
	retimeFrom(line, pi)
	next.Dirty = true
	next.finalizeMutation(reservations)
	return next, nil
}

// scaledDuration shrinks a slot proportionally to the remaining quantity,
// never below one minute.
func scaledDuration(durationMin int, restQty, startQty float64) int {
	scaled := int(math.Ceil(float64(durationMin) * (restQty / startQty)))
	if scaled < 1 {
		return 1
	}
	return scaled
}

// DeleteOrder removes a position from the session and repacks the remainder
// of its line from the anchor.
func (s Session) DeleteOrder(orderID string, expectedVersion int, reservations []schedule.MixerBlock) (Session, error) {
	if expectedVersion != s.Version {
		return Session{}, schedule.ErrVersionConflict
	}

	li, pi, ok := s.findPosition(orderID)
	if !ok {
		return Session{}, schedule.ErrNotFound
	}
	if s.Lines[li].Positions[pi].Locked {
		return Session{}, schedule.NewStateError("order %s is locked and cannot be removed", orderID)
	}

	next := s.clone()
	next.history = append(next.history, s.toSnapshot())
	line := &next.Lines[li]
	line.Positions = append(line.Positions[:pi], line.Positions[pi+1:]...)
	renumber(line)
	if pi < len(line.Positions) {
		retimeFrom(line, pi)
	}
	next.Dirty = true
	next.finalizeMutation(reservations)
	return next, nil
}

// Undo restores the most recent snapshot as the current session state and
// recomputes conflicts against the reservations supplied now, which may have
// changed since the snapshot was taken. Without history it is a no-op.
func (s Session) Undo(reservations []schedule.MixerBlock) Session {
	if len(s.history) == 0 {
		return s
	}

	top := s.history[len(s.history)-1]
	next := Session{
		SessionID:        s.SessionID,
		Version:          top.Version,
		Lines:            cloneLines(top.Lines),
		Dirty:            top.Dirty,
		HasConflicts:     top.HasConflicts,
		CanUpdatePlanner: top.CanUpdatePlanner,
		Conflicts:        cloneConflicts(top.Conflicts),
	}
	next.history = make([]snapshot, len(s.history)-1)
	for i := range next.history {
		next.history[i] = s.history[i]
	}
	next.refreshConflicts(reservations)
	return next
}

// PublishResult reports a successful publish back to the planner.
type PublishResult struct {
	Published          bool `json:"published"`
	Dirty              bool `json:"dirty"`
	MainPlannerVersion int  `json:"mainPlannerVersion"`
}

// Publish gates the hand-back to the authoritative plan: the caller's version
// must be current and the session conflict-free.
func (s Session) Publish(expectedVersion int) (PublishResult, error) {
	if expectedVersion != s.Version {
		return PublishResult{}, schedule.ErrVersionConflict
	}
	if s.HasConflicts {
		return PublishResult{}, &schedule.ConflictError{Reason: schedule.ReasonMixerOverlap}
	}
	return PublishResult{
		Published:          true,
		Dirty:              false,
		MainPlannerVersion: s.Version + 1,
	}, nil
}

// Updates converts the session's positions into plan updates for the
// publish fold-back.
func (s Session) Updates() []schedule.PositionUpdate {
	var out []schedule.PositionUpdate
	for _, line := range s.Lines {
		for _, p := range line.Positions {
			start, okStart := parseClock(p.StartAt)
			end, okEnd := parseClock(p.EndAt)
			if !okStart || !okEnd {
				continue
			}
			out = append(out, schedule.PositionUpdate{
				OrderID:  p.OrderID,
				StartQty: p.StartQty,
				RestQty:  p.RestQty,
				Start:    start,
				End:      end,
			})
		}
	}
	return out
}
