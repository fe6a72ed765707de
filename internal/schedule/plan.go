package schedule

import "sort"

// Plan is the authoritative day schedule: every fill order plus the stored
// manufacturing reservations. A Plan is a value; operations return a new Plan
// and never modify the receiver, so a failed operation leaves the caller's
// state untouched.
type Plan struct {
	Orders      []Order      `json:"orders"`
	MixerBlocks []MixerBlock `json:"mixerBlocks"`
}

func (p Plan) clone() Plan {
	next := Plan{
		Orders:      make([]Order, len(p.Orders)),
		MixerBlocks: make([]MixerBlock, len(p.MixerBlocks)),
	}
	copy(next.Orders, p.Orders)
	copy(next.MixerBlocks, p.MixerBlocks)
	return next
}

func (p Plan) findOrder(orderID string) (int, bool) {
	for i := range p.Orders {
		if p.Orders[i].ID == orderID {
			return i, true
		}
	}
	return 0, false
}

// Order returns the order with the given id.
func (p Plan) Order(orderID string) (Order, bool) {
	i, ok := p.findOrder(orderID)
	if !ok {
		return Order{}, false
	}
	return p.Orders[i], true
}

// Blocks projects the full mixer timeline: every stored manufacturing block
// plus the held fill-window block of each assigned order.
func (p Plan) Blocks() []Block {
	blocks := make([]Block, 0, len(p.MixerBlocks)+len(p.Orders))
	for _, b := range p.MixerBlocks {
		blocks = append(blocks, Block{ID: b.ID, MixerID: b.MixerID, Start: b.Start, End: b.End, Kind: b.Kind})
	}
	for _, o := range p.Orders {
		if o.MixerID != "" {
			blocks = append(blocks, HeldBlock(o))
		}
	}
	return blocks
}

// LineOrders returns the orders on a line sorted by start time.
func (p Plan) LineOrders(lineID string) []Order {
	var out []Order
	for _, o := range p.Orders {
		if o.LineID == lineID {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func (p Plan) sortOrders() {
	sort.SliceStable(p.Orders, func(i, j int) bool { return p.Orders[i].Start < p.Orders[j].Start })
}

// AddOrder places a fully derived order onto its line. The order must not
// overlap any existing order on that line and its production order number must
// be unique across the plan.
func (p Plan) AddOrder(o Order) (Plan, error) {
	pon := NormalizeOrderNumber(o.ProductionOrderNumber)
	for _, existing := range p.Orders {
		if NormalizeOrderNumber(existing.ProductionOrderNumber) == pon {
			return Plan{}, NewValidationError("pon-duplicate", "production order number already in use")
		}
	}

	var clashing []string
	for _, existing := range p.Orders {
		if existing.LineID != o.LineID {
			continue
		}
		if Overlaps(o.Start, o.End, existing.Start, existing.End) {
			clashing = append(clashing, existing.ID)
		}
	}
	if len(clashing) > 0 {
		return Plan{}, &ConflictError{Reason: ReasonLineOverlap, BlockIDs: clashing}
	}

	o.ProductionOrderNumber = pon
	next := p.clone()
	next.Orders = append(next.Orders, o)
	next.sortOrders()
	return next, nil
}

// RemoveOrder deletes an unlocked order together with its mixer reservations.
func (p Plan) RemoveOrder(orderID string) (Plan, error) {
	i, ok := p.findOrder(orderID)
	if !ok {
		return Plan{}, ErrNotFound
	}
	if p.Orders[i].Locked {
		return Plan{}, NewStateError("order %s is locked", orderID)
	}

	next := p.clone()
	next.Orders = append(next.Orders[:i], next.Orders[i+1:]...)
	next.MixerBlocks = withoutOrderBlocks(next.MixerBlocks, orderID)
	return next, nil
}

// SetLocked marks an order as locked or unlocked. Locked orders refuse
// reassignment, unassignment, deletion and reorder.
func (p Plan) SetLocked(orderID string, locked bool) (Plan, error) {
	i, ok := p.findOrder(orderID)
	if !ok {
		return Plan{}, ErrNotFound
	}
	next := p.clone()
	next.Orders[i].Locked = locked
	return next, nil
}

// Assign reserves the order's manufacturing window on a mixer. The candidate
// block must not begin before midnight and must not overlap anything already
// occupying the mixer: its manufacturing blocks or the fill windows of orders
// it already feeds.
func (p Plan) Assign(orderID, mixerID, blockID string) (Plan, error) {
	i, ok := p.findOrder(orderID)
	if !ok {
		return Plan{}, NewStateError("order %s not found", orderID)
	}
	order := p.Orders[i]
	if order.Locked {
		return Plan{}, NewStateError("order %s is locked", orderID)
	}
	if order.MixerID != "" {
		return Plan{}, NewStateError("order %s is already assigned to %s", orderID, order.MixerID)
	}

	candidate := MixerBlock{
		ID:      blockID,
		MixerID: mixerID,
		OrderID: order.ID,
		Start:   order.Start - order.ManufacturingDuration,
		End:     order.Start,
		Kind:    KindManufacturing,
	}
	if candidate.Start < 0 {
		return Plan{}, &ConflictError{Reason: ReasonBeforeMidnight}
	}

	var clashing []string
	for _, b := range p.Blocks() {
		if b.MixerID != mixerID {
			continue
		}
		if Overlaps(candidate.Start, candidate.End, b.Start, b.End) {
			clashing = append(clashing, b.ID)
		}
	}
	if len(clashing) > 0 {
		return Plan{}, &ConflictError{Reason: ReasonOverlap, BlockIDs: clashing}
	}

	next := p.clone()
	next.Orders[i].MixerID = mixerID
	next.MixerBlocks = append(next.MixerBlocks, candidate)
	return next, nil
}

// Unassign releases the order's mixer and removes its manufacturing block.
func (p Plan) Unassign(orderID string) (Plan, error) {
	i, ok := p.findOrder(orderID)
	if !ok {
		return Plan{}, NewStateError("order %s not found", orderID)
	}
	order := p.Orders[i]
	if order.Locked {
		return Plan{}, NewStateError("order %s is locked", orderID)
	}
	if order.MixerID == "" {
		return Plan{}, NewStateError("order %s is not assigned", orderID)
	}

	next := p.clone()
	next.Orders[i].MixerID = ""
	next.MixerBlocks = withoutOrderBlocks(next.MixerBlocks, orderID)
	return next, nil
}

// Reorder moves an order immediately before another order on the same line and
// repacks the line's timing from the earliest original start, keeping every
// order's duration. Manufacturing blocks of shifted orders are recomputed; if
// that pushes any block before midnight or produces a mixer collision the whole
// reorder is discarded.
func (p Plan) Reorder(lineID, movedOrderID, targetOrderID string) (Plan, error) {
	lineOrders := p.LineOrders(lineID)

	fromIndex, toIndex := -1, -1
	for i, o := range lineOrders {
		if o.ID == movedOrderID {
			fromIndex = i
		}
		if o.ID == targetOrderID {
			toIndex = i
		}
	}
	if fromIndex < 0 {
		return Plan{}, NewStateError("order %s not found on line %s", movedOrderID, lineID)
	}
	if toIndex < 0 {
		return Plan{}, NewStateError("order %s not found on line %s", targetOrderID, lineID)
	}
	if lineOrders[fromIndex].Locked {
		return Plan{}, NewStateError("order %s is locked", movedOrderID)
	}
	if lineOrders[toIndex].Locked {
		return Plan{}, NewStateError("order %s is locked", targetOrderID)
	}
	if fromIndex == toIndex {
		return p, nil
	}

	reordered := make([]Order, len(lineOrders))
	copy(reordered, lineOrders)
	moved := reordered[fromIndex]
	reordered = append(reordered[:fromIndex], reordered[fromIndex+1:]...)
	reordered = append(reordered[:toIndex], append([]Order{moved}, reordered[toIndex:]...)...)

	// Repack from the earliest original start; durations are preserved.
	cursor := lineOrders[0].Start
	recalculated := make(map[string]Order, len(reordered))
	for _, o := range reordered {
		duration := o.End - o.Start
		o.Start = cursor
		o.End = cursor + duration
		recalculated[o.ID] = o
		cursor = o.End
	}

	nextBlocks := make([]MixerBlock, len(p.MixerBlocks))
	copy(nextBlocks, p.MixerBlocks)
	for i, b := range nextBlocks {
		if b.Kind != KindManufacturing {
			continue
		}
		order, ok := recalculated[b.OrderID]
		if !ok {
			continue
		}
		nextBlocks[i].Start = order.Start - order.ManufacturingDuration
		nextBlocks[i].End = order.Start
		if nextBlocks[i].Start < 0 {
			return Plan{}, &ConflictError{Reason: ReasonBeforeMidnight, BlockIDs: []string{b.ID}}
		}
	}

	nextOrders := make([]Order, len(p.Orders))
	for i, o := range p.Orders {
		if updated, ok := recalculated[o.ID]; ok {
			nextOrders[i] = updated
		} else {
			nextOrders[i] = o
		}
	}

	next := Plan{Orders: nextOrders, MixerBlocks: nextBlocks}
	next.sortOrders()

	if conflicts := ConflictingBlockIDs(next.Blocks()); len(conflicts) > 0 {
		return Plan{}, &ConflictError{Reason: ReasonOverlap, BlockIDs: conflicts}
	}

	return next, nil
}

// PositionUpdate carries one live-edit position back into the plan on publish.
type PositionUpdate struct {
	OrderID  string
	StartQty float64
	RestQty  float64
	Start    int
	End      int
}

// ApplyUpdates folds published live-edit positions back into the plan. Orders
// without an update were deleted in the session and are dropped together with
// their mixer reservations; surviving orders take the session's quantities and
// timing. Locked orders are immutable to removal and survive even when no
// update names them.
func (p Plan) ApplyUpdates(updates []PositionUpdate) Plan {
	byOrder := make(map[string]PositionUpdate, len(updates))
	for _, u := range updates {
		byOrder[u.OrderID] = u
	}

	kept := make(map[string]bool, len(p.Orders))
	next := Plan{}
	for _, o := range p.Orders {
		u, ok := byOrder[o.ID]
		if !ok {
			if !o.Locked {
				continue
			}
			kept[o.ID] = true
			next.Orders = append(next.Orders, o)
			continue
		}
		o.StartQty = u.StartQty
		o.RestQty = u.RestQty
		o.Start = u.Start
		o.End = u.End
		kept[o.ID] = true
		next.Orders = append(next.Orders, o)
	}
	next.sortOrders()

	for _, b := range p.MixerBlocks {
		if kept[b.OrderID] {
			next.MixerBlocks = append(next.MixerBlocks, b)
		}
	}
	return next
}

func withoutOrderBlocks(blocks []MixerBlock, orderID string) []MixerBlock {
	out := blocks[:0]
	for _, b := range blocks {
		if b.OrderID != orderID {
			out = append(out, b)
		}
	}
	return out
}
