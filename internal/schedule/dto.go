package schedule

// OrderResponse is the outward-facing representation of an order.
type OrderResponse struct {
	OrderID               string     `json:"orderId"`
	ProductionOrderNumber string     `json:"productionOrderNumber"`
	ProductID             string     `json:"productId"`
	ProductName           string     `json:"productName"`
	VolumeLiters          float64    `json:"volumeLiters"`
	BottleSize            BottleSize `json:"bottleSize"`
	LineID                string     `json:"lineId"`
	Start                 int        `json:"start"`
	End                   int        `json:"end"`
	StartAt               string     `json:"startAt"`
	EndAt                 string     `json:"endAt"`
	FillDuration          int        `json:"fillDuration"`
	ManufacturingDuration int        `json:"manufacturingDuration"`
	MixerID               string     `json:"mixerId,omitempty"`
	Status                string     `json:"status"`
	Locked                bool       `json:"locked"`
	StartQty              float64    `json:"startQty"`
	RestQty               float64    `json:"restQty"`
}

// MixerBlockResponse is the outward-facing representation of a mixer block.
type MixerBlockResponse struct {
	BlockID string `json:"blockId"`
	MixerID string `json:"mixerId"`
	OrderID string `json:"orderId"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Kind    string `json:"kind"`
}

// PlanResponse is the full timeline view: orders, mixer occupancy and the ids
// of blocks currently in conflict.
type PlanResponse struct {
	Orders           []OrderResponse      `json:"orders"`
	MixerBlocks      []MixerBlockResponse `json:"mixerBlocks"`
	ConflictBlockIDs []string             `json:"conflictBlockIds"`
}

func toOrderResponse(o Order) OrderResponse {
	return OrderResponse{
		OrderID:               o.ID,
		ProductionOrderNumber: o.ProductionOrderNumber,
		ProductID:             o.ProductID,
		ProductName:           o.ProductName,
		VolumeLiters:          o.VolumeLiters,
		BottleSize:            o.BottleSize,
		LineID:                o.LineID,
		Start:                 o.Start,
		End:                   o.End,
		StartAt:               ToHHMM(o.Start),
		EndAt:                 ToHHMM(o.End),
		FillDuration:          o.FillDuration,
		ManufacturingDuration: o.ManufacturingDuration,
		MixerID:               o.MixerID,
		Status:                string(o.Status()),
		Locked:                o.Locked,
		StartQty:              o.StartQty,
		RestQty:               o.RestQty,
	}
}

func toPlanResponse(plan Plan, conflicts []string) PlanResponse {
	resp := PlanResponse{
		Orders:           make([]OrderResponse, 0, len(plan.Orders)),
		MixerBlocks:      make([]MixerBlockResponse, 0, len(plan.MixerBlocks)),
		ConflictBlockIDs: conflicts,
	}
	if resp.ConflictBlockIDs == nil {
		resp.ConflictBlockIDs = []string{}
	}
	for _, o := range plan.Orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o))
	}
	for _, b := range plan.Blocks() {
		resp.MixerBlocks = append(resp.MixerBlocks, MixerBlockResponse{
			BlockID: b.ID,
			MixerID: b.MixerID,
			OrderID: blockOrderID(plan, b),
			Start:   b.Start,
			End:     b.End,
			StartAt: ToHHMM(b.Start),
			EndAt:   ToHHMM(b.End),
			Kind:    string(b.Kind),
		})
	}
	return resp
}

func blockOrderID(plan Plan, b Block) string {
	if b.Kind == KindHeld {
		// Held block ids are derived from the order id.
		for _, o := range plan.Orders {
			if o.MixerID != "" && HeldBlock(o).ID == b.ID {
				return o.ID
			}
		}
		return ""
	}
	for _, stored := range plan.MixerBlocks {
		if stored.ID == b.ID {
			return stored.OrderID
		}
	}
	return ""
}
