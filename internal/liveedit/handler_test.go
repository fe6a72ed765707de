package liveedit_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"bottling-backend/internal/bootstrap"
	"bottling-backend/internal/shared/config"
)

type sessionResponse struct {
	SessionID string `json:"sessionId"`
	Version   int    `json:"version"`
	Lines     []struct {
		LineID    string `json:"lineId"`
		Positions []struct {
			Position    int     `json:"position"`
			OrderID     string  `json:"orderId"`
			RestQty     float64 `json:"restQty"`
			StartAt     string  `json:"startAt"`
			EndAt       string  `json:"endAt"`
			DurationMin int     `json:"durationMin"`
		} `json:"positions"`
	} `json:"lines"`
	Dirty            bool `json:"dirty"`
	HasConflicts     bool `json:"hasConflicts"`
	CanUpdatePlanner bool `json:"canUpdatePlanner"`
	HistoryDepth     int  `json:"historyDepth"`
}

func newLiveEditApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func call(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "tester")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decode(t *testing.T, resp *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func seedOrder(t *testing.T, router *gin.Engine, pon, startAt string) string {
	t.Helper()
	resp := call(t, router, http.MethodPost, "/api/v1/products", map[string]any{
		"name":                     "Apfelschorle " + pon,
		"articleNumber":            "ART-" + pon,
		"manufacturingDurationMin": 45,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("seed product: %d %s", resp.Code, resp.Body.String())
	}
	var product struct {
		ProductID string `json:"productId"`
	}
	decode(t, resp, &product)

	resp = call(t, router, http.MethodPost, "/api/v1/orders", map[string]any{
		"productionOrderNumber": pon,
		"productId":             product.ProductID,
		"volumeLiters":          1350.0,
		"bottleSize":            "0.5L",
		"lineId":                "L1",
		"startAt":               startAt,
	})
	if resp.Code != http.StatusCreated {
		t.Fatalf("seed order: %d %s", resp.Code, resp.Body.String())
	}
	var order struct {
		OrderID string `json:"orderId"`
	}
	decode(t, resp, &order)
	return order.OrderID
}

func TestLiveEditFlowOverHTTP(t *testing.T) {
	app := newLiveEditApp(t)
	router := app.Router

	first := seedOrder(t, router, "PO-1", "08:00")
	seedOrder(t, router, "PO-2", "09:00")

	resp := call(t, router, http.MethodPost, "/api/v1/live-sessions", map[string]any{"date": "2025-01-07"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("create session: %d %s", resp.Code, resp.Body.String())
	}
	var session sessionResponse
	decode(t, resp, &session)
	if session.SessionID != "ist-2025-01-07" || session.Version != 1 {
		t.Fatalf("session = %+v", session)
	}
	if len(session.Lines) != 1 || len(session.Lines[0].Positions) != 2 {
		t.Fatalf("lines = %+v", session.Lines)
	}

	// Stale version is rejected with 409.
	resp = call(t, router, http.MethodPut, "/api/v1/live-sessions/"+session.SessionID+"/positions/"+first+"/rest-qty", map[string]any{
		"restQty":         500.0,
		"expectedVersion": 99,
	})
	if resp.Code != http.StatusConflict {
		t.Fatalf("stale version: %d %s", resp.Code, resp.Body.String())
	}

	// A valid correction bumps the version and retimes from 06:00.
	resp = call(t, router, http.MethodPut, "/api/v1/live-sessions/"+session.SessionID+"/positions/"+first+"/rest-qty", map[string]any{
		"restQty":         675.0,
		"expectedVersion": 1,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("rest-qty: %d %s", resp.Code, resp.Body.String())
	}
	decode(t, resp, &session)
	if session.Version != 2 || !session.Dirty || !session.CanUpdatePlanner {
		t.Fatalf("session after edit = %+v", session)
	}
	p := session.Lines[0].Positions[0]
	if p.RestQty != 675 || p.DurationMin != 23 {
		t.Fatalf("position = %+v", p)
	}
	if p.StartAt != "06:00" || p.EndAt != "06:23" {
		t.Fatalf("window = %s-%s", p.StartAt, p.EndAt)
	}
	if session.HistoryDepth != 1 {
		t.Fatalf("historyDepth = %d", session.HistoryDepth)
	}

	// Undo restores the forked state.
	resp = call(t, router, http.MethodPost, "/api/v1/live-sessions/"+session.SessionID+"/undo", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("undo: %d", resp.Code)
	}
	decode(t, resp, &session)
	if session.Lines[0].Positions[0].RestQty != 1350 {
		t.Fatalf("undo did not restore restQty: %+v", session.Lines[0].Positions[0])
	}

	// Redo the correction and publish.
	resp = call(t, router, http.MethodPut, "/api/v1/live-sessions/"+session.SessionID+"/positions/"+first+"/rest-qty", map[string]any{
		"restQty":         675.0,
		"expectedVersion": session.Version,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("rest-qty redo: %d %s", resp.Code, resp.Body.String())
	}
	decode(t, resp, &session)

	resp = call(t, router, http.MethodPost, "/api/v1/live-sessions/"+session.SessionID+"/publish", map[string]any{
		"expectedVersion": session.Version,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("publish: %d %s", resp.Code, resp.Body.String())
	}
	var result struct {
		Published          bool `json:"published"`
		Dirty              bool `json:"dirty"`
		MainPlannerVersion int  `json:"mainPlannerVersion"`
	}
	decode(t, resp, &result)
	if !result.Published || result.Dirty {
		t.Fatalf("publish result = %+v", result)
	}

	// The session is gone and the plan carries the corrected quantities.
	resp = call(t, router, http.MethodGet, "/api/v1/live-sessions/"+session.SessionID, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after publish, got %d", resp.Code)
	}

	resp = call(t, router, http.MethodGet, "/api/v1/plan", nil)
	var plan struct {
		Orders []struct {
			OrderID string  `json:"orderId"`
			RestQty float64 `json:"restQty"`
			StartAt string  `json:"startAt"`
		} `json:"orders"`
	}
	decode(t, resp, &plan)
	if len(plan.Orders) != 2 {
		t.Fatalf("plan orders = %+v", plan.Orders)
	}
	for _, o := range plan.Orders {
		if o.OrderID == first {
			if o.RestQty != 675 || o.StartAt != "06:00" {
				t.Fatalf("published order = %+v", o)
			}
		}
	}
}

func TestLiveEditDeletePositionOverHTTP(t *testing.T) {
	app := newLiveEditApp(t)
	router := app.Router

	first := seedOrder(t, router, "PO-1", "08:00")
	seedOrder(t, router, "PO-2", "09:00")

	resp := call(t, router, http.MethodPost, "/api/v1/live-sessions", map[string]any{"date": "2025-01-08"})
	var session sessionResponse
	decode(t, resp, &session)

	resp = call(t, router, http.MethodPost, "/api/v1/live-sessions/"+session.SessionID+"/positions/"+first+"/delete", map[string]any{
		"expectedVersion": 1,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("delete position: %d %s", resp.Code, resp.Body.String())
	}
	decode(t, resp, &session)
	if len(session.Lines[0].Positions) != 1 {
		t.Fatalf("positions = %+v", session.Lines[0].Positions)
	}
	if session.Lines[0].Positions[0].Position != 1 {
		t.Fatalf("renumber failed: %+v", session.Lines[0].Positions[0])
	}
}
