package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultAPIBase = "http://localhost:8080"

// apiClient is a thin JSON client for the planner API.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient() *apiClient {
	base := strings.TrimSpace(apiBase)
	if base == "" {
		base = strings.TrimSpace(os.Getenv("PLANCTL_API"))
	}
	if base == "" {
		base = defaultAPIBase
	}
	return &apiClient{
		baseURL: strings.TrimRight(base, "/"),
		token:   strings.TrimSpace(os.Getenv("PLANCTL_TOKEN")),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiErrorResponse struct {
	Error apiErrorBody `json:"error"`
}

// do issues a request with the standard headers and decodes the JSON reply
// into out when out is non-nil.
func (c *apiClient) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	} else {
		req.Header.Set("X-Guest-Id", "planctl")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("planner API unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Code != "" {
			return fmt.Errorf("%s: %s", apiErr.Error.Code, apiErr.Error.Message)
		}
		return fmt.Errorf("planner API returned %d", resp.StatusCode)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *apiClient) get(path string, out any) error {
	return c.do(http.MethodGet, path, nil, out)
}

func (c *apiClient) post(path string, body, out any) error {
	return c.do(http.MethodPost, path, body, out)
}

func (c *apiClient) put(path string, body, out any) error {
	return c.do(http.MethodPut, path, body, out)
}

func (c *apiClient) delete(path string) error {
	return c.do(http.MethodDelete, path, nil, nil)
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Wire types mirror the planner API responses.

type orderView struct {
	OrderID               string  `json:"orderId"`
	ProductionOrderNumber string  `json:"productionOrderNumber"`
	ProductID             string  `json:"productId"`
	ProductName           string  `json:"productName"`
	VolumeLiters          float64 `json:"volumeLiters"`
	BottleSize            string  `json:"bottleSize"`
	LineID                string  `json:"lineId"`
	StartAt               string  `json:"startAt"`
	EndAt                 string  `json:"endAt"`
	MixerID               string  `json:"mixerId"`
	Status                string  `json:"status"`
	Locked                bool    `json:"locked"`
}

type mixerBlockView struct {
	BlockID string `json:"blockId"`
	MixerID string `json:"mixerId"`
	OrderID string `json:"orderId"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	Kind    string `json:"kind"`
}

type planView struct {
	Orders           []orderView      `json:"orders"`
	MixerBlocks      []mixerBlockView `json:"mixerBlocks"`
	ConflictBlockIDs []string         `json:"conflictBlockIds"`
}

type productView struct {
	ProductID                string `json:"productId"`
	Name                     string `json:"name"`
	ArticleNumber            string `json:"articleNumber"`
	ManufacturingDurationMin int    `json:"manufacturingDurationMin"`
}

type positionView struct {
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
	MixerID               string  `json:"mixerId"`
}

type lineView struct {
	LineID    string         `json:"lineId"`
	Positions []positionView `json:"positions"`
}

type conflictView struct {
	MixerID      string `json:"mixerId"`
	BlockAID     string `json:"blockAId"`
	BlockBID     string `json:"blockBId"`
	OverlapStart string `json:"overlapStart"`
	OverlapEnd   string `json:"overlapEnd"`
}

type sessionView struct {
	SessionID        string         `json:"sessionId"`
	Version          int            `json:"version"`
	Lines            []lineView     `json:"lines"`
	Dirty            bool           `json:"dirty"`
	HasConflicts     bool           `json:"hasConflicts"`
	Conflicts        []conflictView `json:"conflicts"`
	CanUpdatePlanner bool           `json:"canUpdatePlanner"`
	HistoryDepth     int            `json:"historyDepth"`
}
