package server

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/protoboard/protoboard/internal/metrics"
	"github.com/protoboard/protoboard/pkg/catalog"
	perrors "github.com/protoboard/protoboard/pkg/errors"
	"github.com/protoboard/protoboard/pkg/importer"
	"github.com/protoboard/protoboard/pkg/workspace"
)

const page = `Adafruit VL53L1X Time of Flight Distance Sensor

A long range laser distance sensor on a 25 mm breakout. Runs from 2.8-5V and draws 16 mA while ranging.
It talks I2C and exposes 7 pins including XSHUT and GPIO. Useful for robots, drones and gesture input.`

type testEnv struct {
	srv   *httptest.Server
	store *workspace.Store
	reg   *prometheus.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, page)
	}))
	t.Cleanup(proxy.Close)

	cat := catalog.Default()
	store := workspace.New(cat, workspace.WithRand(func() float64 { return 0.5 }))
	im := importer.New(cat, importer.WithProxy(proxy.URL+"/"), importer.WithRetry(1, time.Millisecond))
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	srv := httptest.NewServer(New(store, im, WithMetrics(m, reg)).Handler())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, store: store, reg: reg}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	if err != nil {
		t.Fatal(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("%s %s: status = %d, want %d: %s", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want, body)
	}
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	resp := e.do(t, http.MethodGet, "/healthz", nil)
	expectStatus(t, resp, http.StatusOK)

	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestBoards(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, http.MethodGet, "/api/boards?category=fpga", nil)
	expectStatus(t, resp, http.StatusOK)
	var boards []catalog.Board
	decodeBody(t, resp, &boards)
	if len(boards) != 4 {
		t.Errorf("fpga boards = %d, want 4", len(boards))
	}
	for _, b := range boards {
		if b.Category != catalog.BoardFPGA {
			t.Errorf("board %s has category %s", b.ID, b.Category)
		}
	}

	resp = e.do(t, http.MethodGet, "/api/boards/arduino-uno-r3", nil)
	expectStatus(t, resp, http.StatusOK)

	resp = e.do(t, http.MethodGet, "/api/boards/nope", nil)
	expectStatus(t, resp, http.StatusNotFound)
	var apiErr apiError
	decodeBody(t, resp, &apiErr)
	if apiErr.Code != perrors.ErrCodeNotFound {
		t.Errorf("code = %q", apiErr.Code)
	}

	resp = e.do(t, http.MethodGet, "/api/boards/arduino-uno-r3/footprint.svg", nil)
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestModulesFilter(t *testing.T) {
	e := newTestEnv(t)
	resp := e.do(t, http.MethodGet, "/api/modules?compatible=digilent-nexys-a7-100t", nil)
	expectStatus(t, resp, http.StatusOK)

	var mods []catalog.ModuleMetadata
	decodeBody(t, resp, &mods)
	for _, m := range mods {
		if m.ID == "mod-pixy2" || m.ID == "mod-relay4ch" {
			t.Errorf("%s is not FPGA compatible", m.ID)
		}
	}
	if len(mods) == 0 {
		t.Error("no modules returned")
	}
}

func TestModuleRoundTrip(t *testing.T) {
	e := newTestEnv(t)

	resp := e.do(t, http.MethodPost, "/api/workspace/modules", map[string]string{"moduleId": "mod-servo"})
	expectStatus(t, resp, http.StatusCreated)
	var placed workspace.PlacedModule
	decodeBody(t, resp, &placed)
	if placed.ID != "mod-servo" || placed.InstanceID == "" {
		t.Fatalf("placed = %+v", placed)
	}

	path := "/api/workspace/modules/" + placed.InstanceID + "/transform"
	resp = e.do(t, http.MethodPatch, path, map[string]any{
		"position": map[string]float64{"x": 5},
		"rotation": map[string]float64{"z": 90},
	})
	expectStatus(t, resp, http.StatusOK)
	var moved workspace.PlacedModule
	decodeBody(t, resp, &moved)
	if moved.Position.X != 5 || moved.Position.Y != placed.Position.Y || moved.Rotation.Z != 90 {
		t.Errorf("moved = %+v / %+v", moved.Position, moved.Rotation)
	}

	resp = e.do(t, http.MethodGet, "/api/workspace", nil)
	expectStatus(t, resp, http.StatusOK)
	var snap workspace.Snapshot
	decodeBody(t, resp, &snap)
	if len(snap.Modules) != 1 || snap.Modules[0].Position.X != 5 {
		t.Errorf("snapshot = %+v", snap.Modules)
	}

	resp = e.do(t, http.MethodDelete, "/api/workspace/modules/"+placed.InstanceID, nil)
	expectStatus(t, resp, http.StatusNoContent)
	if n := len(e.store.Snapshot().Modules); n != 0 {
		t.Errorf("store has %d modules after delete", n)
	}

	// Deleting again is harmless.
	resp = e.do(t, http.MethodDelete, "/api/workspace/modules/"+placed.InstanceID, nil)
	expectStatus(t, resp, http.StatusNoContent)
}

func TestModuleErrors(t *testing.T) {
	e := newTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   perrors.Code
	}{
		{"unknown module", http.MethodPost, "/api/workspace/modules", map[string]string{"moduleId": "mod-nope"}, http.StatusNotFound, perrors.ErrCodeNotFound},
		{"malformed module id", http.MethodPost, "/api/workspace/modules", map[string]string{"moduleId": "Bad Id"}, http.StatusBadRequest, perrors.ErrCodeInvalidModule},
		{"unknown field", http.MethodPost, "/api/workspace/modules", map[string]string{"module": "mod-servo"}, http.StatusBadRequest, perrors.ErrCodeInvalidInput},
		{"transform missing module", http.MethodPatch, "/api/workspace/modules/ghost/transform", map[string]any{"position": map[string]float64{"x": 1}}, http.StatusNotFound, perrors.ErrCodeNotFound},
		{"empty transform", http.MethodPatch, "/api/workspace/modules/ghost/transform", map[string]any{}, http.StatusBadRequest, perrors.ErrCodeInvalidInput},
		{"unknown board", http.MethodPut, "/api/workspace/board", map[string]string{"boardId": "esp32-devkit"}, http.StatusBadRequest, perrors.ErrCodeInvalidBoard},
		{"bad view", http.MethodPut, "/api/workspace/view", map[string]string{"view": "isometric"}, http.StatusBadRequest, perrors.ErrCodeInvalidView},
		{"missing ratio", http.MethodPut, "/api/workspace/split", map[string]any{}, http.StatusBadRequest, perrors.ErrCodeInvalidInput},
		{"bad import url", http.MethodPost, "/api/workspace/import", map[string]string{"url": "not a url"}, http.StatusBadRequest, perrors.ErrCodeInvalidURL},
		{"bad render format", http.MethodGet, "/api/workspace/schematic.dot?render=pdf", nil, http.StatusBadRequest, perrors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := e.do(t, tt.method, tt.path, tt.body)
			expectStatus(t, resp, tt.status)
			var apiErr apiError
			decodeBody(t, resp, &apiErr)
			if apiErr.Code != tt.code {
				t.Errorf("code = %q, want %q", apiErr.Code, tt.code)
			}
			if apiErr.Message == "" {
				t.Error("empty message")
			}
		})
	}
	if n := len(e.store.Snapshot().Modules); n != 0 {
		t.Errorf("failed requests placed %d modules", n)
	}
}

func TestWorkspaceSettings(t *testing.T) {
	e := newTestEnv(t)
	e.store.AddModule(mustModule(t, "mod-pixy2"))
	e.store.AddModule(mustModule(t, "mod-servo"))

	resp := e.do(t, http.MethodPut, "/api/workspace/board", map[string]string{"boardId": "xilinx-kria-kv260"})
	expectStatus(t, resp, http.StatusOK)
	var snap workspace.Snapshot
	decodeBody(t, resp, &snap)
	if snap.BoardID != "xilinx-kria-kv260" || len(snap.Modules) != 1 {
		t.Errorf("after board change: board %q, %d modules", snap.BoardID, len(snap.Modules))
	}

	resp = e.do(t, http.MethodPut, "/api/workspace/view", map[string]string{"view": "3d"})
	expectStatus(t, resp, http.StatusOK)
	decodeBody(t, resp, &snap)
	if snap.View != workspace.ViewThreeD {
		t.Errorf("View = %q", snap.View)
	}

	resp = e.do(t, http.MethodPut, "/api/workspace/split", map[string]float64{"ratio": 0.95})
	expectStatus(t, resp, http.StatusOK)
	decodeBody(t, resp, &snap)
	if snap.SplitRatio != workspace.MaxSplitRatio {
		t.Errorf("SplitRatio = %v, want clamped to %v", snap.SplitRatio, workspace.MaxSplitRatio)
	}

	resp = e.do(t, http.MethodGet, "/api/workspace/stats", nil)
	expectStatus(t, resp, http.StatusOK)
	var stats struct {
		ModuleCount int  `json:"moduleCount"`
		OverBudget  bool `json:"overBudget"`
	}
	decodeBody(t, resp, &stats)
	if stats.ModuleCount != 1 {
		t.Errorf("ModuleCount = %d", stats.ModuleCount)
	}

	resp = e.do(t, http.MethodPost, "/api/workspace/reset", nil)
	expectStatus(t, resp, http.StatusOK)
	decodeBody(t, resp, &snap)
	if len(snap.Modules) != 0 {
		t.Errorf("reset left %d modules", len(snap.Modules))
	}
}

func TestImport(t *testing.T) {
	e := newTestEnv(t)
	resp := e.do(t, http.MethodPost, "/api/workspace/import", map[string]string{"url": "https://www.adafruit.com/product/3967"})
	expectStatus(t, resp, http.StatusCreated)

	var res struct {
		Module  catalog.ModuleMetadata `json:"module"`
		Placed  workspace.PlacedModule `json:"placed"`
		Outcome string                 `json:"outcome"`
		Message string                 `json:"message"`
		Error   string                 `json:"error"`
	}
	decodeBody(t, resp, &res)
	if res.Outcome != string(importer.OutcomeExtracted) || res.Error != "" {
		t.Errorf("outcome = %q, error = %q", res.Outcome, res.Error)
	}
	if !strings.HasPrefix(res.Module.ID, "imported-") {
		t.Errorf("module id = %q", res.Module.ID)
	}
	if _, ok := e.store.Module(res.Placed.InstanceID); !ok {
		t.Error("imported module not placed")
	}
}

func TestViews(t *testing.T) {
	e := newTestEnv(t)
	pm := e.store.AddModule(mustModule(t, "mod-servo"))

	resp := e.do(t, http.MethodGet, "/api/workspace/schematic.svg?grid=false&highlight="+pm.InstanceID, nil)
	expectStatus(t, resp, http.StatusOK)
	svg, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(svg, []byte(`id="module-`+pm.InstanceID+`"`)) {
		t.Error("schematic missing module")
	}
	if bytes.Contains(svg, []byte(`id="grid"`)) {
		t.Error("grid drawn despite grid=false")
	}

	resp = e.do(t, http.MethodGet, "/api/workspace/schematic.dot", nil)
	expectStatus(t, resp, http.StatusOK)
	dot, _ := io.ReadAll(resp.Body)
	if !bytes.HasPrefix(dot, []byte("graph workspace {")) {
		t.Errorf("dot = %.40s", dot)
	}

	resp = e.do(t, http.MethodGet, "/api/workspace/scene.json", nil)
	expectStatus(t, resp, http.StatusOK)
	var sc struct {
		Blocks []struct {
			InstanceID string `json:"instanceId"`
		} `json:"blocks"`
	}
	decodeBody(t, resp, &sc)
	if len(sc.Blocks) != 1 || sc.Blocks[0].InstanceID != pm.InstanceID {
		t.Errorf("scene blocks = %+v", sc.Blocks)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestEnv(t)
	expectStatus(t, e.do(t, http.MethodGet, "/api/boards", nil), http.StatusOK)

	resp := e.do(t, http.MethodGet, "/metrics", nil)
	expectStatus(t, resp, http.StatusOK)
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `protoboard_api_requests_total{code="200",method="GET",route="/api/boards"} 1`) {
		t.Errorf("metrics missing request counter:\n%s", body)
	}
}

// streamSnapshots decodes the data lines of an event stream.
func streamSnapshots(t *testing.T, body io.Reader) <-chan workspace.Snapshot {
	t.Helper()
	out := make(chan workspace.Snapshot, 16)
	go func() {
		defer close(out)
		sc := bufio.NewScanner(body)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for sc.Scan() {
			data, ok := strings.CutPrefix(sc.Text(), "data: ")
			if !ok {
				continue
			}
			var snap workspace.Snapshot
			if err := json.Unmarshal([]byte(data), &snap); err != nil {
				return
			}
			out <- snap
		}
	}()
	return out
}

func nextSnapshot(t *testing.T, events <-chan workspace.Snapshot) workspace.Snapshot {
	t.Helper()
	select {
	case snap, ok := <-events:
		if !ok {
			t.Fatal("event stream ended")
		}
		return snap
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a workspace event")
	}
	return workspace.Snapshot{}
}

func TestWorkspaceEvents(t *testing.T) {
	e := newTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.srv.URL+"/api/workspace/events", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	expectStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q", ct)
	}

	events := streamSnapshots(t, resp.Body)
	first := nextSnapshot(t, events)
	if len(first.Modules) != 0 || first.BoardID != "arduino-uno-r3" {
		t.Fatalf("initial event = %+v", first)
	}

	add := e.do(t, http.MethodPost, "/api/workspace/modules", map[string]string{"moduleId": "mod-servo"})
	expectStatus(t, add, http.StatusCreated)
	added := nextSnapshot(t, events)
	if len(added.Modules) != 1 || added.Modules[0].ID != "mod-servo" {
		t.Errorf("event after add = %+v", added.Modules)
	}
	if added.Revision <= first.Revision {
		t.Errorf("revision %d did not advance past %d", added.Revision, first.Revision)
	}

	e.store.SetWorkspaceView(workspace.ViewSchematic)
	if got := nextSnapshot(t, events); got.View != workspace.ViewSchematic {
		t.Errorf("event view = %q, want schematic", got.View)
	}
}

func TestTransformResponseIsUpdatedModule(t *testing.T) {
	e := newTestEnv(t)
	pm := e.store.AddModule(mustModule(t, "mod-bme688"))

	resp := e.do(t, http.MethodPatch, "/api/workspace/modules/"+pm.InstanceID+"/transform", map[string]any{
		"position": map[string]float64{"y": -3},
	})
	expectStatus(t, resp, http.StatusOK)
	var got workspace.PlacedModule
	decodeBody(t, resp, &got)
	if got.InstanceID != pm.InstanceID || got.ID != "mod-bme688" {
		t.Errorf("response identifies %q/%q, want %q", got.InstanceID, got.ID, pm.InstanceID)
	}
	if got.Position.Y != -3 || got.Position.X != pm.Position.X {
		t.Errorf("Position = %+v", got.Position)
	}
}

func TestCORS(t *testing.T) {
	e := newTestEnv(t)
	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/api/boards", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[perrors.Code]int{
		perrors.ErrCodeInvalidInput: http.StatusBadRequest,
		perrors.ErrCodeInvalidURL:   http.StatusBadRequest,
		perrors.ErrCodeNotFound:     http.StatusNotFound,
		perrors.ErrCodeNetwork:      http.StatusBadGateway,
		perrors.ErrCodeTimeout:      http.StatusGatewayTimeout,
		perrors.ErrCodeInternal:     http.StatusInternalServerError,
		"":                          http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := statusFor(code); got != want {
			t.Errorf("statusFor(%q) = %d, want %d", code, got, want)
		}
	}
}

func mustModule(t *testing.T, id string) catalog.ModuleMetadata {
	t.Helper()
	m, ok := catalog.Default().Module(id)
	if !ok {
		t.Fatalf("module %s missing from catalog", id)
	}
	return m
}
