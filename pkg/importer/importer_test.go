package importer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/protoboard/protoboard/pkg/cache"
	"github.com/protoboard/protoboard/pkg/catalog"
	perrors "github.com/protoboard/protoboard/pkg/errors"
	"github.com/protoboard/protoboard/pkg/workspace"
)

const productPage = `Bosch BMP390 Barometric Pressure Sensor Breakout

The BMP390 is a precise pressure sensor for altitude tracking. The breakout measures 25.4 mm square.
It accepts 1.7-3.6V supply and draws 3.2 µA in low power mode. Data is read over I2C or SPI.
Six pins are broken out, 6 pins in total. Weight 1.2 g. Ideal for drones and wearables.`

// proxyServer serves body for every path and counts requests.
func proxyServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestImporter(proxy string, opts ...Option) *Importer {
	base := []Option{WithProxy(proxy + "/"), WithRetry(2, time.Millisecond)}
	return New(catalog.Default(), append(base, opts...)...)
}

func TestImportExtracts(t *testing.T) {
	srv, _ := proxyServer(t, http.StatusOK, productPage)
	store := workspace.New(catalog.Default())
	im := newTestImporter(srv.URL)

	res := im.Import(context.Background(), "https://example.com/bmp390", "arduino-uno-r3", store)

	if res.Err != nil || res.Error != "" {
		t.Fatalf("unexpected failure: %v / %q", res.Err, res.Error)
	}
	if res.Outcome != OutcomeExtracted {
		t.Errorf("Outcome = %q, want extracted", res.Outcome)
	}
	if res.Message != MessageSuccess {
		t.Errorf("Message = %q, want default success", res.Message)
	}
	if !strings.HasPrefix(res.Module.ID, "imported-") {
		t.Errorf("ID = %q", res.Module.ID)
	}
	if res.Module.Name != "Bosch BMP390 Barometric Pressure Sensor Breakout" {
		t.Errorf("Name = %q", res.Module.Name)
	}
	if res.Module.Electrical.SupplyVoltage != "1.7–3.6 V" {
		t.Errorf("SupplyVoltage = %q", res.Module.Electrical.SupplyVoltage)
	}
	if res.Module.SourceURL != "https://example.com/bmp390" {
		t.Errorf("SourceURL = %q, want the original URL", res.Module.SourceURL)
	}

	snap := store.Snapshot()
	if len(snap.Modules) != 1 || snap.Modules[0].InstanceID != res.Placed.InstanceID {
		t.Errorf("store has %d modules, want the imported one", len(snap.Modules))
	}
}

func TestImportShortContentUsesPlaceholder(t *testing.T) {
	srv, _ := proxyServer(t, http.StatusOK, "Title only")
	store := workspace.New(catalog.Default())

	res := newTestImporter(srv.URL).Import(context.Background(), "https://www.adafruit.com/product/1", "arduino-uno-r3", store)

	if res.Outcome != OutcomePlaceholder || res.Err != nil {
		t.Errorf("Outcome = %q, Err = %v", res.Outcome, res.Err)
	}
	if res.Module.Name != "adafruit com Module" {
		t.Errorf("Name = %q", res.Module.Name)
	}
	if res.Message != MessageSuccess {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestImportRetrievalFailure(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode perrors.Code
		wantHits int32
	}{
		{"not found", http.StatusNotFound, perrors.ErrCodeNetwork, 1},
		{"server error retried", http.StatusBadGateway, perrors.ErrCodeNetwork, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := proxyServer(t, tt.status, "nope")
			store := workspace.New(catalog.Default())

			res := newTestImporter(srv.URL).Import(context.Background(), "https://example.com/x", "raspberry-pi-5-8gb", store)

			if n := len(store.Snapshot().Modules); n != 1 {
				t.Fatalf("store has %d modules, want exactly 1", n)
			}
			if res.Module.Status != catalog.StatusPartial {
				t.Errorf("Status = %q, want partial", res.Module.Status)
			}
			if res.Error == "" || res.Error != MessageFallback {
				t.Errorf("Error = %q, want the advisory", res.Error)
			}
			if !perrors.Is(res.Err, tt.wantCode) {
				t.Errorf("Err = %v, want code %s", res.Err, tt.wantCode)
			}
			if res.Outcome != OutcomeFallback {
				t.Errorf("Outcome = %q", res.Outcome)
			}
			if hits.Load() != tt.wantHits {
				t.Errorf("proxy hit %d times, want %d", hits.Load(), tt.wantHits)
			}
			if res.Module.CompatibleBoards[0] != "raspberry-pi-5-8gb" {
				t.Errorf("CompatibleBoards = %v", res.Module.CompatibleBoards)
			}
		})
	}
}

func TestImportUnreachableProxy(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	store := workspace.New(catalog.Default())
	res := newTestImporter(addr).Import(context.Background(), "https://example.com/x", "arduino-uno-r3", store)

	if n := len(store.Snapshot().Modules); n != 1 {
		t.Fatalf("store has %d modules, want 1", n)
	}
	if res.Error == "" || res.Err == nil {
		t.Errorf("expected an advisory and an error, got %q / %v", res.Error, res.Err)
	}
}

func TestImportInvalidURL(t *testing.T) {
	srv, hits := proxyServer(t, http.StatusOK, productPage)
	store := workspace.New(catalog.Default())

	res := newTestImporter(srv.URL).Import(context.Background(), "ftp://example.com", "unknown-board", store)

	if !perrors.Is(res.Err, perrors.ErrCodeInvalidURL) {
		t.Errorf("Err = %v, want INVALID_URL", res.Err)
	}
	if hits.Load() != 0 {
		t.Error("invalid URL should not be fetched")
	}
	if n := len(store.Snapshot().Modules); n != 1 {
		t.Errorf("store has %d modules, want 1", n)
	}
	if got := res.Module.CompatibleBoards[0]; got != catalog.Default().DefaultBoard().ID {
		t.Errorf("unknown board should fall back to default, got %q", got)
	}
}

func TestImportExternalTransformer(t *testing.T) {
	srv, _ := proxyServer(t, http.StatusOK, productPage)

	var gotAuth string
	var gotReq transformRequest
	transformer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"module":{"name":"BMP390 Breakout","dimensions":{"width":20}},"message":"Refined by remote model."}`))
	}))
	defer transformer.Close()

	store := workspace.New(catalog.Default())
	im := newTestImporter(srv.URL, WithTransformer(transformer.URL, "s3cret"))
	res := im.Import(context.Background(), "https://example.com/bmp390", "arduino-uno-r3", store)

	if gotAuth != "Bearer s3cret" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.URL != "https://example.com/bmp390" || gotReq.BoardID != "arduino-uno-r3" || gotReq.Content == "" {
		t.Errorf("transformer request = %+v", gotReq)
	}
	if gotReq.Module.Electrical.SupplyVoltage != "1.7–3.6 V" {
		t.Errorf("transformer should see the heuristic module, got %+v", gotReq.Module.Electrical)
	}
	if res.Module.Name != "BMP390 Breakout" {
		t.Errorf("Name = %q, want transformer override", res.Module.Name)
	}
	if res.Module.Dimensions.Width != 20 || res.Module.Dimensions.Depth != 12 {
		t.Errorf("Dimensions = %+v, want width overridden and depth kept", res.Module.Dimensions)
	}
	if res.Message != "Refined by remote model." {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestImportExternalTransformerFailure(t *testing.T) {
	srv, _ := proxyServer(t, http.StatusOK, productPage)
	transformer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusInternalServerError)
	}))
	defer transformer.Close()

	store := workspace.New(catalog.Default())
	res := newTestImporter(srv.URL, WithTransformer(transformer.URL, "")).
		Import(context.Background(), "https://example.com/bmp390", "arduino-uno-r3", store)

	if res.Err != nil {
		t.Errorf("transformer failure should not fail the import: %v", res.Err)
	}
	if res.Message != NoteRemoteError {
		t.Errorf("Message = %q, want the transformer note", res.Message)
	}
	if res.Module.Electrical.SupplyVoltage != "1.7–3.6 V" {
		t.Error("heuristic module should survive a transformer failure")
	}
}

func TestImportHook(t *testing.T) {
	srv, _ := proxyServer(t, http.StatusOK, productPage)
	transformer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Remote Name","icon":"BsCloud"}`))
	}))
	defer transformer.Close()

	var seen HookContext
	hook := func(_ context.Context, hc HookContext) (*Patch, error) {
		seen = hc
		return &Patch{Name: ptr("Hook Name")}, nil
	}

	store := workspace.New(catalog.Default())
	res := newTestImporter(srv.URL, WithTransformer(transformer.URL, ""), WithHook(hook)).
		Import(context.Background(), "https://example.com/bmp390", "arduino-uno-r3", store)

	if seen.DefaultModule.Name != "Remote Name" {
		t.Errorf("hook saw %q, want the transformer-merged module", seen.DefaultModule.Name)
	}
	if seen.Content != productPage || seen.BoardID != "arduino-uno-r3" {
		t.Error("hook context incomplete")
	}
	if res.Module.Name != "Hook Name" || res.Module.Icon != "BsCloud" {
		t.Errorf("Module = name %q icon %q", res.Module.Name, res.Module.Icon)
	}
	if res.Message != MessageSuccess {
		t.Errorf("Message = %q", res.Message)
	}
}

func TestImportHookFailuresContained(t *testing.T) {
	tests := []struct {
		name string
		hook Hook
	}{
		{"error", func(context.Context, HookContext) (*Patch, error) { return nil, errors.New("bad") }},
		{"panic", func(context.Context, HookContext) (*Patch, error) { panic("boom") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := proxyServer(t, http.StatusOK, productPage)
			store := workspace.New(catalog.Default())

			res := newTestImporter(srv.URL, WithHook(tt.hook)).
				Import(context.Background(), "https://example.com/bmp390", "arduino-uno-r3", store)

			if res.Message != NoteHookFailed {
				t.Errorf("Message = %q, want hook note", res.Message)
			}
			if n := len(store.Snapshot().Modules); n != 1 {
				t.Errorf("store has %d modules, want 1", n)
			}
			if res.Module.Name != "Bosch BMP390 Barometric Pressure Sensor Breakout" {
				t.Errorf("Name = %q, want heuristic name", res.Module.Name)
			}
		})
	}
}

func TestImportUsesContentCache(t *testing.T) {
	srv, hits := proxyServer(t, http.StatusOK, productPage)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	store := workspace.New(catalog.Default())
	im := newTestImporter(srv.URL, WithCache(fc, time.Hour))

	first := im.Import(context.Background(), "https://example.com/bmp390", "arduino-uno-r3", store)
	second := im.Import(context.Background(), "https://example.com/bmp390", "arduino-uno-r3", store)

	if hits.Load() != 1 {
		t.Errorf("proxy hit %d times, want 1", hits.Load())
	}
	if first.Module.Name != second.Module.Name {
		t.Errorf("cached import differs: %q vs %q", first.Module.Name, second.Module.Name)
	}
	if first.Module.ID == second.Module.ID {
		t.Error("each import should get a fresh module id")
	}
	if n := len(store.Snapshot().Modules); n != 2 {
		t.Errorf("store has %d modules, want 2", n)
	}
}

func TestImportDoesNotCacheFailures(t *testing.T) {
	srv, hits := proxyServer(t, http.StatusNotFound, "")
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	store := workspace.New(catalog.Default())
	im := newTestImporter(srv.URL, WithCache(fc, time.Hour))

	im.Import(context.Background(), "https://example.com/gone", "arduino-uno-r3", store)
	im.Import(context.Background(), "https://example.com/gone", "arduino-uno-r3", store)

	if hits.Load() != 2 {
		t.Errorf("proxy hit %d times, want 2", hits.Load())
	}
}

func TestImportTimeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(block)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	store := workspace.New(catalog.Default())
	res := newTestImporter(srv.URL).Import(ctx, "https://example.com/slow", "arduino-uno-r3", store)

	if !perrors.Is(res.Err, perrors.ErrCodeTimeout) {
		t.Errorf("Err = %v, want TIMEOUT", res.Err)
	}
	if n := len(store.Snapshot().Modules); n != 1 {
		t.Errorf("store has %d modules, want 1", n)
	}
}
