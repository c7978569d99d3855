package server

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/fieldworks/heightmap/internal/config"
)

func newTestServer(t *testing.T) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	cfg := config.DefaultConfig()
	srv := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return srv, conn
}

func seedPtr(s uint64) *uint64 { return &s }

func TestGenerateOverWebsocket(t *testing.T) {
	_, conn := newTestServer(t)

	req := GenerateRequest{
		Width: 4, Height: 3,
		MinHeight: 0, MaxHeight: 10,
		Octaves: 2,
		Seed:    seedPtr(42),
	}
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var resp GenerateResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}

	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.Seed != 42 {
		t.Errorf("Seed = %d, want 42", resp.Seed)
	}
	if rows := strings.Split(resp.Table, "\r\n"); len(rows) != 3 {
		t.Errorf("table has %d rows, want 3", len(rows))
	}
	if !strings.HasPrefix(resp.ImageURI, "data:image/png;base64,") {
		t.Errorf("ImageURI missing data URI prefix: %.40s", resp.ImageURI)
	}
}

func TestGenerateDeterministicAcrossRequests(t *testing.T) {
	_, conn := newTestServer(t)

	req := GenerateRequest{Width: 6, Height: 6, MaxHeight: 10, Octaves: 3, Seed: seedPtr(7)}

	var first, second GenerateResponse
	for i, out := range []*GenerateResponse{&first, &second} {
		if err := conn.WriteJSON(req); err != nil {
			t.Fatalf("WriteJSON %d failed: %v", i, err)
		}
		if err := conn.ReadJSON(out); err != nil {
			t.Fatalf("ReadJSON %d failed: %v", i, err)
		}
	}

	if first.Table != second.Table {
		t.Error("same seed produced different tables")
	}
	if first.ImageURI != second.ImageURI {
		t.Error("same seed produced different images")
	}
}

func TestGenerateServerPicksSeed(t *testing.T) {
	_, conn := newTestServer(t)

	if err := conn.WriteJSON(GenerateRequest{Width: 4, Height: 4, MaxHeight: 10}); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var resp GenerateResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	if resp.Table == "" {
		t.Error("empty table for server-seeded request")
	}
}

func TestGenerateRejectsOversizedGrid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Preview.MaxCells = 16
	s := New(cfg)

	resp := s.generate(GenerateRequest{Width: 100, Height: 100, MaxHeight: 10, Seed: seedPtr(1)})
	if resp.Error == "" {
		t.Error("expected error for oversized grid")
	}
}

func TestGenerateAppliesPresetDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Generator.Width = 5
	cfg.Generator.Height = 2
	s := New(cfg)

	resp := s.generate(GenerateRequest{Seed: seedPtr(1)})
	if resp.Error != "" {
		t.Fatalf("unexpected error: %s", resp.Error)
	}
	rows := strings.Split(resp.Table, "\r\n")
	if len(rows) != 2 {
		t.Errorf("table has %d rows, want preset height 2", len(rows))
	}
	if tokens := strings.Fields(rows[0]); len(tokens) != 5 {
		t.Errorf("row has %d cells, want preset width 5", len(tokens))
	}
}

func TestIndexPageServed(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("GET / status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}
