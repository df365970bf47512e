package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

type sseEvent struct {
	event string
	data  string
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	for _, block := range strings.Split(body, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		var ev sseEvent
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.event = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.data = strings.TrimPrefix(line, "data: ")
			}
		}
		events = append(events, ev)
	}
	return events
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expected    int
		expectError bool
	}{
		{"default", "", 400, false},
		{"valid", "width=640", 640, false},
		{"lower bound", "width=10", 10, false},
		{"below min", "width=9", 0, true},
		{"above max", "width=2001", 0, true},
		{"not a number", "width=wide", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, err := parseIntParam(values, "width", 400, MinImageSize, MaxImageSize)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, NewServer(0, ""), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected body %q", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, NewServer(0, t.TempDir()), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var response scene.ScenesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(response.Groups) != 1 || len(response.Groups[0].Scenes) != len(scene.ListBuiltins()) {
		t.Errorf("Expected only the built-in scenes, got %+v", response.Groups)
	}
}

func TestHandleRender(t *testing.T) {
	rec := get(t, NewServer(0, ""), "/api/render?scene=default&width=20&height=10&bandRows=4")

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Expected SSE content type, got %q", ct)
	}

	var bands []BandUpdate
	var complete *RenderComplete
	for _, ev := range parseSSE(t, rec.Body.String()) {
		switch ev.event {
		case "band":
			var b BandUpdate
			if err := json.Unmarshal([]byte(ev.data), &b); err != nil {
				t.Fatalf("Invalid band JSON: %v", err)
			}
			bands = append(bands, b)
		case "complete":
			complete = &RenderComplete{}
			if err := json.Unmarshal([]byte(ev.data), complete); err != nil {
				t.Fatalf("Invalid completion JSON: %v", err)
			}
		case "error":
			t.Fatalf("Unexpected error event: %s", ev.data)
		}
	}

	if len(bands) != 3 {
		t.Fatalf("Expected 3 bands, got %d", len(bands))
	}
	for i, b := range bands {
		if b.BandNumber != i+1 || b.TotalBands != 3 || b.Y != i*4 {
			t.Errorf("Band %d: unexpected %+v", i, b)
		}
		raw, err := base64.StdEncoding.DecodeString(b.ImageData)
		if err != nil {
			t.Fatalf("Band %d: invalid base64: %v", i, err)
		}
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			t.Fatalf("Band %d: invalid PNG: %v", i, err)
		}
		if img.Bounds().Dx() != 20 || img.Bounds().Dy() != b.Height {
			t.Errorf("Band %d: expected 20x%d image, got %v", i, b.Height, img.Bounds())
		}
	}
	if bands[2].Height != 2 {
		t.Errorf("Expected the last band to hold 2 rows, got %d", bands[2].Height)
	}

	if complete == nil {
		t.Fatal("Expected a complete event")
	}
	if complete.TotalPixels != 200 || complete.LitPixels == 0 || complete.MaxDepth != 8 {
		t.Errorf("Unexpected completion stats %+v", complete)
	}
}

func TestHandleRender_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"bad width", "/api/render?width=5"},
		{"bad depth", "/api/render?maxDepth=100"},
		{"unknown scene", "/api/render?scene=cornell&width=20&height=10"},
		{"scene outside directory", "/api/render?scene=../secret.json&width=20&height=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, NewServer(0, "scenes"), tt.target)
			events := parseSSE(t, rec.Body.String())
			found := false
			for _, ev := range events {
				if ev.event == "error" {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected an error event, got %+v", events)
			}
		})
	}
}

func TestHandleInspect(t *testing.T) {
	s := NewServer(0, "")

	t.Run("hit", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?scene=default&width=11&height=11&x=5&y=5")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if !resp.Hit || resp.Shape != "sphere" {
			t.Fatalf("Expected a sphere hit, got %+v", resp)
		}
		if resp.Distance < 3.9999 || resp.Distance > 4.0001 {
			t.Errorf("Expected distance 4, got %v", resp.Distance)
		}
		if len(resp.Shadowed) != 1 || resp.Shadowed[0] {
			t.Errorf("Expected one unshadowed light, got %v", resp.Shadowed)
		}
		if resp.Material["color"] != "#ccff99" {
			t.Errorf("Expected outer sphere colour #ccff99, got %v", resp.Material["color"])
		}
	})

	t.Run("miss", func(t *testing.T) {
		rec := get(t, s, "/api/inspect?scene=default&width=11&height=11&x=0&y=0")
		var resp InspectResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Invalid JSON: %v", err)
		}
		if resp.Hit {
			t.Errorf("Expected a miss, got %+v", resp)
		}
	})

	errors := []struct {
		name   string
		target string
	}{
		{"missing coordinates", "/api/inspect?scene=default"},
		{"x out of bounds", "/api/inspect?scene=default&width=11&height=11&x=11&y=0"},
		{"negative y", "/api/inspect?scene=default&width=11&height=11&x=0&y=-1"},
		{"unknown scene", "/api/inspect?scene=nope&x=0&y=0"},
	}
	for _, tt := range errors {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateScene_JSON(t *testing.T) {
	dir := t.TempDir()
	doc := `{"camera": {"from": [0, 0, -5], "to": [0, 0, 0]},
		"lights": [{"position": [-10, 10, -10]}],
		"objects": [{"type": "sphere", "name": "ball"}]}`
	path := filepath.Join(dir, "ball.json")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	s := NewServer(0, dir)
	sc, err := s.createScene(&RenderRequest{Scene: path, Width: 11, Height: 11, MaxDepth: 2}, nil)
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if sc.World.MaxDepth != 2 || sc.Camera.HSize != 11 {
		t.Errorf("Expected overrides to apply, got depth %d size %d", sc.World.MaxDepth, sc.Camera.HSize)
	}

	rec := get(t, s, "/api/inspect?scene="+url.QueryEscape(path)+"&width=11&height=11&x=5&y=5")
	var resp InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.Name != "ball" {
		t.Errorf("Expected the named sphere, got %+v", resp)
	}
}
