package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// BandUpdate is a finished band of rows sent via SSE
type BandUpdate struct {
	Y          int    `json:"y"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG of just this band
	BandNumber int    `json:"bandNumber"`
	TotalBands int    `json:"totalBands"`
}

// RenderComplete is the final SSE payload of a render
type RenderComplete struct {
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	ElapsedMs      int64   `json:"elapsedMs"`
	TotalPixels    int     `json:"totalPixels"`
	LitPixels      int     `json:"litPixels"`
	Coverage       float64 `json:"coverage"`
	PrimitiveCount int     `json:"primitiveCount"`
	MaxDepth       int     `json:"maxDepth"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG of the whole image
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "band", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender streams a banded render via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	// The console channel is never closed: a render goroutine that outlives
	// this handler may still log into it.
	consoleChan, webLogger := s.setupConsoleLogging()
	stopConsole := make(chan struct{})
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, stopConsole, consoleChan, sseEventChan)
	}()
	defer func() {
		close(stopConsole)
		<-consoleDone
	}()

	sc, err := s.createScene(req, webLogger)
	if err != nil {
		s.handleError(ctx, sseEventChan, err.Error())
		return
	}

	startTime := time.Now()
	raytracer := renderer.NewRaytracer(sc.World, sc.Camera, webLogger)
	bandChan, passChan, errChan := raytracer.RenderProgressive(ctx, renderer.RenderOptions{
		BandRows:    req.BandRows,
		BandUpdates: true,
	})

	s.handleRenderingEvents(ctx, sseEventChan, bandChan, passChan, errChan, sc, startTime)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes every SSE event from a single goroutine
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards logger output as console events. After
// stop it flushes what is already buffered and returns.
func (s *Server) streamConsoleMessages(ctx context.Context, stop <-chan struct{}, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	forward := func(msg ConsoleMessage) bool {
		data, err := json.Marshal(msg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			return true
		}
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
			return false
		default:
			// Channel full, skip message to avoid blocking
		}
		return true
	}

	for {
		select {
		case msg := <-consoleChan:
			if !forward(msg) {
				return
			}
		case <-stop:
			for {
				select {
				case msg := <-consoleChan:
					if !forward(msg) {
						return
					}
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	var err error
	if req.BandRows, err = parseIntParam(r.URL.Query(), "bandRows", renderer.DefaultBandRows, 1, MaxImageSize); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 1000*1000 {
		log.Printf("Render warning: Large image may render slowly")
	}
	return req, nil
}

// handleRenderingEvents relays renderer channels until all are drained
func (s *Server) handleRenderingEvents(ctx context.Context, sseEventChan chan<- SSEEvent,
	bandChan <-chan renderer.BandResult, passChan <-chan renderer.PassResult, errChan <-chan error,
	sc *scene.Scene, startTime time.Time) {

	for bandChan != nil || passChan != nil || errChan != nil {
		select {
		case band, ok := <-bandChan:
			if !ok {
				bandChan = nil
				continue
			}
			s.handleBandUpdate(ctx, sseEventChan, band)

		case pass, ok := <-passChan:
			if !ok {
				passChan = nil
				continue
			}
			s.handleRenderComplete(ctx, sseEventChan, pass, sc, startTime)

		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleBandUpdate encodes and sends one band
func (s *Server) handleBandUpdate(ctx context.Context, sseEventChan chan<- SSEEvent, band renderer.BandResult) {
	imageData, err := s.imageToBase64PNG(band.Image)
	if err != nil {
		log.Printf("Error encoding band %d: %v", band.BandNumber, err)
		return
	}

	data, err := json.Marshal(BandUpdate{
		Y:          band.Y,
		Height:     band.Image.Bounds().Dy(),
		ImageData:  imageData,
		BandNumber: band.BandNumber,
		TotalBands: band.TotalBands,
	})
	if err != nil {
		log.Printf("Error marshaling band update: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "band", Data: string(data)}:
	case <-ctx.Done():
	}
}

// handleRenderComplete sends the finished image with its statistics
func (s *Server) handleRenderComplete(ctx context.Context, sseEventChan chan<- SSEEvent, pass renderer.PassResult, sc *scene.Scene, startTime time.Time) {
	imageData, err := s.imageToBase64PNG(pass.Canvas.ToImage())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	data, err := json.Marshal(RenderComplete{
		Width:          pass.Canvas.Width,
		Height:         pass.Canvas.Height,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		TotalPixels:    pass.Stats.TotalPixels,
		LitPixels:      pass.Stats.LitPixels,
		Coverage:       pass.Stats.Coverage(),
		PrimitiveCount: sc.PrimitiveCount(),
		MaxDepth:       sc.World.MaxDepth,
		ImageData:      imageData,
	})
	if err != nil {
		log.Printf("Error marshaling completion: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
