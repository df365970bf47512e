package server

import (
	"bytes"
	"testing"
	"time"
)

func newTestLogger(renderID string, ch chan ConsoleMessage) (*WebLogger, *bytes.Buffer) {
	var out bytes.Buffer
	return &WebLogger{renderID: renderID, consoleChan: ch, out: &out}, &out
}

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger, out := newTestLogger("test-render-123", messageChan)

	testMessage := "Test log message"
	logger.Printf("%s\n", testMessage)

	select {
	case msg := <-messageChan:
		expectedMessage := testMessage + "\n"
		if msg.Message != expectedMessage {
			t.Errorf("Expected message '%s', got '%s'", expectedMessage, msg.Message)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render ID 'test-render-123', got '%s'", msg.RenderID)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}

	if got := out.String(); got != "[test-render-123] Test log message\n" {
		t.Errorf("Unexpected server log output %q", got)
	}
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger, _ := newTestLogger("test-render-456", messageChan)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	for i, expected := range messages {
		select {
		case msg := <-messageChan:
			if msg.Message != expected+"\n" {
				t.Errorf("Message %d: expected '%s', got '%s'", i, expected+"\n", msg.Message)
			}
		case <-time.After(200 * time.Millisecond):
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}
}

func TestWebLogger_Levels(t *testing.T) {
	tests := []struct {
		message string
		level   string
	}{
		{"Loaded OBJ data: 12 vertices\n", "info"},
		{"Warning: large image\n", "warning"},
		{"  error reading mesh\n", "error"},
		{"ERROR: boom\n", "error"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			messageChan := make(chan ConsoleMessage, 1)
			logger, _ := newTestLogger("levels", messageChan)
			logger.Printf("%s", tt.message)

			msg := <-messageChan
			if msg.Level != tt.level {
				t.Errorf("Expected level %q, got %q", tt.level, msg.Level)
			}
		})
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger, _ := newTestLogger("test-render-789", messageChan)

	logger.Printf("Message 1\n")
	// These must be dropped, not block
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	msg := <-messageChan
	if msg.Message != "Message 1\n" {
		t.Errorf("Expected the first message to survive, got %q", msg.Message)
	}
	select {
	case extra := <-messageChan:
		t.Errorf("Expected later messages to be dropped, got %q", extra.Message)
	default:
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger, out := newTestLogger("test-render-nil", nil)

	// This should not panic
	logger.Printf("Test message with nil channel\n")

	if out.Len() == 0 {
		t.Error("Expected the message on the server log")
	}
}

func TestNewWebLogger(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-format", messageChan)

	logger.Printf("Loading %s with %d triangles...\n", "teapot.obj", 12345)

	select {
	case msg := <-messageChan:
		expected := "Loading teapot.obj with 12345 triangles...\n"
		if msg.Message != expected {
			t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for formatted message")
	}
}
