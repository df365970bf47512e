package core

// Logger interface for renderer, loader and server logging
type Logger interface {
	Printf(format string, args ...interface{})
}
