package merge

import "go.uber.org/zap"

// ConflictWarner emits a warning for a given cause at most once per merge
// call, so that N identical conflicts across many sources produce one
// message, not N. A nil logger disables all warnings.
//
// Each merge entry point constructs its own warner; none is ever shared
// across calls.
type ConflictWarner struct {
	logger *zap.Logger
	issued map[string]struct{}
}

// NewConflictWarner creates a warner backed by the given logger.
func NewConflictWarner(logger *zap.Logger) *ConflictWarner {
	return &ConflictWarner{
		logger: logger,
		issued: make(map[string]struct{}),
	}
}

// Warn forwards msg to the logger unless a warning for cause was already
// issued by this warner.
func (w *ConflictWarner) Warn(cause, msg string) {
	if w.logger == nil {
		return
	}
	if _, ok := w.issued[cause]; ok {
		return
	}
	w.issued[cause] = struct{}{}
	w.logger.Warn(msg, zap.String("cause", cause))
}
