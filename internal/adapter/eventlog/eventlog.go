package eventlog

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/voyago/storefront/internal/core/port"
)

var _ port.Notifier = (*Recorder)(nil)

type event struct {
	Time    string `json:"time"`
	Message string `json:"message"`
}

// A Recorder is the toast-notification sink: it mirrors every
// user-visible message to the structured log and appends it as a JSON
// line to a local events file. Recording never fails the triggering
// operation, write errors are logged and dropped.
type Recorder struct {
	mu   sync.Mutex
	path string
}

func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

func (r *Recorder) Notify(ctx context.Context, message string) {
	const op = "Recorder.Notify"
	log := slog.With("op", op)

	log.Info("notification", "message", message)

	if err := ctx.Err(); err != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warn("failed to open events file", "err", err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Warn("failed to close events file", "err", err)
		}
	}()

	evt := event{
		Time:    time.Now().Format(time.RFC3339),
		Message: message,
	}
	if err := json.NewEncoder(f).Encode(evt); err != nil {
		log.Warn("failed to append event", "err", err)
	}
}
