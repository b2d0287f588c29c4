package replay

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// writerQueue is how many finished recordings may wait for the saver.
const writerQueue = 32

// ErrWriterClosed is returned by Writer.SaveRecording after Close.
var ErrWriterClosed = errors.New("replay: writer closed")

// Writer is a Saver that hands recordings to a background goroutine, so a
// slow store does not hold up the scheduler that finished the session.
// Recordings are saved in the order they were queued. SaveRecording only
// waits when writerQueue recordings are already pending.
type Writer struct {
	saver  Saver
	logger *log.Logger

	mu     sync.Mutex
	closed bool
	queue  chan Recording
	done   chan struct{}
}

// NewWriter starts a writer in front of saver. Call Close to flush it.
func NewWriter(saver Saver, logger *log.Logger) *Writer {
	w := &Writer{
		saver:  saver,
		logger: logger,
		queue:  make(chan Recording, writerQueue),
		done:   make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Writer) run() {
	defer close(w.done)
	for rec := range w.queue {
		id, err := w.saver.SaveRecording(rec)
		if err != nil {
			w.logger.Warn("cannot save replay", "err", err)
			continue
		}
		w.logger.Debug("replay saved", "id", id, "events", len(rec.Events))
	}
}

// SaveRecording queues rec. The returned ID is always 0; the real ID is
// only known once the store has written it.
func (w *Writer) SaveRecording(rec Recording) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, ErrWriterClosed
	}
	w.queue <- rec
	return 0, nil
}

// Close saves everything still queued and stops the writer.
func (w *Writer) Close() {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	<-w.done
}
