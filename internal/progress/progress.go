package progress

import (
	"sync"

	"github.com/rs/zerolog"
)

// ProgressUpdate is a progress report sent on a channel by one strategy.
type ProgressUpdate struct {
	// FolderIndex identifies the strategy in a multi-strategy run.
	FolderIndex int
	// Value is the completed fraction in [0, 1].
	Value float64
}

// ProgressCallback receives the completed fraction in [0, 1].
type ProgressCallback func(progress float64)

// ProgressObserver receives progress for a given strategy index.
type ProgressObserver interface {
	Update(folderIndex int, progress float64)
}

// ProgressSubject dispatches progress to registered observers.
// It is safe for concurrent use.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates a subject with no observers.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer. Nil observers are ignored.
func (s *ProgressSubject) Register(o ProgressObserver) {
	if o == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

// Unregister removes the first occurrence of o.
func (s *ProgressSubject) Unregister(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, obs := range s.observers {
		if obs == o {
			s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
			return
		}
	}
}

// ObserverCount returns the number of registered observers.
func (s *ProgressSubject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Notify sends progress to every registered observer.
func (s *ProgressSubject) Notify(folderIndex int, progress float64) {
	s.mu.RLock()
	observers := s.observers
	s.mu.RUnlock()
	for _, o := range observers {
		o.Update(folderIndex, progress)
	}
}

// Freeze returns a callback bound to folderIndex that notifies the observers
// registered at the time of the call. Observers registered later are not
// notified through it.
func (s *ProgressSubject) Freeze(folderIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(progress float64) {
		for _, o := range snapshot {
			o.Update(folderIndex, progress)
		}
	}
}

// ChannelObserver forwards progress to a channel without blocking.
// Updates are dropped when the channel is full.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver wraps ch. A nil channel yields an observer that drops
// every update.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(folderIndex int, progress float64) {
	if o.ch == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}
	select {
	case o.ch <- ProgressUpdate{FolderIndex: folderIndex, Value: progress}:
	default:
	}
}

// LoggingObserver logs progress at debug level whenever it advances by at
// least the configured step.
type LoggingObserver struct {
	logger zerolog.Logger
	step   float64

	mu   sync.Mutex
	last map[int]float64
}

// NewLoggingObserver creates an observer that logs every step fraction
// (0.1 logs at 10%, 20%, ...). A non-positive step defaults to 0.1.
func NewLoggingObserver(logger zerolog.Logger, step float64) *LoggingObserver {
	if step <= 0 {
		step = 0.1
	}
	return &LoggingObserver{logger: logger, step: step, last: make(map[int]float64)}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(folderIndex int, progress float64) {
	o.mu.Lock()
	last, seen := o.last[folderIndex]
	if seen && progress-last < o.step && progress < 1.0 {
		o.mu.Unlock()
		return
	}
	o.last[folderIndex] = progress
	o.mu.Unlock()

	o.logger.Debug().
		Int("strategy", folderIndex).
		Float64("progress", progress).
		Msg("fold progress")
}

// NoOpObserver discards every update.
type NoOpObserver struct{}

// NewNoOpObserver returns a NoOpObserver.
func NewNoOpObserver() NoOpObserver {
	return NoOpObserver{}
}

// Update implements ProgressObserver.
func (NoOpObserver) Update(int, float64) {}
