package progress

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

type countingObserver struct {
	count atomic.Int64
}

func (o *countingObserver) Update(folderIndex int, progress float64) {
	o.count.Add(1)
}

func TestFreezeSnapshotImmutability(t *testing.T) {
	t.Parallel()
	subject := NewProgressSubject()
	obs1 := &countingObserver{}
	subject.Register(obs1)

	callback := subject.Freeze(0)

	obs2 := &countingObserver{}
	subject.Register(obs2)

	callback(0.5)

	if obs1.count.Load() != 1 {
		t.Errorf("obs1 should have count 1, got %d", obs1.count.Load())
	}
	if obs2.count.Load() != 0 {
		t.Errorf("obs2 should have count 0, got %d", obs2.count.Load())
	}
}

func TestFreezeConcurrentRegister(t *testing.T) {
	t.Parallel()
	subject := NewProgressSubject()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			subject.Register(&countingObserver{})
		}()
		go func(idx int) {
			defer wg.Done()
			subject.Freeze(idx)(0.5)
		}(i)
	}
	wg.Wait()

	if got := subject.ObserverCount(); got != 50 {
		t.Errorf("ObserverCount() = %d, want 50", got)
	}
}

func TestNotifyAndUnregister(t *testing.T) {
	t.Parallel()
	subject := NewProgressSubject()
	a, b := &countingObserver{}, &countingObserver{}
	subject.Register(a)
	subject.Register(b)
	subject.Register(nil)

	subject.Notify(0, 0.3)
	subject.Unregister(a)
	subject.Notify(0, 0.6)

	if a.count.Load() != 1 {
		t.Errorf("a notified %d times, want 1", a.count.Load())
	}
	if b.count.Load() != 2 {
		t.Errorf("b notified %d times, want 2", b.count.Load())
	}
	if subject.ObserverCount() != 1 {
		t.Errorf("ObserverCount() = %d, want 1", subject.ObserverCount())
	}
}

func TestChannelObserver(t *testing.T) {
	t.Parallel()
	ch := make(chan ProgressUpdate, 1)
	obs := NewChannelObserver(ch)

	obs.Update(2, 1.5)
	// Full channel: dropped, must not block.
	obs.Update(2, 0.1)

	got := <-ch
	if got.FolderIndex != 2 || got.Value != 1.0 {
		t.Errorf("got %+v, want {2 1}", got)
	}

	NewChannelObserver(nil).Update(0, 0.5)
}

func TestLoggingObserverThrottles(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	obs := NewLoggingObserver(logger, 0.25)

	for _, p := range []float64{0, 0.1, 0.2, 0.3, 0.4, 0.6, 1.0} {
		obs.Update(0, p)
	}

	lines := strings.Count(buf.String(), "fold progress")
	// 0, 0.3, 0.6, 1.0
	if lines != 4 {
		t.Errorf("logged %d lines, want 4:\n%s", lines, buf.String())
	}
}

func TestNoOpObserver(t *testing.T) {
	t.Parallel()
	var o ProgressObserver = NewNoOpObserver()
	o.Update(0, 0.5)
}
