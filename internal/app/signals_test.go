package app

import (
	"context"
	"testing"
)

func TestWithSignalsStopCancels(t *testing.T) {
	t.Parallel()
	ctx, stop := withSignals(context.Background())
	if ctx.Err() != nil {
		t.Fatal("context canceled before stop")
	}
	stop()
	<-ctx.Done()
}
