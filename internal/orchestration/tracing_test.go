package orchestration

import (
	"context"
	"errors"
	"io"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/agbru/rnafold/internal/nussinov"
)

// installRecorder routes the global provider into a span recorder for the
// duration of the test. Callers must not run in parallel.
func installRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})
	return sr
}

func attrValue(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestExecuteFoldsRecordsSpans(t *testing.T) {
	sr := installRecorder(t)

	boom := errors.New("boom")
	folders := []nussinov.Folder{
		stubFolder{name: "traced-ok", res: mustResult(t, "GGGAAACCC")},
		stubFolder{name: "traced-fail", err: boom},
	}
	ExecuteFolds(context.Background(), folders, nussinov.NewSequence("GGGAAACCC"), nussinov.DefaultOptions(), NullProgressReporter{}, io.Discard)

	var parent sdktrace.ReadOnlySpan
	folds := map[string]sdktrace.ReadOnlySpan{}
	for _, s := range sr.Ended() {
		switch s.Name() {
		case "ExecuteFolds":
			if v, ok := attrValue(s.Attributes(), "rnafold.strategies"); ok && v.AsInt64() == 2 {
				parent = s
			}
		case "Fold":
			if v, ok := attrValue(s.Attributes(), "rnafold.strategy"); ok {
				folds[v.AsString()] = s
			}
		}
	}
	if parent == nil {
		t.Fatal("no ExecuteFolds span recorded")
	}
	if v, _ := attrValue(parent.Attributes(), "rnafold.sequence_length"); v.AsInt64() != 9 {
		t.Errorf("sequence_length = %d, want 9", v.AsInt64())
	}

	ok, fail := folds["traced-ok"], folds["traced-fail"]
	if ok == nil || fail == nil {
		t.Fatalf("missing Fold spans: %v", folds)
	}
	for name, s := range map[string]sdktrace.ReadOnlySpan{"traced-ok": ok, "traced-fail": fail} {
		if s.Parent().SpanID() != parent.SpanContext().SpanID() {
			t.Errorf("%s span is not a child of ExecuteFolds", name)
		}
	}

	if v, found := attrValue(ok.Attributes(), "rnafold.score"); !found || v.AsInt64() != 3 {
		t.Errorf("rnafold.score = %v (found %v), want 3", v.AsInt64(), found)
	}
	if ok.Status().Code == codes.Error {
		t.Error("successful fold marked as error")
	}

	if fail.Status().Code != codes.Error || fail.Status().Description != "boom" {
		t.Errorf("failed fold status = %+v", fail.Status())
	}
	if _, found := attrValue(fail.Attributes(), "rnafold.score"); found {
		t.Error("failed fold carries a score")
	}
	if len(fail.Events()) == 0 || fail.Events()[0].Name != "exception" {
		t.Errorf("failed fold did not record the error: %+v", fail.Events())
	}
}

func TestExecuteFoldsSpanWithoutResult(t *testing.T) {
	sr := installRecorder(t)

	results := ExecuteFolds(context.Background(), []nussinov.Folder{stubFolder{name: "traced-empty"}},
		nussinov.NewSequence("AU"), nussinov.DefaultOptions(), NullProgressReporter{}, io.Discard)
	if len(results) != 1 || results[0].Result != nil {
		t.Fatalf("results = %+v", results)
	}
	for _, s := range sr.Ended() {
		if v, ok := attrValue(s.Attributes(), "rnafold.strategy"); ok && v.AsString() == "traced-empty" {
			if _, found := attrValue(s.Attributes(), "rnafold.score"); found {
				t.Error("span without a result carries a score")
			}
			return
		}
	}
	t.Fatal("no Fold span for traced-empty")
}
