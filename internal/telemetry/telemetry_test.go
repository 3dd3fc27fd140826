package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracerRecordsSpans(t *testing.T) {
	saved := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(saved) })

	rec := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))

	_, span := Tracer("game").Start(context.Background(), "round.letters")
	span.SetAttributes(Attrs(1, "Letters", 60, "scored")...)
	span.End()

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(ended))
	}
	if got := ended[0].Name(); got != "round.letters" {
		t.Errorf("span name = %q, want round.letters", got)
	}
	if got := ended[0].InstrumentationScope().Name; got != "countdown/game" {
		t.Errorf("scope = %q, want countdown/game", got)
	}

	attrs := map[string]string{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs["round.points"] != "60" || attrs["round.verdict"] != "scored" {
		t.Errorf("attributes = %v", attrs)
	}
}

func TestDisable(t *testing.T) {
	saved := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(saved) })

	Disable()
	_, span := Tracer("game").Start(context.Background(), "game.start")
	defer span.End()
	if span.IsRecording() {
		t.Error("span is recording after Disable()")
	}
}
