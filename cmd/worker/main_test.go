package main

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

func TestBackoff(t *testing.T) {
	want := map[int]string{1: "1000", 2: "4000", 3: "16000"}
	for attempt, ms := range want {
		if got := backoff(attempt); got != ms {
			t.Fatalf("attempt %d: got %s want %s", attempt, got, ms)
		}
	}
}

func TestRetryCount(t *testing.T) {
	if n := retryCount(nil); n != 0 {
		t.Fatalf("expected 0 for missing header, got %d", n)
	}
	if n := retryCount(amqp.Table{"x-retry": int32(2)}); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	if n := retryCount(amqp.Table{"x-retry": int64(3)}); n != 3 {
		t.Fatalf("expected 3, got %d", n)
	}
}

func TestHandleContext_SurvivesShutdown(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())
	hctx, cancel := handleContext(parent)
	defer cancel()

	stop()
	if err := hctx.Err(); err != nil {
		t.Fatalf("handle context cancelled with parent: %v", err)
	}
	deadline, ok := hctx.Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if d := time.Until(deadline); d <= 0 || d > handleTimeout {
		t.Fatalf("unexpected deadline in %s", d)
	}

	cancel()
	if hctx.Err() == nil {
		t.Fatalf("expected cancel to end the handle context")
	}
}
