package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestGateSpacesCalls(t *testing.T) {
	g := NewGate(40 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := g.Wait(ctx); err != nil {
			t.Fatalf("Wait error: %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < 70*time.Millisecond {
		t.Fatalf("3 calls took %v, want at least 2 intervals", elapsed)
	}
}

func TestGateDisabled(t *testing.T) {
	g := NewGate(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := g.Wait(context.Background()); err != nil {
			t.Fatalf("Wait error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("disabled gate took %v", elapsed)
	}
}

func TestGateHonoursContext(t *testing.T) {
	g := NewGate(time.Hour)
	_ = g.Wait(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := g.Wait(ctx); err == nil {
		t.Fatal("Wait should fail when the context ends first")
	}
}
