package arena_test

import (
	"testing"

	"myass/internal/arena"
)

func TestArena_AllocWithinChunk(t *testing.T) {
	a := arena.New()
	b1, err := a.Alloc(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b2, err := a.Alloc(64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(b1) != 64 || len(b2) != 64 {
		t.Fatalf("expected 64-byte allocations, got %d and %d", len(b1), len(b2))
	}

	// Writing into one allocation must not affect the other.
	b1[0] = 0xAA
	if b2[0] == 0xAA {
		t.Fatal("allocations overlap")
	}
}

func TestArena_GrowsBeyondInitialChunk(t *testing.T) {
	a := arena.New()
	big, err := a.Alloc(8192)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(big) != 8192 {
		t.Fatalf("expected 8192-byte allocation, got %d", len(big))
	}
	if a.Cap() < 8192 {
		t.Errorf("expected capacity to grow to fit allocation, got %d", a.Cap())
	}
}

func TestArena_ResetReusesMemory(t *testing.T) {
	a := arena.New()
	if _, err := a.Alloc(128); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Used() != 128 {
		t.Fatalf("expected 128 bytes used, got %d", a.Used())
	}

	capBefore := a.Cap()
	a.Reset()
	if a.Used() != 0 {
		t.Errorf("expected 0 bytes used after reset, got %d", a.Used())
	}
	if a.Cap() != capBefore {
		t.Errorf("expected capacity unchanged after reset, got %d, want %d", a.Cap(), capBefore)
	}
}

func TestArena_AllocRefusesPastCap(t *testing.T) {
	a := arena.NewWithCap(defaultChunkSizeForTest)

	if _, err := a.Alloc(64); err != nil {
		t.Fatalf("unexpected error within initial chunk: %v", err)
	}

	if _, err := a.Alloc(defaultChunkSizeForTest); err != arena.ErrOutOfMemory {
		t.Fatalf("expected ErrOutOfMemory once the cap would be exceeded, got %v", err)
	}
}

// defaultChunkSizeForTest matches the arena package's own initial region
// size, so a cap this small leaves no room for the doubled region a large
// second allocation would otherwise trigger.
const defaultChunkSizeForTest = 4096
