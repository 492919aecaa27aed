package tilecomp

import (
	"errors"
	"sync"
	"testing"
)

func TestRenderPassPushWalk(t *testing.T) {
	p := NewRenderPass(2, 8)
	segs := []Segment{Seg(1, 0, 1, 4), Seg(2, 0, 2, 4), Seg(3, 0, 3, 4)}
	for _, s := range segs {
		if _, err := p.Push(1, s); err != nil {
			t.Fatalf("Push: %v", err)
		}
	}

	var got []Segment
	if err := p.Walk(1, func(s Segment) { got = append(got, s) }); err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(got) != len(segs) {
		t.Fatalf("walked %d fills, want %d", len(got), len(segs))
	}
	// Lists are LIFO when pushed from one goroutine.
	for i := range segs {
		if got[i] != segs[len(segs)-1-i] {
			t.Errorf("fill %d = %v, want %v", i, got[i], segs[len(segs)-1-i])
		}
	}

	if p.Head(0) != NoFill {
		t.Errorf("untouched tile head = %d, want NoFill", p.Head(0))
	}
	if p.Len() != 3 || len(p.Fills()) != 3 {
		t.Errorf("Len() = %d, len(Fills()) = %d, want 3", p.Len(), len(p.Fills()))
	}
	heads := p.Heads()
	if heads[0] != NoFill || heads[1] != 2 {
		t.Errorf("Heads() = %v", heads)
	}
}

func TestRenderPassPushErrors(t *testing.T) {
	p := NewRenderPass(2, 1)
	if _, err := p.Push(2, Seg(0, 0, 0, 1)); !errors.Is(err, ErrTileOutOfRange) {
		t.Errorf("Push(2) error = %v, want ErrTileOutOfRange", err)
	}
	if _, err := p.Push(NoTile, Seg(0, 0, 0, 1)); !errors.Is(err, ErrTileOutOfRange) {
		t.Errorf("Push(NoTile) error = %v, want ErrTileOutOfRange", err)
	}
	if _, err := p.Push(0, Seg(0, 0, 0, 1)); err != nil {
		t.Fatalf("first Push: %v", err)
	}
	if _, err := p.Push(0, Seg(0, 0, 0, 1)); !errors.Is(err, ErrArenaFull) {
		t.Errorf("second Push error = %v, want ErrArenaFull", err)
	}
	if p.Len() != 1 {
		t.Errorf("Len() after overflow = %d, want 1", p.Len())
	}
}

func TestRenderPassFillCycle(t *testing.T) {
	p := NewRenderPass(1, 4)
	for range 2 {
		if _, err := p.Push(0, Seg(0, 0, 0, 1)); err != nil {
			t.Fatal(err)
		}
	}
	p.fills[0].Next = 1

	n := 0
	err := p.Walk(0, func(Segment) { n++ })
	if !errors.Is(err, ErrFillCycle) {
		t.Fatalf("Walk error = %v, want ErrFillCycle", err)
	}
	if n > 2 {
		t.Errorf("Walk visited %d fills before failing, want at most 2", n)
	}

	p.heads[0].Store(3)
	if err := p.Walk(0, func(Segment) {}); !errors.Is(err, ErrFillCycle) {
		t.Errorf("Walk with head past count = %v, want ErrFillCycle", err)
	}
}

func TestRenderPassReset(t *testing.T) {
	p := NewRenderPass(2, 2)
	if _, err := p.Push(0, Seg(0, 0, 1, 1)); err != nil {
		t.Fatal(err)
	}
	p.Reset(4, 8, []MaskLayout{{Base: 0, Width: 2, Height: 2}})

	if p.Tiles() != 4 || p.Capacity() != 8 || p.Len() != 0 {
		t.Fatalf("after Reset: tiles %d capacity %d len %d", p.Tiles(), p.Capacity(), p.Len())
	}
	for i := range TileIndex(4) {
		if p.Head(i) != NoFill {
			t.Errorf("Head(%d) = %d after Reset", i, p.Head(i))
		}
	}
	wantRight := []TileIndex{1, NoTile, 3, NoTile}
	for i, want := range wantRight {
		if p.right[i] != want {
			t.Errorf("right[%d] = %d, want %d", i, p.right[i], want)
		}
	}
}

func TestRenderPassConcurrentPush(t *testing.T) {
	const (
		goroutines = 8
		perG       = 500
		tiles      = 4
	)
	p := NewRenderPass(tiles, goroutines*perG)

	var wg sync.WaitGroup
	for g := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perG {
				tile := TileIndex((g + i) % tiles)
				if _, err := p.Push(tile, Seg(float32(g), 0, float32(g), 1)); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	seen := make(map[FillIndex]bool)
	total := 0
	for tile := range TileIndex(tiles) {
		idx := p.Head(tile)
		for idx != NoFill {
			if seen[idx] {
				t.Fatalf("fill %d reachable twice", idx)
			}
			seen[idx] = true
			idx = p.fills[idx].Next
		}
		if err := p.Walk(tile, func(Segment) { total++ }); err != nil {
			t.Fatalf("Walk(%d): %v", tile, err)
		}
	}
	if total != goroutines*perG {
		t.Errorf("walked %d fills, want %d", total, goroutines*perG)
	}
}
