package scene

import (
	"testing"

	"github.com/gogpu/tilecomp"
	"github.com/gogpu/tilecomp/internal/path"
)

// global returns the surface position of a tiled segment end point in 1/256
// pixel units.
func global(t *tiler, s tilecomp.TiledSegment, p tilecomp.Point) (int, int) {
	i := int(s.Tile - t.base)
	col := t.g.x0 + i%t.g.width()
	row := t.g.y0 + i/t.g.width()
	return col*tileFixed + p.X.Fixed(), row*tileFixed + p.Y.Fixed()
}

func TestTilerSharedEndpoints(t *testing.T) {
	tl := &tiler{g: grid{0, 0, 3, 2}}
	tl.edge(path.Point{X: 4, Y: 4}, path.Point{X: 40, Y: 28})

	if len(tl.out) < 3 {
		t.Fatalf("pieces = %d, want at least 3", len(tl.out))
	}
	for i := 1; i < len(tl.out); i++ {
		px, py := global(tl, tl.out[i-1], tl.out[i-1].To)
		qx, qy := global(tl, tl.out[i], tl.out[i].From)
		if px != qx || py != qy {
			t.Errorf("piece %d starts at (%d,%d), previous ends at (%d,%d)", i, qx, qy, px, py)
		}
	}
	fx, fy := global(tl, tl.out[0], tl.out[0].From)
	lx, ly := global(tl, tl.out[len(tl.out)-1], tl.out[len(tl.out)-1].To)
	if fx != 4*256 || fy != 4*256 || lx != 40*256 || ly != 28*256 {
		t.Errorf("ends = (%d,%d)-(%d,%d)", fx, fy, lx, ly)
	}
}

func TestTilerOwnership(t *testing.T) {
	tests := []struct {
		name     string
		g        grid
		a, b     path.Point
		wantTile tilecomp.TileIndex
		want     tilecomp.Segment
	}{
		{
			name:     "vertical boundary goes right",
			g:        grid{0, 0, 2, 1},
			a:        path.Point{X: 16, Y: 2},
			b:        path.Point{X: 16, Y: 10},
			wantTile: 1,
			want:     tilecomp.Seg(0, 2, 0, 10),
		},
		{
			name:     "horizontal boundary goes down",
			g:        grid{0, 0, 1, 2},
			a:        path.Point{X: 2, Y: 16},
			b:        path.Point{X: 10, Y: 16},
			wantTile: 1,
			want:     tilecomp.Seg(2, 0, 10, 0),
		},
		{
			name:     "left of layout projects",
			g:        grid{1, 0, 2, 1},
			a:        path.Point{X: 0, Y: 2},
			b:        path.Point{X: 8, Y: 10},
			wantTile: 0,
			want:     tilecomp.Seg(0, 2, 0, 10),
		},
		{
			name:     "clipped to rows",
			g:        grid{0, 0, 1, 1},
			a:        path.Point{X: 4, Y: -16},
			b:        path.Point{X: 4, Y: 32},
			wantTile: 0,
			want:     tilecomp.Seg(4, 0, 4, 16),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := &tiler{g: tt.g}
			tl.edge(tt.a, tt.b)
			if len(tl.out) != 1 {
				t.Fatalf("pieces = %d (%+v), want 1", len(tl.out), tl.out)
			}
			if got := tl.out[0]; got.Tile != tt.wantTile || got.Segment != tt.want {
				t.Errorf("got %+v in tile %d, want %+v in tile %d", got.Segment, got.Tile, tt.want, tt.wantTile)
			}
		})
	}
}

func TestTilerDrops(t *testing.T) {
	tests := []struct {
		name string
		a, b path.Point
	}{
		{"right of layout", path.Point{X: 20, Y: 2}, path.Point{X: 30, Y: 10}},
		{"above layout", path.Point{X: 2, Y: -10}, path.Point{X: 10, Y: -2}},
		{"below layout", path.Point{X: 2, Y: 20}, path.Point{X: 10, Y: 16}},
		{"degenerate", path.Point{X: 3, Y: 3}, path.Point{X: 3.0001, Y: 3}},
	}
	for _, tt := range tests {
		tl := &tiler{g: grid{0, 0, 1, 1}}
		tl.edge(tt.a, tt.b)
		if len(tl.out) != 0 {
			t.Errorf("%s: got %d pieces, want 0", tt.name, len(tl.out))
		}
	}
}

func TestTilerCorner(t *testing.T) {
	tl := &tiler{g: grid{0, 0, 2, 2}}
	tl.edge(path.Point{X: 8, Y: 8}, path.Point{X: 24, Y: 24})
	if len(tl.out) != 2 {
		t.Fatalf("pieces = %d, want 2", len(tl.out))
	}
	if tl.out[0].Tile != 0 || tl.out[1].Tile != 3 {
		t.Errorf("tiles = %d, %d, want 0, 3", tl.out[0].Tile, tl.out[1].Tile)
	}
	if tl.out[0].To != tilecomp.Pt(16, 16) || tl.out[1].From != tilecomp.Pt(0, 0) {
		t.Errorf("corner points = %+v, %+v", tl.out[0].To, tl.out[1].From)
	}
}

func TestGridFor(t *testing.T) {
	surface := grid{0, 0, 4, 4}
	c := [][]path.Point{{{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 40, Y: 100}}}
	if got, want := gridFor(c, surface), (grid{0, 0, 3, 4}); got != want {
		t.Errorf("gridFor = %+v, want %+v", got, want)
	}
	if !gridFor(nil, surface).empty() {
		t.Error("empty contours should give an empty grid")
	}
	far := [][]path.Point{{{X: 100, Y: 100}, {X: 120, Y: 100}, {X: 120, Y: 120}}}
	if !gridFor(far, surface).empty() {
		t.Error("path outside the surface should give an empty grid")
	}
}
