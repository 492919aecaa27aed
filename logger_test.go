package tilecomp

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/tilecomp/filter"
	"github.com/gogpu/tilecomp/texture"
)

func TestNopHandler(t *testing.T) {
	h := nopHandler{}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if h.Enabled(context.Background(), level) {
			t.Errorf("nopHandler.Enabled(%v) = true, want false", level)
		}
	}
	if err := h.Handle(context.Background(), slog.Record{}); err != nil {
		t.Errorf("nopHandler.Handle() = %v, want nil", err)
	}
	if _, ok := h.WithAttrs([]slog.Attr{slog.String("k", "v")}).(nopHandler); !ok {
		t.Error("WithAttrs did not return nopHandler")
	}
	if _, ok := h.WithGroup("g").(nopHandler); !ok {
		t.Error("WithGroup did not return nopHandler")
	}
}

func TestLoggerDefaultSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLoggerNilRestoresSilent(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	SetLogger(slog.Default())
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should produce a disabled logger")
	}
}

func TestRenderLogsStatistics(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	e := NewEngine(WithWorkers(2))
	defer e.Close()

	batch := rectBatch(2, 2, 10, 10, red)
	if err := e.Render(context.Background(), batch, NewSurface(16, 16)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"tilecomp: render", "fills=", "tiles_written=1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("concurrent read")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func TestRenderWarnsGammaTextWithoutTable(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	const warning = "gamma-corrected text without gamma table"
	tests := []struct {
		name  string
		opts  []EngineOption
		gamma bool
		warn  bool
	}{
		{"no table", nil, true, true},
		{"with table", []EngineOption{WithGammaLUT(filter.NewGammaLUT(2.2))}, true, false},
		{"uncorrected text", nil, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

			batch := rectBatch(2, 2, 10, 10, red)
			batch.Draws[0].Control = NewControl(NonZero, filter.KindText, CombineSrcIn, BlendNormal)
			batch.Metadata[0].Filter = filter.Filter{
				Kind: filter.KindText,
				Text: filter.Text{
					Kernel:       [4]float32{1},
					Fg:           texture.Color{A: 1},
					Bg:           texture.Color{R: 1, G: 1, B: 1, A: 1},
					GammaCorrect: tt.gamma,
				},
			}
			batch.Atlas = texture.NewAlpha(16, 16)

			e := NewEngine(tt.opts...)
			defer e.Close()
			if err := e.Render(context.Background(), batch, NewSurface(16, 16)); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got := strings.Contains(buf.String(), warning); got != tt.warn {
				t.Errorf("log %q: warning present = %v, want %v", buf.String(), got, tt.warn)
			}
		})
	}
}
