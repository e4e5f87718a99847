package world

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/udisondev/cavern/internal/data"
	"github.com/udisondev/cavern/internal/model"
	"github.com/udisondev/cavern/internal/testutil"
)

// BenchmarkDriver_Step измеряет один tick стартовой комнаты, пока игрок бегает туда-обратно.
func BenchmarkDriver_Step(b *testing.B) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))
	EnableDebugLogging(false)

	ctx := context.Background()
	cfg := testutil.Config()
	cat, err := data.Load(ctx, "", CatalogOptions(cfg))
	if err != nil {
		b.Fatal(err)
	}
	s, _, err := NewState(ctx, cfg, cat, cat.Version())
	if err != nil {
		b.Fatal(err)
	}
	d := NewDriver(MotionParams(cfg))

	intents := []model.Intent{
		{Horizontal: 1},
		{Horizontal: 1, Jump: true},
		{Horizontal: -1},
		model.Idle,
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := range b.N {
		d.Step(ctx, s, intents[(i/30)%len(intents)])
	}
}

// BenchmarkContactType измеряет классификацию контакта stomp/hurt.
func BenchmarkContactType(b *testing.B) {
	prev := model.Box{X: 66, Y: 87.5, W: 12, H: 14}
	cur := prev.Translate(model.Vec{Y: 3.35})
	enemy := model.Box{X: 65, Y: 102, W: 14, H: 10}

	b.ResetTimer()
	for range b.N {
		_ = contactType(prev, cur, enemy)
	}
}
