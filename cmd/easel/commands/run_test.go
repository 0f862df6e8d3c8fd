package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/easel"
	"github.com/agiangrant/easel/host"
	"github.com/agiangrant/easel/host/hosttest"
)

func TestDiff(t *testing.T) {
	prev := DefaultConfig()

	assert.True(t, Diff(prev, prev).Empty())

	next := prev
	next.Canvas = CanvasConfig{Width: 800, Height: 600}
	next.App.Title = "ignored"
	c := Diff(prev, next)
	assert.True(t, c.Resize)
	assert.Equal(t, host.Size{Width: 800, Height: 600}, c.Canvas)
	assert.Nil(t, c.Autoplay)

	next = prev
	next.Demo.Autoplay = !prev.Demo.Autoplay
	c = Diff(prev, next)
	require.NotNil(t, c.Autoplay)
	assert.Equal(t, next.Demo.Autoplay, *c.Autoplay)
	assert.False(t, c.Resize)
}

func TestChange_Apply(t *testing.T) {
	h := hosttest.New()
	e, err := easel.New(h.System(), func(easel.RenderContext) {})
	require.NoError(t, err)
	defer e.Close()

	play := true
	Change{Resize: true, Canvas: host.Size{Width: 10, Height: 20}, Autoplay: &play}.Apply(e)
	assert.False(t, e.IsPaused())
	assert.Equal(t, host.Size{Width: 10, Height: 20}, h.Elements.Surfaces[0].Size())

	play = false
	Change{Autoplay: &play}.Apply(e)
	assert.True(t, e.IsPaused())
}

func TestWatchConfig_AppliesCanvasChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	current := DefaultConfig()
	require.NoError(t, SaveConfig(path, current))

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan Change, 4)
	done := make(chan error, 1)
	go func() {
		done <- watchConfig(ctx, path, current, zerolog.Nop(), func(c Change) { changes <- c })
	}()

	next := current
	next.Canvas = CanvasConfig{Width: 512, Height: 256}
	// The watcher may not be registered yet, so keep writing until it reports.
	var got Change
	require.Eventually(t, func() bool {
		if err := SaveConfig(path, next); err != nil {
			return false
		}
		select {
		case got = <-changes:
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.True(t, got.Resize)
	assert.Equal(t, host.Size{Width: 512, Height: 256}, got.Canvas)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchConfig_SkipsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	current := DefaultConfig()
	require.NoError(t, SaveConfig(path, current))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan Change, 4)
	go watchConfig(ctx, path, current, zerolog.Nop(), func(c Change) { changes <- c })

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("[canvas]\nwidth = -5\n"), 0644))

	select {
	case c := <-changes:
		t.Fatalf("unexpected change %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestSampleCPU_StopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	samples := make(chan float64, 8)
	done := make(chan error, 1)
	go func() {
		done <- sampleCPU(ctx, 20*time.Millisecond, func(pct float64) {
			select {
			case samples <- pct:
			default:
			}
		})
	}()

	select {
	case pct := <-samples:
		assert.GreaterOrEqual(t, pct, 0.0)
	case <-time.After(5 * time.Second):
		t.Fatal("no cpu sample")
	}
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sampler did not stop")
	}
}
