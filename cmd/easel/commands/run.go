package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gioui.org/app"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/easel"
	"github.com/agiangrant/easel/demo"
	"github.com/agiangrant/easel/host"
	"github.com/agiangrant/easel/internal/logging"
	"github.com/agiangrant/easel/metrics"
	"github.com/agiangrant/easel/native"
)

// CPUClass is the element class of the CPU usage label.
const CPUClass = "easel-cpu"

// Run implements the 'easel run' command. It never returns on success: the
// window owns the main goroutine and the process exits when it closes.
func Run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	configPath := fs.String("config", ConfigFile, "Configuration file")
	demoName := fs.String("demo", "", "Demo to run (overrides the config file)")
	watch := fs.Bool("watch", false, "Apply canvas changes when the config file is saved")
	fs.Parse(args)

	config, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *demoName != "" {
		config.Demo.Name = *demoName
	}
	if err := config.Validate(); err != nil {
		return err
	}

	log, closer, err := logging.New(config.Log.Logging(), os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		err := runWindow(ctx, config, *configPath, *watch, log)
		stop()
		closer.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
	return nil
}

func runWindow(ctx context.Context, config ProjectConfig, configPath string, watch bool, log zerolog.Logger) error {
	d, _ := demo.Lookup(config.Demo.Name)
	win := native.New(native.Options{
		Title:  config.App.Title,
		Width:  config.Window.Width,
		Height: config.Window.Height,
		Canvas: config.Canvas.Size(),
		Log:    log,
	})

	id := uuid.NewString()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector, err := metrics.NewCollector(reg, id)
	if err != nil {
		return err
	}

	e, err := easel.New(win.System(), d.New(),
		easel.WithLogger(log),
		easel.WithObserver(collector),
		easel.WithID(id),
	)
	if err != nil {
		return err
	}
	defer e.Close()
	if config.Demo.Autoplay {
		e.Play()
	}

	cpu, err := win.NewText(CPUClass)
	if err != nil {
		return err
	}

	log.Info().
		Str("demo", d.Name).
		Str("easel_id", id).
		Str("platform", string(easel.CurrentPlatform())).
		Msg("starting")

	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return win.Run(ctx)
	})
	g.Go(func() error {
		return sampleCPU(ctx, time.Second, func(pct float64) {
			win.Post(func() { cpu.SetText(fmt.Sprintf("cpu %.1f%%", pct)) })
		})
	})
	if config.Metrics.Addr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, config.Metrics.Addr, reg, log)
		})
	}
	if watch {
		g.Go(func() error {
			return watchConfig(ctx, configPath, config, log, func(c Change) {
				win.Post(func() { c.Apply(e) })
			})
		})
	}
	return g.Wait()
}

// sampleCPU reports this process's CPU usage every interval until ctx is
// done.
func sampleCPU(ctx context.Context, interval time.Duration, report func(float64)) error {
	p, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		return fmt.Errorf("failed to open process: %w", err)
	}
	for {
		pct, err := p.PercentWithContext(ctx, interval)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to sample cpu: %w", err)
		}
		report(pct)
	}
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve metrics: %w", err)
	}
	return nil
}

// Change is what a config reload alters in a running easel.
type Change struct {
	Resize   bool
	Canvas   host.Size
	Autoplay *bool
}

// Empty reports whether the change does nothing.
func (c Change) Empty() bool {
	return !c.Resize && c.Autoplay == nil
}

// Apply performs the change. Call it on the window goroutine.
func (c Change) Apply(e *easel.Easel) {
	if c.Resize {
		e.ResizeSurface(c.Canvas)
	}
	if c.Autoplay != nil {
		if *c.Autoplay {
			e.Play()
		} else {
			e.Pause()
		}
	}
}

// Diff returns the live-applicable differences between two configs. Other
// settings need a restart.
func Diff(prev, next ProjectConfig) Change {
	var c Change
	if prev.Canvas != next.Canvas {
		c.Resize = true
		c.Canvas = next.Canvas.Size()
	}
	if prev.Demo.Autoplay != next.Demo.Autoplay {
		autoplay := next.Demo.Autoplay
		c.Autoplay = &autoplay
	}
	return c
}

// watchConfig reloads path whenever it is written and hands each non-empty
// change to apply. Invalid files are logged and skipped.
func watchConfig(ctx context.Context, path string, current ProjectConfig, log zerolog.Logger, apply func(Change)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	log.Info().Str("path", abs).Msg("watching config")

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("config watcher error")
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			next, err := LoadConfig(abs)
			if err == nil {
				err = next.Validate()
			}
			if err != nil {
				log.Warn().Err(err).Msg("ignoring invalid config")
				continue
			}
			change := Diff(current, next)
			current = next
			if change.Empty() {
				continue
			}
			log.Info().
				Bool("resize", change.Resize).
				Int("width", change.Canvas.Width).
				Int("height", change.Canvas.Height).
				Msg("config reloaded")
			apply(change)
		}
	}
}
