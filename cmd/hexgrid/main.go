// hexgrid builds a board from config and answers field-of-view, path and
// line queries, printing the results as ASCII maps.
//
// Usage:
//
//	go run ./cmd/hexgrid -fov 10,12
//	go run ./cmd/hexgrid -from 0,0 -to 40,30
//	go run ./cmd/hexgrid -from 3,3 -to 9,4 -los
//	go run ./cmd/hexgrid -fov 10,12 -metrics-addr :2112
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/hexgrid/internal/board"
	"github.com/udisondev/hexgrid/internal/config"
	"github.com/udisondev/hexgrid/internal/fov"
	"github.com/udisondev/hexgrid/internal/hex"
	"github.com/udisondev/hexgrid/internal/metrics"
	"github.com/udisondev/hexgrid/internal/path"
	"github.com/udisondev/hexgrid/internal/terrain"
)

const ConfigPath = "config/hexgrid.yaml"

type options struct {
	fov         string
	from, to    string
	los         bool
	metricsAddr string
}

func main() {
	var opts options
	flag.StringVar(&opts.fov, "fov", "", "field of view origin as x,y")
	flag.StringVar(&opts.from, "from", "", "path start as x,y")
	flag.StringVar(&opts.to, "to", "", "path goal as x,y")
	flag.BoolVar(&opts.los, "los", false, "print the hex line between -from and -to")
	flag.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address until interrupted")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, opts, os.Stdout); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfgPath := ConfigPath
	if p := os.Getenv("HEXGRID_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadHexgrid(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("hexgrid starting", "config", cfgPath, "log_level", cfg.LogLevel)

	m, err := loadMap(cfg)
	if err != nil {
		return err
	}

	fovCfg, err := cfg.FOVSettings()
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	boardOpts := []board.Option{
		board.WithMetrics(metrics.New(reg)),
		board.WithFOVConfig(fovCfg),
		board.WithPathConfig(cfg.PathSettings()),
		board.WithBlockedThreshold(cfg.Board.BlockedThreshold),
	}
	if coords := cfg.LandmarkCoords(); coords != nil {
		boardOpts = append(boardOpts, board.WithLandmarks(coords))
	}
	var ready chan board.LandmarkResult
	if cfg.Landmarks.Async {
		ready = make(chan board.LandmarkResult, 1)
		boardOpts = append(boardOpts,
			board.WithBackgroundLandmarks(),
			board.WithLandmarksReady(func(r board.LandmarkResult) {
				select {
				case ready <- r:
				default:
				}
			}))
	}
	b, err := board.New(m.MapSize(), m, boardOpts...)
	if err != nil {
		return fmt.Errorf("building board: %w", err)
	}
	if ready != nil {
		// Path queries below want the landmark heuristic.
		select {
		case res := <-ready:
			if res.Err != nil {
				return fmt.Errorf("building landmarks: %w", res.Err)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	q, err := parseQueries(opts)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	var mask *fov.Mask
	var route *path.DirectedPath
	if q.fov != nil {
		g.Go(func() error {
			var err error
			mask, err = b.GetFieldOfView(gctx, *q.fov, cfg.FOV.Radius, cfg.FOV.ObserverHeight, fovCfg.Mode)
			return err
		})
	}
	if q.from != nil && q.to != nil && !opts.los {
		g.Go(func() error {
			var ok bool
			route, ok = b.GetPath(*q.from, *q.to)
			if !ok {
				slog.Warn("no path", "from", q.from.User(), "to", q.to.User())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if mask != nil {
		fmt.Fprintf(out, "field of view from %v: %d hexes visible\n", q.fov.User(), mask.Count())
		fmt.Fprint(out, render(m, func(c hex.HexCoords) (byte, bool) {
			if c == *q.fov {
				return '@', true
			}
			return 0, !mask.IsVisible(c)
		}, ' '))
	}
	if route != nil {
		fmt.Fprintf(out, "path cost %d over %d hexes\n%v\n", route.TotalCost(), route.Len(), route)
		onPath := make(map[hex.HexCoords]bool, route.Len())
		for _, c := range route.Steps() {
			onPath[c] = true
		}
		fmt.Fprint(out, render(m, func(c hex.HexCoords) (byte, bool) { return '*', onPath[c] }, 0))
	}
	if opts.los && q.from != nil && q.to != nil {
		line := hex.Line(*q.from, *q.to).Collect()
		parts := make([]string, 0, len(line))
		for _, c := range line {
			parts = append(parts, c.User().String())
		}
		fmt.Fprintf(out, "line %v -> %v: %s\n", q.from.User(), q.to.User(), strings.Join(parts, " "))
	}

	if opts.metricsAddr != "" {
		return serveMetrics(ctx, opts.metricsAddr, reg)
	}
	return nil
}

func loadMap(cfg config.Hexgrid) (*terrain.Map, error) {
	if cfg.Board.MapFile != "" {
		f, err := os.Open(cfg.Board.MapFile)
		if err != nil {
			return nil, fmt.Errorf("opening map %s: %w", cfg.Board.MapFile, err)
		}
		defer f.Close()
		m, err := terrain.ReadASCII(f)
		if err != nil {
			return nil, fmt.Errorf("reading map %s: %w", cfg.Board.MapFile, err)
		}
		slog.Info("map loaded", "file", cfg.Board.MapFile, "width", m.MapSize().Width, "height", m.MapSize().Height)
		return m, nil
	}

	gen := terrain.DefaultGenConfig(cfg.MapSize())
	gen.Generator = terrain.Generator(cfg.Board.Generator)
	gen.Seed = cfg.Board.Seed
	m, err := terrain.Generate(gen)
	if err != nil {
		return nil, fmt.Errorf("generating map: %w", err)
	}
	slog.Info("map generated", "generator", gen.Generator, "seed", gen.Seed)
	return m, nil
}

type queries struct {
	fov, from, to *hex.HexCoords
}

func parseQueries(opts options) (queries, error) {
	var q queries
	for _, f := range []struct {
		name string
		raw  string
		dst  **hex.HexCoords
	}{
		{"fov", opts.fov, &q.fov},
		{"from", opts.from, &q.from},
		{"to", opts.to, &q.to},
	} {
		if f.raw == "" {
			continue
		}
		c, err := parseCoords(f.raw)
		if err != nil {
			return q, fmt.Errorf("-%s: %w", f.name, err)
		}
		*f.dst = &c
	}
	return q, nil
}

// parseCoords parses "x,y" user coordinates.
func parseCoords(s string) (hex.HexCoords, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return hex.HexCoords{}, fmt.Errorf("coordinates %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return hex.HexCoords{}, fmt.Errorf("coordinates %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return hex.HexCoords{}, fmt.Errorf("coordinates %q: %w", s, err)
	}
	return hex.NewUser(x, y), nil
}

// render draws the map, replacing a hex's symbol wherever mark says so. A
// zero replacement keeps the terrain symbol; hidden hexes use blank.
func render(m *terrain.Map, mark func(c hex.HexCoords) (byte, bool), blank byte) string {
	var sb strings.Builder
	size := m.MapSize()
	for y := range size.Height {
		for x := range size.Width {
			c := hex.NewUser(x, y)
			k, _ := m.Kind(c)
			sym := k.Props().Symbol
			if r, ok := mark(c); ok {
				switch {
				case r != 0:
					sym = r
				case blank != 0:
					sym = blank
				}
			}
			sb.WriteByte(sym)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
