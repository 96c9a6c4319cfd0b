package board

import (
	"context"
	"slices"
	"time"

	"github.com/udisondev/hexgrid/internal/landmark"
)

// LandmarkResult reports a finished landmark reset. On failure Landmarks is
// nil and the board keeps its previous collection.
type LandmarkResult struct {
	Landmarks *landmark.Collection
	Err       error
	Elapsed   time.Duration
}

// Landmarks returns the current collection, nil before the first
// successful reset.
func (b *Board) Landmarks() *landmark.Collection { return b.landmarks.Load() }

// OnLandmarksReady registers fn to be called after every reset, on the
// goroutine that ran it. fn may itself reset the landmarks.
func (b *Board) OnLandmarksReady(fn func(LandmarkResult)) {
	b.mu.Lock()
	b.listeners = append(b.listeners, fn)
	b.mu.Unlock()
}

// ResetLandmarks rebuilds the landmark collection and swaps it in. Failures,
// panics included, are returned in the result rather than raised.
func (b *Board) ResetLandmarks(ctx context.Context) LandmarkResult {
	res := b.rebuildLandmarks(ctx)

	b.mu.Lock()
	listeners := slices.Clone(b.listeners)
	b.mu.Unlock()
	for _, fn := range listeners {
		fn(res)
	}
	return res
}

// rebuildLandmarks builds and stores a new collection. Resets are serialized.
func (b *Board) rebuildLandmarks(ctx context.Context) LandmarkResult {
	b.resetMu.Lock()
	defer b.resetMu.Unlock()

	b.logger.Debug("landmark reset started", "landmarks", len(b.landmarkCoords))
	start := time.Now()
	coll, err := landmark.Build(ctx, b, b.landmarkCoords)
	res := LandmarkResult{Landmarks: coll, Err: err, Elapsed: time.Since(start)}
	b.metrics.ObserveLandmarkReset(res.Elapsed, err)

	if err != nil {
		b.logger.Warn("landmark reset failed", "error", err, "elapsed", res.Elapsed)
	} else {
		b.landmarks.Store(coll)
		b.logger.Info("landmarks ready", "landmarks", coll.Len(), "elapsed", res.Elapsed)
	}
	return res
}

// ResetLandmarksAsync runs ResetLandmarks on its own goroutine. The channel
// receives exactly one result.
func (b *Board) ResetLandmarksAsync(ctx context.Context) <-chan LandmarkResult {
	out := make(chan LandmarkResult, 1)
	go func() {
		out <- b.ResetLandmarks(ctx)
	}()
	return out
}
