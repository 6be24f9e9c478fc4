package renderer

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"runtime"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// DefaultTileSize is the edge length of a render tile in pixels
const DefaultTileSize = 32

// Raytracer renders a world through a camera into a quantized frame
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	config     core.SamplingConfig

	workers    int
	tileSize   int
	seed       int64
	logger     *slog.Logger
	progress   func(done, total int)
	newSampler func(tileID int) core.Sampler
}

// Option configures a Raytracer
type Option func(*Raytracer)

// WithWorkers limits the number of tiles rendered concurrently. Values <= 0 use all CPUs.
func WithWorkers(workers int) Option {
	return func(rt *Raytracer) {
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		rt.workers = workers
	}
}

// WithTileSize sets the tile edge length in pixels
func WithTileSize(tileSize int) Option {
	return func(rt *Raytracer) {
		if tileSize > 0 {
			rt.tileSize = tileSize
		}
	}
}

// WithSeed sets the base seed of the per-tile samplers
func WithSeed(seed int64) Option {
	return func(rt *Raytracer) { rt.seed = seed }
}

// WithLogger sets the logger used for render progress
func WithLogger(logger *slog.Logger) Option {
	return func(rt *Raytracer) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// WithProgress registers a callback invoked after each finished tile.
// Calls are serialized.
func WithProgress(fn func(done, total int)) Option {
	return func(rt *Raytracer) { rt.progress = fn }
}

// WithSamplerFactory replaces the seeded per-tile samplers
func WithSamplerFactory(fn func(tileID int) core.Sampler) Option {
	return func(rt *Raytracer) { rt.newSampler = fn }
}

// NewRaytracer creates a new raytracer
func NewRaytracer(world geometry.Shape, camera *Camera, integ integrator.Integrator, config core.SamplingConfig, opts ...Option) *Raytracer {
	rt := &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integ,
		config:     core.DefaultSamplingConfig().Merge(config),
		workers:    runtime.NumCPU(),
		tileSize:   DefaultTileSize,
		seed:       42, // Deterministic unless overridden
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.newSampler == nil {
		seed := rt.seed
		rt.newSampler = func(tileID int) core.Sampler {
			return core.NewSeededSampler(seed + int64(tileID))
		}
	}
	return rt
}

// Config returns the effective sampling configuration
func (rt *Raytracer) Config() core.SamplingConfig {
	return rt.config
}

// RenderPixel averages SamplesPerPixel jittered camera samples for pixel (i, j).
// j counts rows from the bottom of the image.
func (rt *Raytracer) RenderPixel(i, j int, sampler core.Sampler) core.Vec3 {
	width := float64(rt.config.Width)
	height := float64(rt.config.Height)

	colorAccum := core.Vec3{}
	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		u := (float64(i) + sampler.Get1D()) / width
		v := (float64(j) + sampler.Get1D()) / height

		ray := rt.camera.GetRay(u, v, sampler)
		colorAccum = colorAccum.Add(rt.integrator.RayColor(ray, rt.world, sampler))
	}

	return colorAccum.Divide(float64(rt.config.SamplesPerPixel))
}

// Render renders the full image.
// The output does not depend on the worker count: every tile owns its sampler.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, fmt.Errorf("invalid sampling config: %w", err)
	}

	start := time.Now()
	frame := NewFrame(rt.config.Width, rt.config.Height)
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.tileSize, rt.newSampler)

	rt.logger.Debug("render started",
		"width", rt.config.Width,
		"height", rt.config.Height,
		"samples", rt.config.SamplesPerPixel,
		"maxDepth", rt.config.MaxDepth,
		"tiles", len(tiles),
		"workers", rt.workers,
		"cameraOrigin", rt.camera.Origin(),
		"cameraForward", rt.camera.GetCameraForward(),
		"lensRadius", rt.camera.LensRadius())

	stats, err := rt.renderTiles(ctx, tiles, frame)
	stats.SamplesPerPixel = rt.config.SamplesPerPixel
	stats.Tiles = len(tiles)
	stats.Workers = rt.workers
	stats.Duration = time.Since(start)
	if err != nil {
		return nil, stats, fmt.Errorf("render aborted after %d of %d pixels: %w",
			stats.TotalPixels, rt.config.Width*rt.config.Height, err)
	}

	rt.logger.Info("render complete",
		"pixels", stats.TotalPixels,
		"samples", stats.TotalSamples,
		"duration", stats.Duration.Round(time.Millisecond),
		"avgLuminance", fmt.Sprintf("%.3f", CalculateAverageLuminance(frame.Image())))

	return frame, stats, nil
}

// ToRGB converts a linear color to an 8-bit pixel.
// Channels are clamped to [0,1] (NaN becomes 0) and gamma corrected with a square root.
func ToRGB(c core.Vec3) color.RGBA {
	// min and max propagate NaN, so it is cleared before clamping
	c = core.NewVec3(zeroNaN(c.X), zeroNaN(c.Y), zeroNaN(c.Z))
	g := c.Clamp(0, 1).Sqrt()
	return color.RGBA{
		R: uint8(int(255.999 * g.X)),
		G: uint8(int(255.999 * g.Y)),
		B: uint8(int(255.999 * g.Z)),
		A: 255,
	}
}

func zeroNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
