package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	scene      string
	width      int
	height     int
	samples    int
	depth      int
	workers    int
	seed       int64
	out        string
	aperture   float64
	integrator string
	dump       bool
	verbose    bool
	help       bool
}

func parseFlags(args []string, stderr io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.scene, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Parallel tile workers (0 = all CPUs)")
	fs.Int64Var(&opts.seed, "seed", 42, "Random seed for sampling and generated scenes")
	fs.StringVar(&opts.out, "out", "", "Output file (.png, .jpg, .tiff, .bmp, .ppm) or - for PPM on stdout")
	fs.Float64Var(&opts.aperture, "aperture", -1, "Lens aperture override (-1 = scene default, 0 = pinhole)")
	fs.StringVar(&opts.integrator, "integrator", "path", "Integrator: 'path' or 'normals'")
	fs.BoolVar(&opts.dump, "dump", false, "Write the scene as JSON to stdout instead of rendering")
	fs.BoolVar(&opts.verbose, "v", false, "Verbose (debug) logging")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return nil, fs, err
	}
	return opts, fs, nil
}

func printHelp(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Sphere Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(w, "  <file>.json - scene description file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.png unless -out is given")
}

// createScene resolves the scene and applies the command line overrides
func createScene(opts *options) (*scene.Scene, error) {
	s, err := scene.Create(opts.scene, opts.seed)
	if err != nil {
		return nil, err
	}

	s = s.WithSampling(core.SamplingConfig{
		Width:           opts.width,
		Height:          opts.height,
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
	})
	if opts.aperture >= 0 {
		s.CameraConfig.Aperture = opts.aperture
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func createIntegrator(name string, s *scene.Scene) (integrator.Integrator, error) {
	switch name {
	case "path":
		return integrator.NewPathTracingIntegrator(s.SamplingConfig.MaxDepth, s.Background), nil
	case "normals":
		return integrator.NewNormalIntegrator(s.Background), nil
	default:
		return nil, fmt.Errorf("unknown integrator %q", name)
	}
}

// outputPath returns the file to write, defaulting to a timestamped PNG per scene
func outputPath(opts *options, now time.Time) string {
	if opts.out != "" {
		return opts.out
	}
	sceneName := strings.TrimSuffix(filepath.Base(opts.scene), filepath.Ext(opts.scene))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if opts.help {
		printHelp(stdout, fs)
		return nil
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	s, err := createScene(opts)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	if opts.dump {
		return scene.Encode(stdout, s)
	}

	world, err := s.Build()
	if err != nil {
		return fmt.Errorf("failed to build scene: %w", err)
	}
	integ, err := createIntegrator(opts.integrator, s)
	if err != nil {
		return err
	}

	config := s.SamplingConfig
	logger.Info("rendering",
		"scene", opts.scene,
		"spheres", len(s.Spheres),
		"width", config.Width,
		"height", config.Height,
		"samples", config.SamplesPerPixel,
		"depth", config.MaxDepth,
		"integrator", opts.integrator)

	rt := renderer.NewRaytracer(world, s.Camera(), integ, config,
		renderer.WithWorkers(opts.workers),
		renderer.WithSeed(opts.seed),
		renderer.WithLogger(logger),
		renderer.WithProgress(func(done, total int) {
			logger.Debug("tile finished", "done", done, "total", total)
		}),
	)

	frame, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}
	logger.Info("render completed",
		"elapsed", stats.Duration.Round(time.Millisecond),
		"workers", stats.Workers,
		"tiles", stats.Tiles)

	if opts.out == "-" {
		return imageio.WritePPM(stdout, frame)
	}

	filename := outputPath(opts, time.Now())
	if err := imageio.Save(filename, frame); err != nil {
		return fmt.Errorf("failed to save render: %w", err)
	}
	logger.Info("render saved", "path", filename)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
