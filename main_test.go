package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"random scene", "random", false},
		{"empty scene", "empty", false},
		{"normals scene", "normals", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"invalid JSON path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _, err := parseFlags([]string{"-scene", tt.sceneType}, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags() error: %v", err)
			}
			s, err := createScene(opts)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
				t.Errorf("Scene sampling size should be positive, got %dx%d", s.SamplingConfig.Width, s.SamplingConfig.Height)
			}
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	opts, _, err := parseFlags([]string{"-width", "64", "-height", "32", "-samples", "3", "-depth", "7", "-aperture", "0"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error: %v", err)
	}

	s, err := createScene(opts)
	if err != nil {
		t.Fatalf("createScene() error: %v", err)
	}

	config := s.SamplingConfig
	if config.Width != 64 || config.Height != 32 || config.SamplesPerPixel != 3 || config.MaxDepth != 7 {
		t.Errorf("Overrides not applied: %+v", config)
	}
	if s.CameraConfig.Aperture != 0 {
		t.Errorf("Expected pinhole aperture, got %f", s.CameraConfig.Aperture)
	}
}

func TestCreateScene_UnknownSentinel(t *testing.T) {
	opts, _, _ := parseFlags([]string{"-scene", "cornell"}, io.Discard)
	if _, err := createScene(opts); !errors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"Default scene", nil, filepath.Join("output", "default", "render_20240309_140506.png")},
		{"JSON scene uses file name", []string{"-scene", "scenes/three-balls.json"}, filepath.Join("output", "three-balls", "render_20240309_140506.png")},
		{"Explicit output", []string{"-out", "out.tiff"}, "out.tiff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _, err := parseFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseFlags() error: %v", err)
			}
			if got := outputPath(opts, now); got != tt.expected {
				t.Errorf("outputPath() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRun_PPMToStdout(t *testing.T) {
	var stdout bytes.Buffer
	args := []string{"-scene", "default", "-width", "8", "-height", "4", "-samples", "1", "-depth", "3", "-out", "-"}

	if err := run(context.Background(), args, &stdout, io.Discard); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	if lines[0] != "P3" || lines[1] != "8 4" || lines[2] != "255" {
		t.Errorf("Unexpected PPM header: %q", lines[:3])
	}
	if len(lines) != 3+8*4 {
		t.Errorf("Expected %d lines, got %d", 3+8*4, len(lines))
	}
}

func TestRun_SavesFile(t *testing.T) {
	for _, ext := range []string{"png", "bmp"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "render."+ext)
			args := []string{"-scene", "normals", "-integrator", "normals", "-width", "8", "-height", "4", "-samples", "1", "-out", path}

			if err := run(context.Background(), args, io.Discard, io.Discard); err != nil {
				t.Fatalf("run() error: %v", err)
			}

			img, err := imageio.Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 4 {
				t.Errorf("Expected 8x4 image, got %v", img.Bounds())
			}
		})
	}
}

func TestRun_Dump(t *testing.T) {
	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-scene", "default", "-dump"}, &stdout, io.Discard); err != nil {
		t.Fatalf("run() error: %v", err)
	}

	s, err := scene.Decode(&stdout)
	if err != nil {
		t.Fatalf("Dumped scene does not decode: %v", err)
	}
	if len(s.Spheres) != len(scene.NewDefaultScene().Spheres) {
		t.Errorf("Expected %d spheres, got %d", len(scene.NewDefaultScene().Spheres), len(s.Spheres))
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Unknown scene", []string{"-scene", "nonexistent"}},
		{"Unknown integrator", []string{"-integrator", "bdpt", "-width", "4", "-height", "4"}},
		{"Unsupported output", []string{"-width", "4", "-height", "4", "-samples", "1", "-out", filepath.Join(os.TempDir(), "render.webp")}},
		{"Bad flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.args, io.Discard, io.Discard); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestRun_Help(t *testing.T) {
	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-help"}, &stdout, io.Discard); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	for _, want := range []string{"-scene", "random", "output/<scene>"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("Help output missing %q", want)
		}
	}
}
