package scene

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

func TestLoadFile_RoundTrip(t *testing.T) {
	builtins := map[string]*Scene{
		"default": NewDefaultScene(),
		"random":  NewRandomScene(3),
		"empty":   NewEmptyScene(),
	}

	for name, original := range builtins {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name+".json")
			if err := WriteFile(path, original); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}

			loaded, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error: %v", err)
			}
			if !reflect.DeepEqual(loaded, original) {
				t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", loaded, original)
			}
		})
	}
}

func TestDecode_Defaults(t *testing.T) {
	input := `{
		"name": "one ball",
		"spheres": [
			{"center": [0, 0, -1], "radius": 0.5, "material": {"type": "metal", "albedo": [0.8, 0.8, 0.8], "fuzz": 0.2}}
		]
	}`

	s, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if s.SamplingConfig != core.DefaultSamplingConfig() {
		t.Errorf("Expected default sampling, got %+v", s.SamplingConfig)
	}
	if s.Background != integrator.DefaultBackground() {
		t.Errorf("Expected default background, got %+v", s.Background)
	}
	if len(s.Spheres) != 1 || s.Spheres[0].Material != Metal(core.NewVec3(0.8, 0.8, 0.8), 0.2) {
		t.Errorf("Unexpected spheres: %+v", s.Spheres)
	}
}

func TestDecode_PartialCameraAndImage(t *testing.T) {
	input := `{
		"camera": {"lookFrom": [0, 1, 3], "vfov": 40},
		"image": {"width": 300, "height": 100, "samples": 8}
	}`

	s, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	if !s.CameraConfig.LookFrom.Equals(core.NewVec3(0, 1, 3)) || s.CameraConfig.VFov != 40 {
		t.Errorf("Camera overrides not applied: %+v", s.CameraConfig)
	}
	if !s.CameraConfig.LookAt.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected default look at, got %v", s.CameraConfig.LookAt)
	}
	if s.CameraConfig.AspectRatio != 3 {
		t.Errorf("Aspect ratio should follow image size, got %f", s.CameraConfig.AspectRatio)
	}
	if s.SamplingConfig.SamplesPerPixel != 8 || s.SamplingConfig.MaxDepth != core.DefaultMaxDepth {
		t.Errorf("Unexpected sampling config: %+v", s.SamplingConfig)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Malformed JSON", `{"spheres": [`},
		{"Unknown field", `{"lights": []}`},
		{"Unknown material", `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"type": "emissive"}}]}`},
		{"Zero radius", `{"spheres": [{"center": [0,0,0], "radius": 0, "material": {"type": "lambertian"}}]}`},
		{"Non-positive refractive index", `{"spheres": [{"center": [0,0,0], "radius": 1, "material": {"type": "dielectric", "refractiveIndex": 0}}]}`},
		{"Degenerate camera", `{"camera": {"lookFrom": [0,0,-1], "lookAt": [0,0,-1]}}`},
		{"Negative samples", `{"image": {"samples": -1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if !errors.Is(err, ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if errors.Is(err, ErrInvalidScene) {
		t.Errorf("Missing file should not be reported as an invalid scene: %v", err)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := LoadFile(path); !errors.Is(err, ErrInvalidScene) {
		t.Errorf("Expected ErrInvalidScene for empty file, got %v", err)
	}
}
