package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// sceneFile is the on-disk JSON layout of a scene
type sceneFile struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Camera      cameraFile     `json:"camera"`
	Image       imageFile      `json:"image"`
	Background  backgroundFile `json:"background"`
	Spheres     []sphereFile   `json:"spheres"`
}

type cameraFile struct {
	LookFrom      [3]float64 `json:"lookFrom"`
	LookAt        [3]float64 `json:"lookAt"`
	Up            [3]float64 `json:"up"`
	VFov          float64    `json:"vfov"`
	Aperture      float64    `json:"aperture"`
	FocusDistance float64    `json:"focusDistance"`
}

type imageFile struct {
	Width    int `json:"width"`
	Height   int `json:"height"`
	Samples  int `json:"samples"`
	MaxDepth int `json:"maxDepth"`
}

type backgroundFile struct {
	Top    [3]float64 `json:"top"`
	Bottom [3]float64 `json:"bottom"`
}

type sphereFile struct {
	Center   [3]float64   `json:"center"`
	Radius   float64      `json:"radius"`
	Material materialFile `json:"material"`
}

type materialFile struct {
	Type            string     `json:"type"`
	Albedo          [3]float64 `json:"albedo"`
	Fuzz            float64    `json:"fuzz,omitempty"`
	RefractiveIndex float64    `json:"refractiveIndex,omitempty"`
}

func toVec(a [3]float64) core.Vec3 { return core.NewVec3(a[0], a[1], a[2]) }

func fromVec(v core.Vec3) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

// LoadFile reads a JSON scene description.
// Omitted camera, image and background fields keep their defaults.
func LoadFile(path string) (*Scene, error) {
	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer reader.Close()

	data := make([]byte, reader.Len())
	if _, err := reader.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	s, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode parses a JSON scene description and validates it
func Decode(r io.Reader) (*Scene, error) {
	defaults := NewEmptyScene()
	file := toFile(defaults)
	file.Name = ""

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	s := &Scene{
		Name:        file.Name,
		Description: file.Description,
		CameraConfig: renderer.CameraConfig{
			LookFrom:      toVec(file.Camera.LookFrom),
			LookAt:        toVec(file.Camera.LookAt),
			Up:            toVec(file.Camera.Up),
			VFov:          file.Camera.VFov,
			Aperture:      file.Camera.Aperture,
			FocusDistance: file.Camera.FocusDistance,
		},
		Background: integrator.Background{
			Top:    toVec(file.Background.Top),
			Bottom: toVec(file.Background.Bottom),
		},
		SamplingConfig: core.SamplingConfig{
			Width:           file.Image.Width,
			Height:          file.Image.Height,
			SamplesPerPixel: file.Image.Samples,
			MaxDepth:        file.Image.MaxDepth,
		},
	}
	s.CameraConfig.AspectRatio = s.SamplingConfig.AspectRatio()

	for _, sphere := range file.Spheres {
		s.AddSphere(toVec(sphere.Center), sphere.Radius, MaterialSpec{
			Type:            sphere.Material.Type,
			Albedo:          toVec(sphere.Material.Albedo),
			Fuzz:            sphere.Material.Fuzz,
			RefractiveIndex: sphere.Material.RefractiveIndex,
		})
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Encode writes the scene as indented JSON readable by Decode
func Encode(w io.Writer, s *Scene) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toFile(s))
}

// WriteFile saves the scene as JSON
func WriteFile(path string, s *Scene) error {
	var buf bytes.Buffer
	if err := Encode(&buf, s); err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func toFile(s *Scene) sceneFile {
	file := sceneFile{
		Name:        s.Name,
		Description: s.Description,
		Camera: cameraFile{
			LookFrom:      fromVec(s.CameraConfig.LookFrom),
			LookAt:        fromVec(s.CameraConfig.LookAt),
			Up:            fromVec(s.CameraConfig.Up),
			VFov:          s.CameraConfig.VFov,
			Aperture:      s.CameraConfig.Aperture,
			FocusDistance: s.CameraConfig.FocusDistance,
		},
		Image: imageFile{
			Width:    s.SamplingConfig.Width,
			Height:   s.SamplingConfig.Height,
			Samples:  s.SamplingConfig.SamplesPerPixel,
			MaxDepth: s.SamplingConfig.MaxDepth,
		},
		Background: backgroundFile{
			Top:    fromVec(s.Background.Top),
			Bottom: fromVec(s.Background.Bottom),
		},
		Spheres: make([]sphereFile, 0, len(s.Spheres)),
	}

	for _, sphere := range s.Spheres {
		file.Spheres = append(file.Spheres, sphereFile{
			Center: fromVec(sphere.Center),
			Radius: sphere.Radius,
			Material: materialFile{
				Type:            sphere.Material.Type,
				Albedo:          fromVec(sphere.Material.Albedo),
				Fuzz:            sphere.Material.Fuzz,
				RefractiveIndex: sphere.Material.RefractiveIndex,
			},
		})
	}
	return file
}
