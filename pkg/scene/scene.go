package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned when a scene name matches no built-in scene or file
	ErrUnknownScene = errors.New("unknown scene")
	// ErrInvalidScene is returned when a scene description cannot be rendered
	ErrInvalidScene = errors.New("invalid scene")
)

// Material type names used in scene descriptions
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// MaterialSpec describes a surface material
type MaterialSpec struct {
	Type            string    // One of the Material* names
	Albedo          core.Vec3 // Lambertian and metal
	Fuzz            float64   // Metal only
	RefractiveIndex float64   // Dielectric only
}

// Lambertian describes a diffuse material
func Lambertian(albedo core.Vec3) MaterialSpec {
	return MaterialSpec{Type: MaterialLambertian, Albedo: albedo}
}

// Metal describes a reflective material
func Metal(albedo core.Vec3, fuzz float64) MaterialSpec {
	return MaterialSpec{Type: MaterialMetal, Albedo: albedo, Fuzz: fuzz}
}

// Dielectric describes a clear refractive material
func Dielectric(refractiveIndex float64) MaterialSpec {
	return MaterialSpec{Type: MaterialDielectric, RefractiveIndex: refractiveIndex}
}

// Validate rejects material parameters the scatter functions cannot use
func (m MaterialSpec) Validate() error {
	switch m.Type {
	case MaterialLambertian, MaterialMetal:
		if !m.Albedo.IsFinite() {
			return fmt.Errorf("%s albedo %v is not finite", m.Type, m.Albedo)
		}
	case MaterialDielectric:
		if m.RefractiveIndex <= 0 {
			return fmt.Errorf("dielectric refractive index must be positive, got %f", m.RefractiveIndex)
		}
	default:
		return fmt.Errorf("unknown material type %q", m.Type)
	}
	return nil
}

// Build creates the material
func (m MaterialSpec) Build() (material.Material, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	switch m.Type {
	case MaterialMetal:
		return material.NewMetal(m.Albedo, m.Fuzz), nil
	case MaterialDielectric:
		return material.NewDielectric(m.RefractiveIndex), nil
	default:
		return material.NewLambertian(m.Albedo), nil
	}
}

// SphereSpec describes one sphere. A negative radius turns the normal inwards.
type SphereSpec struct {
	Center   core.Vec3
	Radius   float64
	Material MaterialSpec
}

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Description    string
	CameraConfig   renderer.CameraConfig
	Spheres        []SphereSpec
	Background     integrator.Background
	SamplingConfig core.SamplingConfig
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat MaterialSpec) {
	s.Spheres = append(s.Spheres, SphereSpec{Center: center, Radius: radius, Material: mat})
}

// Validate checks the camera, sampling and every sphere.
// All errors wrap ErrInvalidScene.
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	for i, sphere := range s.Spheres {
		if sphere.Radius == 0 || !sphere.Center.IsFinite() {
			return fmt.Errorf("%w: sphere %d has center %v and radius %f", ErrInvalidScene, i, sphere.Center, sphere.Radius)
		}
		if err := sphere.Material.Validate(); err != nil {
			return fmt.Errorf("%w: sphere %d: %w", ErrInvalidScene, i, err)
		}
	}
	return nil
}

// Build validates the scene and creates the world to render
func (s *Scene) Build() (*geometry.World, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	world := geometry.NewWorld()
	for _, sphere := range s.Spheres {
		mat, err := sphere.Material.Build()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
		}
		world.Add(geometry.NewSphere(sphere.Center, sphere.Radius, mat))
	}
	return world, nil
}

// Camera creates the camera, matching its aspect ratio to the image
func (s *Scene) Camera() *renderer.Camera {
	config := s.CameraConfig
	config.AspectRatio = s.SamplingConfig.AspectRatio()
	return renderer.NewCamera(config)
}

// WithSampling returns a copy of the scene with the positive fields of override applied.
// The camera aspect ratio follows the new image size.
func (s *Scene) WithSampling(override core.SamplingConfig) *Scene {
	out := *s
	out.Spheres = append([]SphereSpec(nil), s.Spheres...)
	out.SamplingConfig = s.SamplingConfig.Merge(override)
	out.CameraConfig.AspectRatio = out.SamplingConfig.AspectRatio()
	return &out
}
