package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewDefaultScene creates the four-sphere scene: ground, diffuse centre,
// metal on the right and a hollow glass bubble on the left
func NewDefaultScene() *Scene {
	s := &Scene{
		Name:        "default",
		Description: "Diffuse, metal and hollow glass spheres on a large ground sphere",
		CameraConfig: renderer.CameraConfig{
			LookFrom:      core.NewVec3(3, 3, 2),
			LookAt:        core.NewVec3(0, 0, -1),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20,
			AspectRatio:   2,
			Aperture:      0.1,
			FocusDistance: 0, // Auto-focus on the centre sphere
		},
		Background:     integrator.DefaultBackground(),
		SamplingConfig: core.DefaultSamplingConfig(),
	}

	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, Lambertian(core.NewVec3(0.8, 0.8, 0.0)))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, Lambertian(core.NewVec3(0.1, 0.2, 0.5)))
	s.AddSphere(core.NewVec3(1, 0, -1), 0.5, Metal(core.NewVec3(0.8, 0.6, 0.2), 0.3))

	// Hollow glass: the inner sphere's negative radius flips its normal inwards
	s.AddSphere(core.NewVec3(-1, 0, -1), 0.5, Dielectric(1.5))
	s.AddSphere(core.NewVec3(-1, 0, -1), -0.45, Dielectric(1.5))

	return s
}

// NewEmptyScene creates a scene with no spheres; every pixel shows the sky
func NewEmptyScene() *Scene {
	return &Scene{
		Name:           "empty",
		Description:    "Sky gradient only",
		CameraConfig:   renderer.DefaultCameraConfig(),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: core.DefaultSamplingConfig(),
	}
}

// NewNormalsScene creates the two-sphere scene used for surface normal previews
func NewNormalsScene() *Scene {
	s := &Scene{
		Name:           "normals",
		Description:    "A sphere resting on a ground sphere, suited to the normals integrator",
		CameraConfig:   renderer.DefaultCameraConfig(),
		Background:     integrator.DefaultBackground(),
		SamplingConfig: core.DefaultSamplingConfig(),
	}

	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, Lambertian(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, Lambertian(core.NewVec3(0.5, 0.5, 0.5)))

	return s
}
