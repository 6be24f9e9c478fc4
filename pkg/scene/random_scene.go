package scene

import (
	"math/rand"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// NewRandomScene creates a field of small random spheres around three large ones.
// The layout depends only on seed.
func NewRandomScene(seed int64) *Scene {
	random := rand.New(rand.NewSource(seed))

	s := &Scene{
		Name:        "random",
		Description: "Hundreds of small random spheres around glass, diffuse and metal feature spheres",
		CameraConfig: renderer.CameraConfig{
			LookFrom:      core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20,
			AspectRatio:   1.5,
			Aperture:      0.1,
			FocusDistance: 10,
		},
		Background: integrator.DefaultBackground(),
		SamplingConfig: core.SamplingConfig{
			Width:           600,
			Height:          400,
			SamplesPerPixel: 100,
			MaxDepth:        core.DefaultMaxDepth,
		},
	}

	s.AddSphere(core.NewVec3(0, -1000, 0), 1000, Lambertian(core.NewVec3(0.5, 0.5, 0.5)))

	// Keep clear of the metal feature sphere
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := random.Float64()
			center := core.NewVec3(float64(a)+0.9*random.Float64(), 0.2, float64(b)+0.9*random.Float64())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.NewVec3(
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
					random.Float64()*random.Float64(),
				)
				s.AddSphere(center, 0.2, Lambertian(albedo))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
					0.5*(1+random.Float64()),
				)
				s.AddSphere(center, 0.2, Metal(albedo, 0.5*random.Float64()))
			default:
				s.AddSphere(center, 0.2, Dielectric(1.5))
			}
		}
	}

	s.AddSphere(core.NewVec3(0, 1, 0), 1.0, Dielectric(1.5))
	s.AddSphere(core.NewVec3(-4, 1, 0), 1.0, Lambertian(core.NewVec3(0.4, 0.2, 0.1)))
	s.AddSphere(core.NewVec3(4, 1, 0), 1.0, Metal(core.NewVec3(0.7, 0.6, 0.5), 0.0))

	return s
}
