package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestLambertian_AlwaysScattersWithAlbedo(t *testing.T) {
	albedo := core.NewVec3(0.1, 0.2, 0.5)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := HitRecord{
		T:      1,
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for i := 0; i < 200; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatalf("Lambertian should always scatter (iteration %d)", i)
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Fatalf("Scattered ray should start at hit point, got %v", scatter.Scattered.Origin)
		}
	}
}

func TestLambertian_ScatterWithinUnitSphereAroundNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(3)))

	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Point: core.NewVec3(2, 0, 0), Normal: normal}
	ray := core.NewRay(core.NewVec3(2, 1, 0), core.NewVec3(0, -1, 0))

	for i := 0; i < 200; i++ {
		scatter, _ := lambertian.Scatter(ray, hit, sampler)
		// target - P - N must be the unit-sphere sample
		offset := scatter.Scattered.Direction.Subtract(normal)
		if offset.LengthSquared() >= 1.0 {
			t.Fatalf("Scatter direction %v is not N plus a unit-sphere point", scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_ScriptedSample(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	// 3D sample (0.75, 0.5, 0.5) maps to unit-sphere point (0.5, 0, 0)
	sampler := NewTestSampler(nil, []core.Vec3{core.NewVec3(0.75, 0.5, 0.5)})

	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0)}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	scatter, _ := lambertian.Scatter(ray, hit, sampler)
	expected := core.NewVec3(0.5, 1, 0)
	if scatter.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected direction %v, got %v", expected, scatter.Scattered.Direction)
	}
}
