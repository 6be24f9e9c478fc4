package material

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// Material interface for objects that can scatter rays.
// Implementations are Lambertian, Metal and Dielectric.
type Material interface {
	// Scatter returns the attenuated continuation ray, or false when the ray is absorbed
	Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool)
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Attenuation core.Vec3 // Fraction of light kept per channel
	Scattered   core.Ray  // The scattered ray
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T        float64   // Parameter t along the ray
	Point    core.Vec3 // Point of intersection, equal to ray.At(T)
	Normal   core.Vec3 // Unit normal, (Point - Center) / Radius for spheres
	Material Material  // Material of the hit object
}
