package integrator

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// NormalIntegrator shades the first hit by its surface normal, mapping each
// component from [-1,1] to [0,1]. Misses show the sky. No random draws are made.
type NormalIntegrator struct {
	Background Background
}

// NewNormalIntegrator creates a normal-shading integrator
func NewNormalIntegrator(bg Background) *NormalIntegrator {
	return &NormalIntegrator{Background: bg}
}

// RayColor returns 0.5*(N+1) at the closest hit
func (ni *NormalIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler) core.Vec3 {
	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return ni.Background.Sky(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
