package material

import "github.com/df07/go-sphere-pathtracer/pkg/core"

// TestSampler provides predetermined values for testing.
// Once a dimension runs out it keeps repeating its last value.
type TestSampler struct {
	values1D []float64
	values3D []core.Vec3
	index1D  int
	index3D  int
}

// NewTestSampler creates a sampler with predetermined 1D and 3D values
func NewTestSampler(values1D []float64, values3D []core.Vec3) *TestSampler {
	return &TestSampler{values1D: values1D, values3D: values3D}
}

func (t *TestSampler) Get1D() float64 {
	if len(t.values1D) == 0 {
		panic("TestSampler has no 1D values")
	}
	val := t.values1D[min(t.index1D, len(t.values1D)-1)]
	t.index1D++
	return val
}

func (t *TestSampler) Get2D() core.Vec2 {
	return core.NewVec2(t.Get1D(), t.Get1D())
}

func (t *TestSampler) Get3D() core.Vec3 {
	if len(t.values3D) == 0 {
		panic("TestSampler has no 3D values")
	}
	val := t.values3D[min(t.index3D, len(t.values3D)-1)]
	t.index3D++
	return val
}
