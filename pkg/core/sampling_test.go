package core

import (
	"math/rand"
	"testing"
)

func TestRandomInUnitSphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitSphere(sampler)
		if p.LengthSquared() >= 1.0 {
			t.Fatalf("Sample %d outside unit sphere: %v (|p|²=%f)", i, p, p.LengthSquared())
		}
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(7)))

	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample %d should lie in z=0 plane, got %v", i, p)
		}
		if p.X*p.X+p.Y*p.Y >= 1.0 {
			t.Fatalf("Disk sample %d outside unit disk: %v", i, p)
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)

	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Samplers with equal seeds diverged at draw %d", i)
		}
	}
}

func TestSampler_Range(t *testing.T) {
	sampler := NewSeededSampler(1)

	for i := 0; i < 1000; i++ {
		v := sampler.Get3D()
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0 || c >= 1 {
				t.Fatalf("Sample component %f outside [0,1)", c)
			}
		}
	}
}

func TestSamplingConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    SamplingConfig
		expectErr bool
	}{
		{"Default", DefaultSamplingConfig(), false},
		{"Zero width", SamplingConfig{Width: 0, Height: 10, SamplesPerPixel: 1, MaxDepth: 1}, true},
		{"Zero samples", SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 0, MaxDepth: 1}, true},
		{"Zero depth", SamplingConfig{Width: 10, Height: 10, SamplesPerPixel: 1, MaxDepth: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error, got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSamplingConfig_Merge(t *testing.T) {
	base := DefaultSamplingConfig()
	merged := base.Merge(SamplingConfig{SamplesPerPixel: 7})

	if merged.SamplesPerPixel != 7 {
		t.Errorf("Expected samples 7, got %d", merged.SamplesPerPixel)
	}
	if merged.Width != base.Width || merged.MaxDepth != base.MaxDepth {
		t.Errorf("Unset fields should keep base values, got %+v", merged)
	}
}
