package geometry

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// World is an ordered collection of shapes searched linearly for the closest hit
type World struct {
	shapes []Shape
}

// NewWorld creates a world holding the given shapes
func NewWorld(shapes ...Shape) *World {
	return &World{shapes: append([]Shape(nil), shapes...)}
}

// Add appends a shape to the world
func (w *World) Add(shape Shape) {
	w.shapes = append(w.shapes, shape)
}

// Len returns the number of shapes in the world
func (w *World) Len() int {
	return len(w.shapes)
}

// Hit returns the closest intersection over all shapes.
// Each hit shrinks the search interval, so on exact ties the first shape wins.
func (w *World) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := tMax

	for _, shape := range w.shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
