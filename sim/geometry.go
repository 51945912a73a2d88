package sim

import (
	"math"
	"math/rand"
)

// Position is a point in the arena, measured from its center.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Norm returns the distance from the arena center.
func (p Position) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// DistanceTo returns the Euclidean distance between p and q.
func (p Position) DistanceTo(q Position) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// RandomPointInDisk draws a point uniformly over the area of a disk of the
// given radius centered on the origin. The distance is scaled by the square
// root of a uniform draw; a linear draw would crowd points near the center.
func RandomPointInDisk(rng *rand.Rand, radius float64) Position {
	angle := rng.Float64() * 2 * math.Pi
	dist := math.Sqrt(rng.Float64()) * radius
	return Position{X: dist * math.Cos(angle), Y: dist * math.Sin(angle)}
}
