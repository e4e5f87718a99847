package collision

import (
	"math"

	"github.com/udisondev/cavern/internal/model"
)

// UnstickResult is the outcome of repairing an embedded box.
type UnstickResult struct {
	Box model.Box
	// Moved is true when the box had to be repaired at all.
	Moved bool
	// Degraded is true when push-out failed and the box fell back to the
	// last known good position (or the nearest free cell around it).
	Degraded bool
}

// Unstick pushes an embedded box out of solid geometry along the axis of least
// penetration, one overlapping body per iteration. When no free position is found
// within the iteration budget the box is clamped to lastGood; if lastGood is itself
// embedded, the nearest free tile-aligned position around it is used.
func (r *Resolver) Unstick(box model.Box, lastGood model.Vec, obstacles []Obstacle) UnstickResult {
	if !r.Embedded(box, obstacles) {
		return UnstickResult{Box: box}
	}

	cur := box
	for range r.maxPushOut {
		blocker, ok := r.firstBlocker(cur, obstacles)
		if !ok {
			break
		}
		cur = cur.Translate(leastPenetration(cur, blocker))
		if !r.Embedded(cur, obstacles) {
			return UnstickResult{Box: cur, Moved: true}
		}
	}

	fallback := box.At(lastGood)
	if !r.Embedded(fallback, obstacles) {
		return UnstickResult{Box: fallback, Moved: true, Degraded: true}
	}
	if free, ok := r.nearestFree(fallback, obstacles); ok {
		return UnstickResult{Box: free, Moved: true, Degraded: true}
	}
	return UnstickResult{Box: fallback, Moved: true, Degraded: true}
}

// firstBlocker returns the box of the first solid cell or obstacle overlapping b.
func (r *Resolver) firstBlocker(b model.Box, obstacles []Obstacle) (model.Box, bool) {
	m := r.m
	ts := m.TileSize()
	left := int(math.Floor((b.X + epsilon) / ts))
	right := int(math.Floor((b.Right() - epsilon) / ts))
	top := int(math.Floor((b.Y + epsilon) / ts))
	bottom := int(math.Floor((b.Bottom() - epsilon) / ts))
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			c := model.Cell{X: x, Y: y}
			if m.IsSolidAt(c) {
				return m.CellBox(c), true
			}
		}
	}
	if o, ok := overlapsObstacle(b, obstacles); ok {
		return o.Box, true
	}
	return model.Box{}, false
}

// leastPenetration returns the shortest displacement separating b from blocker.
func leastPenetration(b, blocker model.Box) model.Vec {
	// Overlap depth per push direction.
	left := b.Right() - blocker.X
	right := blocker.Right() - b.X
	up := b.Bottom() - blocker.Y
	down := blocker.Bottom() - b.Y

	best := model.Vec{X: -left}
	bestLen := left
	if right < bestLen {
		best, bestLen = model.Vec{X: right}, right
	}
	if up < bestLen {
		best, bestLen = model.Vec{Y: -up}, up
	}
	if down < bestLen {
		best = model.Vec{Y: down}
	}
	return best
}

// nearestFree searches tile-sized rings around b for a position that is not embedded.
func (r *Resolver) nearestFree(b model.Box, obstacles []Obstacle) (model.Box, bool) {
	ts := r.m.TileSize()
	for radius := 1; radius <= r.maxPushOut; radius++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if max(abs(float64(dx)), abs(float64(dy))) != float64(radius) {
					continue
				}
				cand := b.Translate(model.Vec{X: float64(dx) * ts, Y: float64(dy) * ts})
				if !r.Embedded(cand, obstacles) {
					return cand, true
				}
			}
		}
	}
	return model.Box{}, false
}
