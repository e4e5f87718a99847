package collision

import "github.com/udisondev/cavern/internal/model"

const epsilon = 1e-6

// Obstacle is a solid non-tile body (a breakable object) that actors collide with.
type Obstacle struct {
	ID  model.ObjectID
	Box model.Box
}

// sweepObstaclesX returns the nearest obstacle blocking a horizontal sweep.
func sweepObstaclesX(box model.Box, dx float64, obstacles []Obstacle) (float64, int, bool) {
	best, idx := dx, -1
	for i, o := range obstacles {
		if !(box.Y < o.Box.Bottom()-epsilon && o.Box.Y < box.Bottom()-epsilon) {
			continue
		}
		switch {
		case dx > 0:
			if o.Box.X >= box.Right()-epsilon && o.Box.X < box.Right()+dx {
				gap := max(o.Box.X-box.Right(), 0)
				if gap < best {
					best, idx = gap, i
				}
			}
		case dx < 0:
			if o.Box.Right() <= box.X+epsilon && o.Box.Right() > box.X+dx {
				gap := min(o.Box.Right()-box.X, 0)
				if gap > best {
					best, idx = gap, i
				}
			}
		}
	}
	return best, idx, idx >= 0
}

// sweepObstaclesY returns the nearest obstacle blocking a vertical sweep.
func sweepObstaclesY(box model.Box, dy float64, obstacles []Obstacle) (float64, int, bool) {
	best, idx := dy, -1
	for i, o := range obstacles {
		if !(box.X < o.Box.Right()-epsilon && o.Box.X < box.Right()-epsilon) {
			continue
		}
		switch {
		case dy > 0:
			if o.Box.Y >= box.Bottom()-epsilon && o.Box.Y < box.Bottom()+dy {
				gap := max(o.Box.Y-box.Bottom(), 0)
				if gap < best {
					best, idx = gap, i
				}
			}
		case dy < 0:
			if o.Box.Bottom() <= box.Y+epsilon && o.Box.Bottom() > box.Y+dy {
				gap := min(o.Box.Bottom()-box.Y, 0)
				if gap > best {
					best, idx = gap, i
				}
			}
		}
	}
	return best, idx, idx >= 0
}

// obstacleSupport returns the obstacle the box rests flush on, if any.
func obstacleSupport(box model.Box, obstacles []Obstacle) (Obstacle, bool) {
	for _, o := range obstacles {
		if !(box.X < o.Box.Right()-epsilon && o.Box.X < box.Right()-epsilon) {
			continue
		}
		d := o.Box.Y - box.Bottom()
		if d >= -1e-3 && d <= 1e-3 {
			return o, true
		}
	}
	return Obstacle{}, false
}

// overlapsObstacle reports whether the box overlaps any obstacle.
func overlapsObstacle(box model.Box, obstacles []Obstacle) (Obstacle, bool) {
	for _, o := range obstacles {
		if box.X < o.Box.Right()-epsilon && o.Box.X < box.Right()-epsilon &&
			box.Y < o.Box.Bottom()-epsilon && o.Box.Y < box.Bottom()-epsilon {
			return o, true
		}
	}
	return Obstacle{}, false
}
