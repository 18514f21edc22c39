package canvas

import "math"

const (
	// DefaultAngleStep is the angular sweep, in radians, used when stamping
	// circles. Smaller steps give rounder dots at a higher cost.
	DefaultAngleStep = 0.1

	// maxInterpolationPoints bounds the work done for a single segment when a
	// client sends two samples very far apart.
	maxInterpolationPoints = 4096
)

// Brush stamps dots and segments onto a Target.
type Brush struct {
	target Target

	// AngleStep is the polar sweep increment used by StampCircle.
	AngleStep float64

	// Spacing is the distance, in pixels, between two stamps along an
	// interpolated segment.
	Spacing float64
}

func NewBrush(target Target, spacing float64) *Brush {
	return &Brush{
		target:    target,
		AngleStep: DefaultAngleStep,
		Spacing:   spacing,
	}
}

// StampCircle approximates a filled disk by sweeping every integer radius in
// [0, radius) around the center. Cells may be written more than once. A radius
// of zero or less writes the center cell only.
func (b *Brush) StampCircle(center Point, c Color, radius int) {
	if radius <= 0 {
		x, y := center.Cell()
		b.target.Set(x, y, c)
		return
	}

	step := b.AngleStep
	if step <= 0 {
		step = DefaultAngleStep
	}

	for r := 0; r < radius; r++ {
		fr := float64(r)
		for i := 0; ; i++ {
			angle := float64(i) * step
			if angle >= 2*math.Pi {
				break
			}
			x := int(math.Floor(center.X + fr*math.Cos(angle)))
			y := int(math.Floor(center.Y + fr*math.Sin(angle)))
			b.target.Set(x, y, c)
		}
	}
}

// Interpolate stamps along the segment start -> end, both ends included, and
// returns every stamped center in order. Identical endpoints produce a single
// stamp.
func (b *Brush) Interpolate(start, end Point, c Color, width int) []Point {
	points := b.segment(start, end)
	for _, p := range points {
		b.StampCircle(p, c, width)
	}
	return points
}

// segment lists the stamp centers of start -> end without painting them.
func (b *Brush) segment(start, end Point) []Point {
	d := start.Dist(end)
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return []Point{start}
	}

	spacing := b.Spacing
	if spacing <= 0 {
		spacing = 1
	}
	inc := max(spacing/d, 1.0/maxInterpolationPoints)

	points := make([]Point, 0, int(1/inc)+2)
	for i := 0; ; i++ {
		t := float64(i) * inc
		if t > 1 {
			break
		}
		points = append(points, start.Lerp(end, t))
	}
	if points[len(points)-1] != end {
		points = append(points, end)
	}
	return points
}
