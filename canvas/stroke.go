package canvas

// Stroker turns pointer events into stamps. Between PointerDown and PointerUp
// consecutive samples are joined by interpolation; nothing is ever joined
// across a pen lift.
type Stroker struct {
	brush    *Brush
	color    Color
	size     int
	dragging bool
	prev     Point
}

func NewStroker(brush *Brush, color Color, size int) *Stroker {
	return &Stroker{brush: brush, color: color, size: size}
}

func (s *Stroker) SetColor(c Color) {
	s.color = c
}

func (s *Stroker) SetSize(size int) {
	s.size = size
}

func (s *Stroker) Color() Color {
	return s.color
}

func (s *Stroker) Size() int {
	return s.size
}

func (s *Stroker) Dragging() bool {
	return s.dragging
}

// PointerDown starts a stroke and stamps p directly.
func (s *Stroker) PointerDown(p Point) []Point {
	s.dragging = true
	s.prev = p
	s.brush.StampCircle(p, s.color, s.size)
	return []Point{p}
}

// Sample extends the current stroke to p. Outside a stroke it behaves like
// PointerDown. The returned points are every stamp center, in order; the
// previous sample was already stamped and is not repeated. Sampling the
// same point twice stamps nothing.
func (s *Stroker) Sample(p Point) []Point {
	if !s.dragging {
		return s.PointerDown(p)
	}
	if p == s.prev {
		return nil
	}
	points := s.brush.segment(s.prev, p)
	if len(points) > 1 {
		points = points[1:]
	}
	for _, c := range points {
		s.brush.StampCircle(c, s.color, s.size)
	}
	s.prev = p
	return points
}

func (s *Stroker) PointerUp() {
	s.dragging = false
}
