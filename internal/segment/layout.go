package segment

// Layout distributes totalWidth cells between the items. A non-positive width
// lays items out at their intrinsic size.
func (s *Strip) Layout(totalWidth float64) {
	n := len(s.items)
	s.totalWidth = totalWidth
	s.widths = make([]float64, n)
	s.lefts = make([]float64, n)
	if n == 0 {
		return
	}

	spacing := s.style.Spacing
	available := totalWidth - spacing*float64(n-1)

	intrinsic := make([]float64, n)
	sum := 0.0
	for i, it := range s.items {
		intrinsic[i] = it.intrinsicWidth()
		sum += intrinsic[i]
	}

	switch {
	case totalWidth <= 0 || available <= 0:
		copy(s.widths, intrinsic)
	case s.fill == FillEqual:
		w := available / float64(n)
		for i := range s.widths {
			s.widths[i] = w
		}
	default:
		for i := range s.widths {
			s.widths[i] = available * intrinsic[i] / sum
		}
	}

	x := 0.0
	for i, w := range s.widths {
		s.lefts[i] = x
		x += w + spacing
	}
}

// ItemWidth returns the laid out width of item i.
func (s *Strip) ItemWidth(i int) float64 {
	if i < 0 || i >= len(s.widths) {
		return 0
	}
	return s.widths[i]
}

// ItemLeft returns the left edge of item i.
func (s *Strip) ItemLeft(i int) float64 {
	if i < 0 || i >= len(s.lefts) {
		return 0
	}
	return s.lefts[i]
}

// ItemCenter returns the horizontal center of item i.
func (s *Strip) ItemCenter(i int) float64 {
	return s.ItemLeft(i) + s.ItemWidth(i)/2
}

// Spacing returns the gap between adjacent items.
func (s *Strip) Spacing() float64 { return s.style.Spacing }

// HitTest maps a column to the item under it, or -1 for gaps and margins.
func (s *Strip) HitTest(x float64) int {
	for i := range s.widths {
		if x >= s.lefts[i] && x < s.lefts[i]+s.widths[i] {
			return i
		}
	}
	return -1
}

// Indicator resolves relative indicator geometry into an absolute left edge
// and width.
func (s *Strip) Indicator(g IndicatorGeometry) (left, width float64) {
	if len(s.items) == 0 {
		return 0, 0
	}
	width = s.ItemWidth(g.WidthAnchor) + g.WidthDelta
	if width < 0 {
		width = 0
	}
	center := s.ItemCenter(g.CenterAnchor) + g.TranslationX
	return center - width/2, width
}
