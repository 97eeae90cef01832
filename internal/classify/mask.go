package classify

// Mask is a boolean grid marking which pixels of an image belong to a
// category. Masks are created by Classify with the same dimensions as the
// classified image.
type Mask struct {
	Width  int
	Height int
	bits   []bool
}

// NewMask creates an all-false mask of the given dimensions. Nonpositive
// dimensions yield an empty mask.
func NewMask(width, height int) *Mask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Mask{
		Width:  width,
		Height: height,
		bits:   make([]bool, width*height),
	}
}

// At reports whether the pixel at (x, y) is set. Out-of-bounds coordinates
// report false.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.bits[y*m.Width+x]
}

// Set marks the pixel at (x, y). Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.bits[y*m.Width+x] = true
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// Union returns the logical OR of the given masks. The operation is
// order-independent; it is the only supported way to combine category
// masks. All masks must share dimensions with the first; mismatched masks
// are skipped. Union of no masks returns an empty mask.
func Union(masks ...*Mask) *Mask {
	if len(masks) == 0 {
		return NewMask(0, 0)
	}
	out := NewMask(masks[0].Width, masks[0].Height)
	for _, m := range masks {
		if m == nil || m.Width != out.Width || m.Height != out.Height {
			continue
		}
		for i, b := range m.bits {
			if b {
				out.bits[i] = true
			}
		}
	}
	return out
}
