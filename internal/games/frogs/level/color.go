package level

import "fmt"

// AlphaThreshold is the alpha below which a source pixel counts as transparent.
const AlphaThreshold = 128

// TransparentID is the colour id of low-alpha pixels.
const TransparentID ColorID = "transparent"

// ColorID is the palette key of a colour, "r-g-b".
type ColorID string

// RGB is a colour triple. It marshals to JSON as [r, g, b].
type RGB [3]uint8

// Hex returns the colour as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// MakeColorID derives the palette key of an RGBA pixel.
func MakeColorID(r, g, b, a uint8) ColorID {
	if a < AlphaThreshold {
		return TransparentID
	}
	return ColorID(fmt.Sprintf("%d-%d-%d", r, g, b))
}

// ColorEntry is one palette colour.
type ColorEntry struct {
	ID  ColorID
	RGB RGB
	CSS string // "rgb(r, g, b)"
}

// Palette is an ordered, immutable set of colours. The order defines the
// colour index used by share codes.
type Palette struct {
	entries []ColorEntry
	index   map[ColorID]int
}

// NewPalette builds a palette from colours in order. Duplicates keep the
// position of their first occurrence.
func NewPalette(colors []RGB) Palette {
	p := Palette{
		entries: make([]ColorEntry, 0, len(colors)),
		index:   make(map[ColorID]int, len(colors)),
	}
	for _, c := range colors {
		id := MakeColorID(c[0], c[1], c[2], 255)
		entry := ColorEntry{
			ID:  id,
			RGB: c,
			CSS: fmt.Sprintf("rgb(%d, %d, %d)", c[0], c[1], c[2]),
		}
		if i, ok := p.index[id]; ok {
			p.entries[i] = entry
			continue
		}
		p.index[id] = len(p.entries)
		p.entries = append(p.entries, entry)
	}
	return p
}

// Len returns the number of colours.
func (p Palette) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the colours in order.
func (p Palette) Entries() []ColorEntry {
	return append([]ColorEntry(nil), p.entries...)
}

// At returns the colour at index i.
func (p Palette) At(i int) (ColorEntry, bool) {
	if i < 0 || i >= len(p.entries) {
		return ColorEntry{}, false
	}
	return p.entries[i], true
}

// Get returns the colour with the given id.
func (p Palette) Get(id ColorID) (ColorEntry, bool) {
	i, ok := p.index[id]
	if !ok {
		return ColorEntry{}, false
	}
	return p.entries[i], true
}

// IndexOf returns the position of id, or -1.
func (p Palette) IndexOf(id ColorID) int {
	if i, ok := p.index[id]; ok {
		return i
	}
	return -1
}

// RGBs returns the colour triples in order.
func (p Palette) RGBs() []RGB {
	out := make([]RGB, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.RGB
	}
	return out
}
