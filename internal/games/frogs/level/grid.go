package level

import "fmt"

// Pixel is one grid cell.
type Pixel struct {
	ColorID ColorID
	Alive   bool
}

// Grid is a row-major pixel matrix, Pixels[row][col].
type Grid struct {
	Width  int
	Height int
	Pixels [][]Pixel
}

// NewGrid wraps rows of pixels, rejecting empty or ragged input.
func NewGrid(rows [][]Pixel) (Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Grid{}, ErrNoPixels
	}
	w := len(rows[0])
	pixels := make([][]Pixel, len(rows))
	for r, row := range rows {
		if len(row) != w {
			return Grid{}, fmt.Errorf("row %d has %d pixels, want %d", r, len(row), w)
		}
		pixels[r] = append([]Pixel(nil), row...)
	}
	return Grid{Width: w, Height: len(rows), Pixels: pixels}, nil
}

// AliveCount returns the number of alive pixels.
func (g Grid) AliveCount() int {
	n := 0
	for _, row := range g.Pixels {
		for _, p := range row {
			if p.Alive {
				n++
			}
		}
	}
	return n
}

// CountByColor counts alive pixels per colour.
func (g Grid) CountByColor() map[ColorID]int {
	counts := make(map[ColorID]int)
	for _, row := range g.Pixels {
		for _, p := range row {
			if p.Alive {
				counts[p.ColorID]++
			}
		}
	}
	return counts
}

// Clone returns a deep copy.
func (g Grid) Clone() Grid {
	pixels := make([][]Pixel, len(g.Pixels))
	for r, row := range g.Pixels {
		pixels[r] = append([]Pixel(nil), row...)
	}
	return Grid{Width: g.Width, Height: g.Height, Pixels: pixels}
}
