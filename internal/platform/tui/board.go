package tui

import (
	"fmt"

	"github.com/vovakirdan/frogpond/internal/core"
	"github.com/vovakirdan/frogpond/internal/games/frogs"
	"github.com/vovakirdan/frogpond/internal/games/frogs/engine"
	"github.com/vovakirdan/frogpond/internal/games/frogs/level"
)

// Board layout constants
const (
	cellW      = 2 // Terminal columns per grid cell
	hudRows    = 2 // Title line and status line
	slotW      = 4 // "[07]"
	columnW    = 4 // Pool column width including the gap
	sectionGap = 1
)

// boardSize returns the screen area the session needs.
func boardSize(s *frogs.Session) (w, h int) {
	st := s.State
	ringW := st.Grid.Width*cellW + 2*cellW
	ringH := st.Grid.Height + 2

	slotsW := len("Slots ") + len(st.WaitingArea.Slots)*slotW
	poolW := len("Pool  ") + len(st.Pool.Columns)*columnW
	w = core.Max(ringW, core.Max(slotsW, poolW))
	w = core.Max(w, 48)

	visible := core.Max(st.Constraints.PoolVisibleCount, 1)
	h = hudRows + ringH + sectionGap + 1 + sectionGap + visible + 1
	return w, h
}

// drawSession renders the whole play area of s onto scr.
func drawSession(scr *core.Screen, s *frogs.Session, title, status string) {
	scr.Clear()

	w, h := boardSize(s)
	area := core.NewRect(0, 0, w, h).CenterIn(scr.Width(), scr.Height())
	if !area.Fits(scr.Width(), scr.Height()) {
		scr.DrawTextCentered(scr.Height()/2, fmt.Sprintf("Terminal too small: need %dx%d", w, h+2), core.ColorRed)
		return
	}

	drawHUD(scr, area, s, title, status)

	ringW := s.State.Grid.Width*cellW + 2*cellW
	ring := core.NewRect(area.X+(area.W-ringW)/2, area.Y+hudRows, ringW, s.State.Grid.Height+2)
	drawRing(scr, ring)
	drawPixels(scr, ring, s)
	drawPathFrogs(scr, ring, s)

	y := ring.Bottom() + sectionGap
	drawSlots(scr, area.X, y, s)
	drawPool(scr, area.X, y+1+sectionGap, s)
}

func drawHUD(scr *core.Screen, area core.Rect, s *frogs.Session, title, status string) {
	st := s.State

	scr.DrawText(area.X, area.Y, title, core.ColorCyan)

	stats := fmt.Sprintf("%5.1fs  pixels %d/%d  path %d/%d  deploys %d",
		st.ElapsedMs/1000,
		st.Grid.AliveCount(), s.Level.AliveCount(),
		len(st.Path.Entities), st.Path.Capacity,
		s.Deploys,
	)
	scr.DrawText(area.Right()-len(stats), area.Y, stats, core.ColorWhite)

	line, color := status, core.ColorGray
	switch {
	case st.Status == engine.StatusVictoryMode:
		line, color = fmt.Sprintf("VICTORY MODE x%g", st.Constraints.VictoryModeSpeedup), core.ColorGreen
	case s.Paused:
		line, color = "PAUSED", core.ColorYellow
	case s.LastBlocked != "" && status == "":
		line, color = s.LastBlocked, core.ColorRed
	}
	scr.DrawText(area.X, area.Y+1, line, color)
}

// drawRing draws the conveyor track around the grid.
func drawRing(scr *core.Screen, ring core.Rect) {
	scr.DrawBox(ring, core.ColorDim)
}

func drawPixels(scr *core.Screen, ring core.Rect, s *frogs.Session) {
	for r, row := range s.State.Grid.Resources {
		for c, res := range row {
			if !res.Alive {
				continue
			}
			cell := core.NewRect(ring.X+cellW+c*cellW, ring.Y+1+r, cellW, 1)
			scr.DrawRect(cell, core.Cell{Rune: '█', FG: typeColor(s.Level.Palette, res.Type)})
		}
	}
}

// drawPathFrogs draws each frog on the ring cell facing its segment.
func drawPathFrogs(scr *core.Screen, ring core.Rect, s *frogs.Session) {
	st := s.State
	for _, id := range st.Path.Entities {
		e := st.Entity(id)
		if e == nil || e.Position.Index < 0 || e.Position.Index >= len(st.Path.Segments) {
			continue
		}
		seg := st.Path.Segments[e.Position.Index]

		x, y := ring.X+cellW+seg.Pos.Col*cellW, ring.Y+1+seg.Pos.Row
		switch seg.Edge {
		case engine.EdgeBottom:
			y = ring.Bottom() - 1
		case engine.EdgeTop:
			y = ring.Y
		case engine.EdgeLeft:
			x = ring.X
		case engine.EdgeRight:
			x = ring.Right() - cellW
		}
		drawFrog(scr, x, y, e, s.Level.Palette)
	}
}

func drawSlots(scr *core.Screen, x, y int, s *frogs.Session) {
	st := s.State
	label := core.ColorGray
	if s.Focus == frogs.FocusWaiting {
		label = core.ColorYellow
	}
	scr.DrawText(x, y, "Slots ", label)

	x += len("Slots ")
	for i, id := range st.WaitingArea.Slots {
		bracket := core.ColorDim
		if s.Focus == frogs.FocusWaiting && i == s.SelectedSlot {
			bracket = core.ColorYellow
		}
		scr.DrawText(x, y, "[", bracket)
		if e := st.Entity(id); e != nil {
			drawFrog(scr, x+1, y, e, s.Level.Palette)
		} else {
			scr.DrawText(x+1, y, "  ", core.ColorDefault)
		}
		scr.DrawText(x+3, y, "]", bracket)
		x += slotW
	}
}

func drawPool(scr *core.Screen, x, y int, s *frogs.Session) {
	st := s.State
	label := core.ColorGray
	if s.Focus == frogs.FocusPool {
		label = core.ColorYellow
	}
	scr.DrawText(x, y, "Pool", label)

	visible := core.Max(st.Constraints.PoolVisibleCount, 1)
	x += len("Pool  ")
	for c, col := range st.Pool.Columns {
		cx := x + c*columnW
		for row := 0; row < visible && row < len(col.Entities); row++ {
			drawFrog(scr, cx+1, y+row, st.Entity(col.Entities[row]), s.Level.Palette)
		}
		if hidden := len(col.Entities) - visible; hidden > 0 {
			scr.DrawText(cx, y+visible, fmt.Sprintf("+%d", hidden), core.ColorGray)
		}
		if s.Focus == frogs.FocusPool && c == s.SelectedColumn {
			scr.DrawText(cx, y, "▶", core.ColorYellow)
		}
	}
}

// drawFrog draws a two-cell frog showing how much it can still eat.
func drawFrog(scr *core.Screen, x, y int, e *engine.Entity, p level.Palette) {
	if e == nil {
		return
	}
	bg := typeColor(p, e.ResourceType)
	fg := core.ColorBlack
	if bg.Luma() < 110 {
		fg = core.ColorWhite
	}
	scr.DrawStyledText(x, y, fmt.Sprintf("%2d", min(e.Remaining(), 99)), fg, bg)
}

// typeColor maps an engine resource type back to its palette colour.
func typeColor(p level.Palette, typ string) core.Color {
	entry, ok := p.Get(level.ColorID(typ))
	if !ok {
		return core.ColorGray
	}
	return core.RGB(entry.RGB[0], entry.RGB[1], entry.RGB[2])
}
