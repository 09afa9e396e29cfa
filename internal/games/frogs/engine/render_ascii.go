package engine

import (
	"fmt"
	"sort"
	"strings"
)

// TypeSymbols assigns a letter to every resource type in the state, in sorted
// type order: A, B, C... Types beyond Z share '?'.
func TypeSymbols(s *GameState) map[string]rune {
	seen := make(map[string]bool)
	for _, row := range s.Grid.Resources {
		for _, r := range row {
			seen[r.Type] = true
		}
	}
	for _, e := range s.Entities {
		seen[e.ResourceType] = true
	}

	types := make([]string, 0, len(seen))
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)

	symbols := make(map[string]rune, len(types))
	for i, t := range types {
		if i < 26 {
			symbols[t] = rune('A' + i)
		} else {
			symbols[t] = '?'
		}
	}
	return symbols
}

// RenderASCII creates an ASCII representation of the current game state.
// This is used for debugging, tests and the simulate trace.
//
// Format:
//   - Alive resources are upper-case letters, dead ones '.'
//   - Frogs on the path are lower-case letters on the border ring
//   - Pool columns, waiting slots and a legend are listed below
func RenderASCII(s *GameState) string {
	var sb strings.Builder
	symbols := TypeSymbols(s)

	w, h := s.Grid.Width, s.Grid.Height
	displayW, displayH := w+2, h+2

	// Border cell for each path index: one step outside the grid, against the facing.
	onBorder := make(map[GridPos]rune)
	for _, id := range s.Path.Entities {
		e := s.mustEntity(id)
		seg := segmentAt(s.Path.Segments, e.Position.Index)
		if seg == nil {
			continue
		}
		dr, dc := seg.Facing.Delta()
		outside := seg.Pos.Add(-dr, -dc)
		if _, taken := onBorder[outside]; !taken {
			onBorder[outside] = lower(symbols[e.ResourceType])
		}
	}

	fmt.Fprintf(&sb, "Tick: %d | Time: %.0fms | Status: %s | Pixels: %d | Path: %d/%d | Pool: %d | Waiting: %d/%d\n",
		s.Tick, s.ElapsedMs, s.Status, s.Grid.AliveCount(),
		len(s.Path.Entities), s.Path.Capacity, s.Pool.Total(),
		s.WaitingArea.Count(), s.WaitingArea.Capacity)
	sb.WriteString(strings.Repeat("-", displayW+10) + "\n")

	for dy := 0; dy < displayH; dy++ {
		for dx := 0; dx < displayW; dx++ {
			pos := GridPos{Row: dy - 1, Col: dx - 1}
			switch {
			case s.Grid.InBounds(pos):
				r := s.Grid.At(pos)
				if r.Alive {
					sb.WriteRune(symbols[r.Type])
				} else {
					sb.WriteRune('.')
				}
			case (dx == 0 || dx == displayW-1) && (dy == 0 || dy == displayH-1):
				sb.WriteRune('+')
			default:
				if ch, ok := onBorder[pos]; ok {
					sb.WriteRune(ch)
				} else {
					sb.WriteRune('-')
				}
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(strings.Repeat("-", displayW+10) + "\n")
	for ci, col := range s.Pool.Columns {
		fmt.Fprintf(&sb, "C%d: ", ci)
		maxShow := 5
		for i, id := range col.Entities {
			if i >= maxShow {
				fmt.Fprintf(&sb, " ... +%d more", len(col.Entities)-maxShow)
				break
			}
			if i > 0 {
				sb.WriteString(" ")
			}
			e := s.mustEntity(id)
			fmt.Fprintf(&sb, "%c%d", lower(symbols[e.ResourceType]), e.Capacity)
		}
		if len(col.Entities) == 0 {
			sb.WriteString("(empty)")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Wait: ")
	hasAny := false
	for i, id := range s.WaitingArea.Slots {
		if id == NoEntity {
			continue
		}
		if hasAny {
			sb.WriteString(" ")
		}
		e := s.mustEntity(id)
		fmt.Fprintf(&sb, "[%d]%c(%d/%d)", i, lower(symbols[e.ResourceType]), e.Consumed, e.Capacity)
		hasAny = true
	}
	if !hasAny {
		sb.WriteString("(empty)")
	}
	sb.WriteString("\n")

	legend := make([]string, 0, len(symbols))
	for t, r := range symbols {
		legend = append(legend, fmt.Sprintf("%c=%s", r, t))
	}
	sort.Strings(legend)
	sb.WriteString("Legend: " + strings.Join(legend, " ") + "\n")

	return sb.String()
}

// RenderEntities renders the frogs on the path as "a3/5@12" tokens.
func RenderEntities(s *GameState) string {
	symbols := TypeSymbols(s)
	parts := make([]string, 0, len(s.Path.Entities))
	for _, id := range s.Path.Entities {
		e := s.mustEntity(id)
		parts = append(parts, fmt.Sprintf("%c%d/%d@%d", lower(symbols[e.ResourceType]), e.Consumed, e.Capacity, e.Position.Index))
	}
	return strings.Join(parts, " ")
}

func lower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}
