package tiling

import (
	"fmt"
	"math"

	"github.com/1broseidon/montile/internal/config"
	"github.com/1broseidon/montile/internal/geom"
)

// CalculateGrid determines the optimal grid dimensions for the given number of windows
func CalculateGrid(numWindows int) (rows, cols int) {
	if numWindows == 0 {
		return 0, 0
	}

	// Calculate columns first (ceiling of square root)
	cols = int(math.Ceil(math.Sqrt(float64(numWindows))))
	rows = int(math.Ceil(float64(numWindows) / float64(cols)))

	return rows, cols
}

// CalculatePositions computes client positions inside area for the given
// layout mode. In max mode every client receives the whole area minus the
// outer gap. In auto mode a short last row expands to fill the width.
func CalculatePositions(numWindows int, area geom.Rect, mode config.LayoutMode, gapSize int) ([]geom.Rect, error) {
	if numWindows == 0 {
		return nil, nil
	}

	var rows, cols int
	flexibleLastRow := false

	switch mode {
	case config.LayoutModeAuto, "":
		rows, cols = CalculateGrid(numWindows)
		flexibleLastRow = true
	case config.LayoutModeVertical:
		rows, cols = numWindows, 1
	case config.LayoutModeHorizontal:
		rows, cols = 1, numWindows
	case config.LayoutModeMax:
		full := area.Shrink(gapSize, gapSize, gapSize, gapSize)
		if full.Empty() {
			return nil, fmt.Errorf("insufficient space for max layout: area=%dx%d gap=%d",
				area.Width, area.Height, gapSize)
		}
		positions := make([]geom.Rect, numWindows)
		for i := range positions {
			positions[i] = full
		}
		return positions, nil
	default:
		return nil, fmt.Errorf("unsupported layout mode: %q", mode)
	}

	totalHorizontalGaps := (cols + 1) * gapSize
	totalVerticalGaps := (rows + 1) * gapSize

	slotWidth := (area.Width - totalHorizontalGaps) / cols
	slotHeight := (area.Height - totalVerticalGaps) / rows

	if slotWidth <= 0 || slotHeight <= 0 {
		return nil, fmt.Errorf(
			"insufficient space for layout: area=%dx%d rows=%d cols=%d gap=%d (slot=%dx%d)",
			area.Width, area.Height, rows, cols, gapSize, slotWidth, slotHeight,
		)
	}

	lastRowIndex := rows - 1
	windowsInLastRow := numWindows - (lastRowIndex * cols)
	if windowsInLastRow <= 0 {
		windowsInLastRow = cols
	}

	var lastRowSlotWidth int
	if flexibleLastRow && windowsInLastRow < cols {
		lastRowHorizontalGaps := (windowsInLastRow + 1) * gapSize
		lastRowSlotWidth = (area.Width - lastRowHorizontalGaps) / windowsInLastRow
	}

	positions := make([]geom.Rect, numWindows)

	for i := 0; i < numWindows; i++ {
		row := i / cols
		col := i % cols
		width := slotWidth

		if flexibleLastRow && row == lastRowIndex && windowsInLastRow < cols {
			col = i - (lastRowIndex * cols)
			width = lastRowSlotWidth
		}

		positions[i] = geom.Rect{
			X:      area.X + gapSize + col*(width+gapSize),
			Y:      area.Y + gapSize + row*(slotHeight+gapSize),
			Width:  width,
			Height: slotHeight,
		}
	}

	return positions, nil
}

// FitFloating keeps a floating geometry usable inside area. An unset
// geometry is centered at two thirds of the area's size; one that does not
// overlap area is moved to its top-left corner.
func FitFloating(g, area geom.Rect) geom.Rect {
	if g.Empty() {
		w, h := area.Width*2/3, area.Height*2/3
		cx, cy := area.Center()
		return geom.Rect{X: cx - w/2, Y: cy - h/2, Width: max(w, 1), Height: max(h, 1)}
	}
	if !g.Intersects(area) {
		g.X, g.Y = area.X, area.Y
	}
	return g
}
