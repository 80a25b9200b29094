package render

import (
	"math"
	"strconv"
	"strings"

	"resume-generator/resume/layout"
)

// RunStyle captures the inline run formatting written for a row.
type RunStyle struct {
	Bold  bool
	Size  int // half-points
	Color string
}

const (
	// Letter portrait, in twips.
	pageWidth  = 12240
	pageHeight = 15840

	tableStyleID = "TableGrid"
)

// RunStyleFor maps a layout row onto run properties.
func RunStyleFor(row layout.Row) RunStyle {
	return RunStyle{
		Bold:  row.Bold,
		Size:  halfPoints(row.Size),
		Color: strings.ToUpper(row.Color),
	}
}

func mmToTwips(mm float64) int {
	return int(math.Round(mm * 1440 / 25.4))
}

func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// contentWidth is the usable page width between the side margins.
func contentWidth(marginMM float64) int {
	width := pageWidth - 2*mmToTwips(marginMM)
	if width < mmToTwips(20) {
		width = mmToTwips(20)
	}
	return width
}
