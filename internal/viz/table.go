package viz

import (
	"fmt"
	"strings"

	"github.com/san-kum/ruinwalk/internal/chain"
	"github.com/san-kum/ruinwalk/internal/matrix"
)

const defaultBarWidth = 40

// DistributionBars renders the distribution as one bar per state,
// scaled so a probability of 1 fills barWidth cells.
func DistributionBars(d chain.Distribution, barWidth int) string {
	if barWidth <= 0 {
		barWidth = defaultBarWidth
	}

	var b strings.Builder
	last := len(d) - 1
	for i, v := range d {
		filled := int(v*float64(barWidth) + 0.5)
		if filled > barWidth {
			filled = barWidth
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		label := fmt.Sprintf("%3d", i)
		switch i {
		case 0:
			label = ruinStyle.Render(label)
		case last:
			label = goalStyle.Render(label)
		}

		fmt.Fprintf(&b, "%s  %s  %s\n", label, FormatNum(v), barStyle.Render(bar))
	}
	return b.String()
}

// MatrixTable renders the transition matrix with row and column state
// headers, every entry to four decimals.
func MatrixTable(m matrix.Matrix) string {
	var b strings.Builder

	b.WriteString("     ")
	for j := 0; j < m.Cols; j++ {
		fmt.Fprintf(&b, "%8d", j)
	}
	b.WriteString("\n")

	for i := 0; i < m.Rows; i++ {
		fmt.Fprintf(&b, "%4d ", i)
		for j := 0; j < m.Cols; j++ {
			fmt.Fprintf(&b, "%8s", FormatNum(m.At(i, j)))
		}
		b.WriteString("\n")
	}
	return b.String()
}
