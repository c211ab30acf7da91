package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tLat87/SpiritLands/pkg/core"
)

const (
	bookmarkMark = "*"
	// columnGap separates table columns.
	columnGap = 2
)

// table is a static table of left-aligned columns. Headers are optional;
// a table without them renders as label/value pairs.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// render writes the table to w. Styling follows the colour profile of w, so
// pipes and files get plain text.
func (t *table) render(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	widths := t.widths()

	var sb strings.Builder
	if len(t.headers) > 0 {
		writeRow(&sb, r.NewStyle().Bold(true), t.headers, widths)
	}
	cell := r.NewStyle()
	for _, row := range t.rows {
		writeRow(&sb, cell, row, widths)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (t *table) widths() []int {
	var widths []int
	measure := func(row []string) {
		for i, c := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(c))
		}
	}
	measure(t.headers)
	for _, row := range t.rows {
		measure(row)
	}
	return widths
}

func writeRow(sb *strings.Builder, style lipgloss.Style, row []string, widths []int) {
	for i, c := range row {
		if i == len(row)-1 {
			sb.WriteString(style.Render(c))
			break
		}
		sb.WriteString(style.Width(widths[i] + columnGap).Render(c))
	}
	sb.WriteString("\n")
}

func formatMagnitude(v float64, unit string) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + unit
}

func yearOrDash(year string) string {
	if year == "" {
		return "-"
	}
	return year
}

// printItems writes items as a table. mark reports bookmarked ids.
func printItems[C core.Category](w io.Writer, items []core.Item[C], mark func(string) bool) error {
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "No items found.")
		return err
	}

	t := newTable("", "ID", "NAME", "TYPE", "COUNTRY", "MAGNITUDE", "YEAR")
	for _, it := range items {
		flag := ""
		if mark != nil && mark(it.ID) {
			flag = bookmarkMark
		}
		t.addRow(flag, it.ID, it.Name, string(it.Type), it.Country,
			formatMagnitude(it.Magnitude, it.MagnitudeUnit()), yearOrDash(it.Year))
	}
	return t.render(w)
}

// printDetail writes the full record of one item.
func printDetail[C core.Category](w io.Writer, it core.Item[C], bookmarked bool) error {
	makerLabel, yearLabel, storyLabel := "Manufacturer", "First flight", "History"
	if it.Kind() == core.KindVolcano {
		makerLabel, yearLabel, storyLabel = "Location", "Last eruption", "Legend"
	}

	t := newTable()
	t.addRow("Name:", it.Name)
	t.addRow("Type:", string(it.Type))
	t.addRow(makerLabel+":", it.Maker)
	t.addRow("Country:", it.Country)
	t.addRow(magnitudeLabel(it.Kind())+":", formatMagnitude(it.Magnitude, it.MagnitudeUnit()))
	t.addRow(yearLabel+":", yearOrDash(it.Year))
	t.addRow("Coordinates:", fmt.Sprintf("%.4f, %.4f", it.Coordinates.Latitude, it.Coordinates.Longitude))
	t.addRow("Bookmarked:", strconv.FormatBool(bookmarked))
	if err := t.render(w); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", it.Description)
	if it.Story != "" {
		fmt.Fprintf(&b, "\n%s:\n%s\n", storyLabel, it.Story)
	}
	if len(it.Facts) > 0 {
		b.WriteString("\nFacts:\n")
		for _, f := range it.Facts {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func magnitudeLabel(k core.Kind) string {
	if k == core.KindVolcano {
		return "Height"
	}
	return "Max speed"
}
