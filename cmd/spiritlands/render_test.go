package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_AlignsColumns(t *testing.T) {
	tbl := newTable("ID", "NAME", "COUNTRY")
	tbl.addRow("1", "Eyjafjallajökull", "Iceland")
	tbl.addRow("12", "Etna", "Italy")

	var buf bytes.Buffer
	require.NoError(t, tbl.render(&buf))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID  NAME              COUNTRY", lines[0])
	assert.Equal(t, "1   Eyjafjallajökull  Iceland", lines[1])
	assert.Equal(t, "12  Etna              Italy", lines[2])
}

func TestTable_WithoutHeaders(t *testing.T) {
	tbl := newTable()
	tbl.addRow("Total:", "9")
	tbl.addRow("Categories:", "5")

	var buf bytes.Buffer
	require.NoError(t, tbl.render(&buf))
	assert.Equal(t, "Total:       9\nCategories:  5\n", buf.String())
}
