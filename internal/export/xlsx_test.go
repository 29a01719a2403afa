package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FlagRing/internal/model"
)

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")
	l := buildTestLayout()

	require.NoError(t, ExportXLSX(path, l))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{placementsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(placementsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Label", rows[0][2])
	assert.Equal(t, []string{"1", l.Placements[0].Piece.ID, "A", "40", "20", "-20", "-10", "0", "0", "30", "40"}, rows[1][:11])
	assert.Equal(t, "B", rows[2][2])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	values := make(map[string]string)
	for _, r := range summary {
		if len(r) >= 2 {
			values[r[0]] = r[1]
		}
	}
	assert.Equal(t, "2", values["Pieces"])
	assert.Equal(t, "100", values["Canvas Side"])
	assert.Equal(t, "42", values["Seed"])
}

func TestExportXLSX_EmptyLayout(t *testing.T) {
	err := ExportXLSX(filepath.Join(t.TempDir(), "empty.xlsx"), model.Layout{})
	assert.ErrorIs(t, err, ErrEmptyLayout)
}
