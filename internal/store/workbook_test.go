package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))
	return buf.Bytes()
}

func TestParseCoefficientWorkbook(t *testing.T) {
	content := workbookBytes(t, [][]any{
		{"county", "air_quality_impact", "co2_emission_kg", "quality_of_life_impact"},
		{"Kent", 0.45, 4.2, 0.31},
		{"Cornwall", 0.30, 3.8, 0.20},
	})

	rows, err := ParseCoefficientWorkbook(content)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Kent", rows[0].Region)
	assert.Equal(t, 0.45, rows[0].AirQualityImpact)
	assert.Equal(t, 4.2, rows[0].Co2EmissionKg)
	assert.Equal(t, 0.31, rows[0].QualityOfLifeImpact)
}

func TestParseCoefficientWorkbookColumnOrderIsFlexible(t *testing.T) {
	content := workbookBytes(t, [][]any{
		{"co2_emission_kg", "county", "quality_of_life_impact", "air_quality_impact"},
		{5.0, "Devon", 0.25, 0.4},
	})

	rows, err := ParseCoefficientWorkbook(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Devon", rows[0].Region)
	assert.Equal(t, 5.0, rows[0].Co2EmissionKg)
}

func TestParseCoefficientWorkbookSkipsBadRows(t *testing.T) {
	content := workbookBytes(t, [][]any{
		{"county", "air_quality_impact", "co2_emission_kg", "quality_of_life_impact"},
		{"Kent", 0.45, 4.2, 0.31},
		{"Broken", "not-a-number", 4.2, 0.31},
		{"", 0.1, 0.1, 0.1},
	})

	rows, err := ParseCoefficientWorkbook(content)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kent", rows[0].Region)
}

func TestParseCoefficientWorkbookMissingColumn(t *testing.T) {
	content := workbookBytes(t, [][]any{
		{"county", "air_quality_impact"},
		{"Kent", 0.45},
	})

	_, err := ParseCoefficientWorkbook(content)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "co2_emission_kg")
}

func TestParseCoefficientWorkbookNotAnXlsx(t *testing.T) {
	_, err := ParseCoefficientWorkbook([]byte("county,air_quality_impact\nKent,0.4"))
	require.Error(t, err)
}

func TestDefaultCoefficientsAreUnique(t *testing.T) {
	rows := defaultCoefficients()
	require.NotEmpty(t, rows)

	seen := map[string]bool{}
	for _, row := range rows {
		assert.False(t, seen[row.Region], "duplicate region %q", row.Region)
		seen[row.Region] = true
		assert.Greater(t, row.Co2EmissionKg, 0.0, "region %q", row.Region)
	}
}
