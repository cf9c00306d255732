package store

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/flytipwatch/impact-planner/internal/store/model"
)

// Workbook column headers, matching the published county metrics dataset.
const (
	colRegion        = "county"
	colAirQuality    = "air_quality_impact"
	colCo2Emission   = "co2_emission_kg"
	colQualityOfLife = "quality_of_life_impact"
)

// ParseCoefficientWorkbook reads region coefficients from an xlsx workbook.
// The first sheet must carry a header row naming the four expected columns in
// any order. Rows with unparseable numbers are skipped with a warning rather
// than failing the whole import.
func ParseCoefficientWorkbook(content []byte) ([]model.RegionCoefficient, error) {
	excelFile, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, errors.Wrap(err, "opening coefficient workbook")
	}
	defer excelFile.Close()

	sheets := excelFile.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("coefficient workbook has no sheets")
	}

	rows, err := excelFile.GetRows(sheets[0])
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheets[0])
	}
	if len(rows) < 2 {
		return nil, errors.Errorf("sheet %q has no data rows", sheets[0])
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	coefficients := make([]model.RegionCoefficient, 0, len(rows)-1)
	for i, row := range rows[1:] {
		region := cell(row, columns[colRegion])
		if region == "" {
			continue
		}

		airQuality, err1 := parseCell(row, columns[colAirQuality])
		co2, err2 := parseCell(row, columns[colCo2Emission])
		qualityOfLife, err3 := parseCell(row, columns[colQualityOfLife])
		if err1 != nil || err2 != nil || err3 != nil {
			zap.S().Named("store").Warnf("skipping workbook row %d (%s): unparseable value", i+2, region)
			continue
		}

		coefficients = append(coefficients, model.RegionCoefficient{
			Region:              region,
			AirQualityImpact:    airQuality,
			Co2EmissionKg:       co2,
			QualityOfLifeImpact: qualityOfLife,
		})
	}

	if len(coefficients) == 0 {
		return nil, errors.New("coefficient workbook contains no usable rows")
	}

	return coefficients, nil
}

func headerIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colRegion, colAirQuality, colCo2Emission, colQualityOfLife} {
		if _, ok := columns[required]; !ok {
			return nil, errors.Errorf("coefficient workbook missing column %q", required)
		}
	}
	return columns, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseCell(row []string, idx int) (float64, error) {
	return strconv.ParseFloat(cell(row, idx), 64)
}
