package tasks

import (
	"strings"

	"github.com/thoas/go-funk"
)

// MaterialLabel classifies the dominant material category of the dumped waste.
type MaterialLabel string

const (
	MaterialHousehold    MaterialLabel = "household"
	MaterialConstruction MaterialLabel = "construction"
	MaterialGarden       MaterialLabel = "garden"
	MaterialHazardous    MaterialLabel = "hazardous"
	MaterialFurniture    MaterialLabel = "furniture"
	MaterialElectrical   MaterialLabel = "electrical"
)

// DefaultMaterial is substituted when the classifier fails or returns
// something outside the closed set.
const DefaultMaterial = MaterialHousehold

// AllMaterials returns the closed material label set.
func AllMaterials() []MaterialLabel {
	return []MaterialLabel{
		MaterialHousehold,
		MaterialConstruction,
		MaterialGarden,
		MaterialHazardous,
		MaterialFurniture,
		MaterialElectrical,
	}
}

func (m MaterialLabel) String() string { return string(m) }

// IsValid reports whether m is a member of the closed material set.
func (m MaterialLabel) IsValid() bool {
	return funk.Contains(AllMaterials(), m)
}

// ParseMaterial recovers a material label from raw classifier output, scanning
// free text for a known label when the answer is not an exact match.
func ParseMaterial(raw string) (MaterialLabel, bool) {
	answer := strings.ToLower(strings.TrimSpace(raw))
	if answer == "" {
		return DefaultMaterial, false
	}

	if m := MaterialLabel(answer); m.IsValid() {
		return m, true
	}

	for _, m := range AllMaterials() {
		if strings.Contains(answer, string(m)) {
			return m, true
		}
	}

	return DefaultMaterial, false
}
