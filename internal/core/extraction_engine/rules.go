package extraction_engine

import (
	"regexp"

	"github.com/markdave123-py/Comparo/internal/models"
)

// Rule binds one labeled field to the record. Apply runs only when Pattern matched.
type Rule struct {
	Field   string
	Pattern *regexp.Regexp
	Apply   func(rec *models.PropertyRecord, raw string)
}

// DefaultRules is the MLS comp label vocabulary.
func DefaultRules() []Rule {
	return []Rule{
		{Field: "square_footage", Pattern: label(`Est Fin Abv Gr[:\s]*([\d,]+)`), Apply: intField(func(r *models.PropertyRecord) **int { return &r.SquareFootage })},
		{Field: "bedrooms", Pattern: label(`Beds:\s*(\d+)`), Apply: stringField(func(r *models.PropertyRecord) **string { return &r.Bedrooms })},
		{Field: "bathrooms", Pattern: label(`Baths:\s*([\d.]+)`), Apply: applyBaths},
		{Field: "basement_size", Pattern: label(`Est Tot Lower:\s*([\d,]+)`), Apply: stringField(func(r *models.PropertyRecord) **string { return &r.BasementSize })},
		{Field: "finished_basement", Pattern: label(`Est Fin Lower:\s*([\d,]+)`), Apply: stringField(func(r *models.PropertyRecord) **string { return &r.FinishedBasement })},
		{Field: "acreage", Pattern: label(`Acreage:\s*([\d.]+)`), Apply: stringField(func(r *models.PropertyRecord) **string { return &r.Acreage })},
		{Field: "year_built", Pattern: label(`Year Built:\s*(\d{4})`), Apply: stringField(func(r *models.PropertyRecord) **string { return &r.YearBuilt })},
		{Field: "garage_spaces", Pattern: label(`Tot Grg Sp[:\s]*(\d+)`), Apply: stringField(func(r *models.PropertyRecord) **string { return &r.GarageSpaces })},
	}
}

func stringField(dst func(*models.PropertyRecord) **string) func(*models.PropertyRecord, string) {
	return func(rec *models.PropertyRecord, raw string) {
		v := raw
		*dst(rec) = &v
	}
}

func intField(dst func(*models.PropertyRecord) **int) func(*models.PropertyRecord, string) {
	return func(rec *models.PropertyRecord, raw string) {
		if n, ok := Normalize(raw); ok {
			*dst(rec) = &n
		}
	}
}

// applyBaths sets both bathroom counts or neither.
func applyBaths(rec *models.PropertyRecord, raw string) {
	rec.BathroomsFull, rec.BathroomsHalf = SplitBaths(&raw)
}
