package extraction_engine

import (
	"regexp"

	"github.com/markdave123-py/Comparo/internal/models"
)

// A price is the tag, optional ":", "$" or whitespace, then a digit-and-comma
// run holding at least five digits.
var (
	soldPricePattern = label(`\bSP[:\s$]*((?:,*\d){5}[\d,]*)`)
	listPricePattern = label(`\bLP[:\s$]*((?:,*\d){5}[\d,]*)`)
)

var priceSources = []struct {
	pattern *regexp.Regexp
	source  models.PriceSource
}{
	{soldPricePattern, models.PriceSourceSold},
	{listPricePattern, models.PriceSourceList},
}

// ResolvePrice prefers the sold price over the list price, wherever each appears.
func ResolvePrice(text string) (*int, models.PriceSource) {
	for _, ps := range priceSources {
		raw, ok := Match(ps.pattern, text)
		if !ok {
			continue
		}
		amount, ok := Normalize(raw)
		if !ok {
			continue
		}
		return &amount, ps.source
	}
	return nil, models.PriceSourceNone
}
