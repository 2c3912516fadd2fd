package extraction_engine

import (
	"github.com/markdave123-py/Comparo/internal/models"
)

// Assembler builds a PropertyRecord from one document's text by evaluating
// the price resolver and every rule independently.
type Assembler struct {
	rules []Rule
}

func NewAssembler(rules []Rule) *Assembler {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Assembler{rules: rules}
}

// Assemble never fails; fields that do not match stay nil. Filename is left
// for the caller to attach.
func (a *Assembler) Assemble(text string) models.PropertyRecord {
	var rec models.PropertyRecord
	rec.Price, rec.PriceSource = ResolvePrice(text)

	for _, r := range a.rules {
		raw, ok := Match(r.Pattern, text)
		if !ok {
			continue
		}
		r.Apply(&rec, raw)
	}
	return rec
}
