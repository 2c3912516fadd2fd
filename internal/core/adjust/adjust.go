// Package adjust prices comps against a subject property using fixed
// per-feature adjustment rates.
package adjust

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/markdave123-py/Comparo/internal/models"
)

// Condition ratings, Poor through Excellent.
const (
	ConditionPoor = iota
	ConditionFair
	ConditionAverage
	ConditionGood
	ConditionExcellent
)

const (
	bedRate       = 3000
	fullBathRate  = 3000
	halfBathRate  = 1500
	basementRate  = 4500
	acreageRate   = 1000
	acreageStep   = 0.1
	ageRate       = 1000
	ageStep       = 10
	garageRate    = 2500
	conditionRate = 10000
	sizeTolerance = 100
	sizeRateShare = 0.25
)

var ErrNoComps = errors.New("no comps supplied")

// Subject is the property being appraised. Finish is the finished share of
// the basement in percent.
type Subject struct {
	Sqft      int     `json:"sqft"`
	Year      int     `json:"year"`
	Beds      int     `json:"beds"`
	Full      int     `json:"full"`
	Half      int     `json:"half"`
	Acreage   float64 `json:"acreage"`
	Finish    float64 `json:"finish"`
	Garage    int     `json:"garage"`
	Condition int     `json:"condition"`
}

type Adjustments struct {
	Size      float64 `json:"size"`
	Beds      float64 `json:"beds"`
	Full      float64 `json:"full"`
	Half      float64 `json:"half"`
	Basement  float64 `json:"basement"`
	Acreage   float64 `json:"acreage"`
	Age       float64 `json:"age"`
	Garage    float64 `json:"garage"`
	Condition float64 `json:"condition"`
}

// Total sums every adjustment.
func (a Adjustments) Total() float64 {
	return a.Size + a.Beds + a.Full + a.Half + a.Basement + a.Acreage + a.Age + a.Garage + a.Condition
}

type AdjustedComp struct {
	Filename        string             `json:"filename"`
	PriceSource     models.PriceSource `json:"price_source"`
	Price           int                `json:"price"`
	PPSF            float64            `json:"ppsf"`
	Condition       int                `json:"condition"`
	Adjustments     Adjustments        `json:"adjustments"`
	TotalAdjustment float64            `json:"total_adjustment"`
	AdjustedPrice   float64            `json:"adjusted_price"`
	Narrative       string             `json:"narrative"`
}

type Result struct {
	AveragePPSF int            `json:"average_ppsf"`
	SizeRate    int            `json:"size_rate"`
	Comps       []AdjustedComp `json:"comps"`
}

// compFacts are the numeric features of an extracted record; absent fields count as zero.
type compFacts struct {
	sqft, price, beds, full, half, year, garage int
	acreage, finishedPercent, ppsf               float64
}

func factsOf(rec models.PropertyRecord) compFacts {
	f := compFacts{
		sqft:    derefInt(rec.SquareFootage),
		price:   derefInt(rec.Price),
		beds:    atoi(rec.Bedrooms),
		full:    derefInt(rec.BathroomsFull),
		half:    derefInt(rec.BathroomsHalf),
		year:    atoi(rec.YearBuilt),
		garage:  atoi(rec.GarageSpaces),
		acreage: atof(rec.Acreage),
	}
	if f.sqft > 0 {
		f.ppsf = float64(f.price) / float64(f.sqft)
	}
	if total := atoi(rec.BasementSize); total > 0 {
		f.finishedPercent = float64(atoi(rec.FinishedBasement)) / float64(total) * 100
	}
	return f
}

// ValidateCondition reports whether c is one of the five ratings.
func ValidateCondition(c int) error {
	if c < ConditionPoor || c > ConditionExcellent {
		return fmt.Errorf("condition %d out of range %d..%d", c, ConditionPoor, ConditionExcellent)
	}
	return nil
}

// Adjust prices every comp against subject. conditions[i] rates comps[i];
// comps without a rating are treated as Average. The size rate is a quarter
// of the mean price per square foot of sold (SP) comps.
func Adjust(subject Subject, comps []models.PropertyRecord, conditions []int) (*Result, error) {
	if len(comps) == 0 {
		return nil, ErrNoComps
	}
	if err := ValidateCondition(subject.Condition); err != nil {
		return nil, fmt.Errorf("subject: %w", err)
	}
	for i, c := range conditions {
		if err := ValidateCondition(c); err != nil {
			return nil, fmt.Errorf("comp %d: %w", i+1, err)
		}
	}

	facts := make([]compFacts, len(comps))
	var soldPPSF float64
	var sold int
	for i, rec := range comps {
		facts[i] = factsOf(rec)
		if rec.PriceSource == models.PriceSourceSold {
			soldPPSF += facts[i].ppsf
			sold++
		}
	}

	var avgPPSF int
	if sold > 0 {
		avgPPSF = roundHalfUp(soldPPSF / float64(sold))
	}
	sizeRate := roundHalfUp(float64(avgPPSF) * sizeRateShare)

	res := &Result{AveragePPSF: avgPPSF, SizeRate: sizeRate, Comps: make([]AdjustedComp, len(comps))}
	for i, rec := range comps {
		condition := ConditionAverage
		if i < len(conditions) {
			condition = conditions[i]
		}
		f := facts[i]
		adj := adjustmentsFor(subject, f, condition, sizeRate)
		total := adj.Total()

		res.Comps[i] = AdjustedComp{
			Filename:        rec.Filename,
			PriceSource:     rec.PriceSource,
			Price:           f.price,
			PPSF:            f.ppsf,
			Condition:       condition,
			Adjustments:     adj,
			TotalAdjustment: total,
			AdjustedPrice:   float64(f.price) + total,
			Narrative:       Narrative(i, rec.Filename, adj),
		}
	}
	return res, nil
}

func adjustmentsFor(s Subject, c compFacts, condition, sizeRate int) Adjustments {
	var adj Adjustments

	if sqftDiff := s.Sqft - c.sqft; abs(sqftDiff) > sizeTolerance {
		adj.Size = float64(sqftDiff * sizeRate)
	}
	adj.Beds = float64((s.Beds - c.beds) * bedRate)
	adj.Full = float64((s.Full - c.full) * fullBathRate)
	adj.Half = float64((s.Half - c.half) * halfBathRate)
	adj.Basement = (s.Finish - c.finishedPercent) / 100 * basementRate
	adj.Acreage = math.Floor(math.Abs(s.Acreage-c.acreage)/acreageStep) * acreageRate

	if ageDiff := s.Year - c.year; abs(ageDiff) > ageStep {
		adj.Age = float64(abs(ageDiff) / ageStep * ageRate * sign(ageDiff))
	}
	adj.Garage = float64((s.Garage - c.garage) * garageRate)
	adj.Condition = float64((s.Condition - condition) * conditionRate)
	return adj
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// atoi reads an extracted digit string, ignoring thousands separators.
func atoi(p *string) int {
	if p == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(*p, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

func atof(p *string) float64 {
	if p == nil {
		return 0
	}
	f, err := strconv.ParseFloat(*p, 64)
	if err != nil {
		return 0
	}
	return f
}
