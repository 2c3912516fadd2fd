package models

import (
	"io"
)

// PriceSource tags where a record's price came from.
type PriceSource string

const (
	PriceSourceSold PriceSource = "SP"
	PriceSourceList PriceSource = "LP"
	PriceSourceNone PriceSource = "None"
)

// Document is one uploaded comp file. Body is consumed once by the pipeline.
type Document struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// PropertyRecord is the structured output for one Document.
// A nil pointer means the field was not found in the text and serializes as null.
type PropertyRecord struct {
	Price            *int        `json:"price"`
	PriceSource      PriceSource `json:"price_source"`
	SquareFootage    *int        `json:"square_footage"`
	Bedrooms         *string     `json:"bedrooms"`
	BathroomsFull    *int        `json:"bathrooms_full"`
	BathroomsHalf    *int        `json:"bathrooms_half"`
	BasementSize     *string     `json:"basement_size"`
	FinishedBasement *string     `json:"finished_basement"`
	Acreage          *string     `json:"acreage"`
	YearBuilt        *string     `json:"year_built"`
	GarageSpaces     *string     `json:"garage_spaces"`
	Filename         string      `json:"filename"`
}

// BatchResult holds one record per processed document, in upload order.
type BatchResult []PropertyRecord

// CompsResponse is the body returned by the upload endpoint.
type CompsResponse struct {
	Comps BatchResult `json:"comps"`
}

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
