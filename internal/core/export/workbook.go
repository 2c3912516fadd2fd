// Package export renders an extracted batch as an XLSX workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/markdave123-py/Comparo/internal/models"
)

const SheetName = "Comps"

var headers = []string{
	"File",
	"Price",
	"Price Source",
	"Sq Ft",
	"Beds",
	"Full Baths",
	"Half Baths",
	"Basement Total",
	"Basement Finished",
	"Acreage",
	"Year Built",
	"Garage Spaces",
}

// CompsWorkbook returns the XLSX bytes for comps, one row per record after the
// header row. Absent fields are left blank.
func CompsWorkbook(comps models.BatchResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, err
		}
	}

	for r, rec := range comps {
		row := r + 2
		values := []any{
			rec.Filename,
			intOrNil(rec.Price),
			string(rec.PriceSource),
			intOrNil(rec.SquareFootage),
			strOrNil(rec.Bedrooms),
			intOrNil(rec.BathroomsFull),
			intOrNil(rec.BathroomsHalf),
			strOrNil(rec.BasementSize),
			strOrNil(rec.FinishedBasement),
			strOrNil(rec.Acreage),
			strOrNil(rec.YearBuilt),
			strOrNil(rec.GarageSpaces),
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 28)
	_ = f.SetColWidth(SheetName, "B", "L", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func intOrNil(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func strOrNil(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
