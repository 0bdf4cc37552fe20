package analysis

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/xuri/excelize/v2"

	"github.com/invertedv/covidstates/df"
)

const (
	sheetDescribe = "Describe"
	sheetMissing  = "Missing"
	sheetFeatures = "Features"
)

// WriteWorkbook saves the descriptive statistics, missing counts and derived features of table
// to an xlsx workbook at path. Derive must have run.
func WriteWorkbook(path string, table *df.DF) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if e := f.SetSheetName("Sheet1", sheetDescribe); e != nil {
		return goerr.Wrap(e, "cannot name sheet", goerr.V("sheet", sheetDescribe))
	}

	desc, e := table.Describe()
	if e != nil {
		return goerr.Wrap(e, "cannot describe dataset")
	}

	if e := writeSheet(f, sheetDescribe, desc); e != nil {
		return e
	}

	var nulls *df.DF
	if nulls, e = nullTable(table); e != nil {
		return e
	}

	if e := writeSheet(f, sheetMissing, nulls); e != nil {
		return e
	}

	var features *df.DF
	if features, e = table.KeepColumns(FeatureColumns...); e != nil {
		return goerr.Wrap(e, "cannot select feature columns")
	}

	if e := writeSheet(f, sheetFeatures, features); e != nil {
		return e
	}

	if e := f.SaveAs(path); e != nil {
		return goerr.Wrap(e, "cannot save workbook", goerr.V("path", path))
	}

	return nil
}

func writeSheet(f *excelize.File, sheet string, data *df.DF) error {
	if idx, e := f.GetSheetIndex(sheet); e != nil || idx < 0 {
		if _, e := f.NewSheet(sheet); e != nil {
			return goerr.Wrap(e, "cannot add sheet", goerr.V("sheet", sheet))
		}
	}

	col := 1
	for c := data.Next(true); c != nil; c = data.Next(false) {
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		if e := f.SetCellValue(sheet, cell, c.Name()); e != nil {
			return goerr.Wrap(e, "cannot write header", goerr.V("sheet", sheet), goerr.V("cell", cell))
		}

		for row := 0; row < c.Len(); row++ {
			val := c.Element(row)
			// excel has no NaN; leave the cell empty
			if x, ok := val.(float64); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
				continue
			}

			cell, _ = excelize.CoordinatesToCellName(col, row+2)
			if e := f.SetCellValue(sheet, cell, val); e != nil {
				return goerr.Wrap(e, "cannot write cell", goerr.V("sheet", sheet), goerr.V("cell", cell))
			}
		}

		col++
	}

	return nil
}
