package analysis

import (
	"fmt"
	"io"

	"github.com/m-mizutani/goerr/v2"

	"github.com/invertedv/covidstates/df"
)

// Explore prints the head, info, descriptive statistics and missing counts of table to w.
// table is not modified.
func Explore(w io.Writer, table *df.DF, headRows int) error {
	fmt.Fprintln(w, "---Head of the Dataset---")
	fmt.Fprint(w, table.Head(headRows))

	fmt.Fprintln(w, "---dataset info---")
	fmt.Fprint(w, table.Info())

	fmt.Fprintln(w, "---Descriptive statistics---")
	desc, e := table.Describe()
	if e != nil {
		return goerr.Wrap(e, "cannot describe dataset")
	}
	fmt.Fprint(w, desc)

	fmt.Fprintln(w, "---missing values count---")
	var nulls *df.DF
	if nulls, e = nullTable(table); e != nil {
		return e
	}
	fmt.Fprint(w, nulls)

	return nil
}

// PreviewFeatures prints the first rows of the base counts next to the derived rates.
func PreviewFeatures(w io.Writer, table *df.DF, headRows int) error {
	view, e := table.KeepColumns(FeatureColumns...)
	if e != nil {
		return goerr.Wrap(e, "cannot select feature columns")
	}

	fmt.Fprint(w, view.Head(headRows))

	return nil
}

// nullTable is the missing count of each column of table as a two-column DF.
func nullTable(table *df.DF) (*df.DF, error) {
	names, counts := table.NullCounts()

	var (
		nameCol, countCol *df.Col
		nulls             *df.DF
		e                 error
	)
	if nameCol, e = df.NewCol(names, df.ColName("column")); e != nil {
		return nil, goerr.Wrap(e, "cannot build missing counts")
	}

	if countCol, e = df.NewCol(counts, df.ColName("missing")); e != nil {
		return nil, goerr.Wrap(e, "cannot build missing counts")
	}

	if nulls, e = df.NewDF(nameCol, countCol); e != nil {
		return nil, goerr.Wrap(e, "cannot build missing counts")
	}

	return nulls, nil
}
