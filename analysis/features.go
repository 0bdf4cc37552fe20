package analysis

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/invertedv/covidstates/df"
)

// Epsilon is added to every rate denominator so that a zero denominator never divides by zero.
const Epsilon = 1e-6

type rateDef struct {
	name string
	num  string
	den  string
}

var rateDefs = []rateDef{
	{name: InfectionRate, num: Infected, den: Population},
	{name: MortalityRate, num: Deaths, den: Infected},
	{name: TestPositivityRate, num: Infected, den: Tested},
}

// Rate returns num / (den + Epsilon) * 100 elementwise.
func Rate(num, den []float64) []float64 {
	out := make([]float64, len(num))
	for ind := range num {
		out[ind] = num[ind] / (den[ind] + Epsilon) * 100
	}

	return out
}

// Derive appends Infection_Rate, Mortality_Rate and Test_Positivity_Rate to table.
// Columns left by an earlier Derive are replaced, so deriving twice gives the same table.
func Derive(table *df.DF) error {
	for _, def := range rateDefs {
		var (
			num, den []float64
			e        error
		)

		if num, e = floatColumn(table, def.num); e != nil {
			return goerr.Wrap(e, "cannot derive rate", goerr.V("rate", def.name))
		}

		if den, e = floatColumn(table, def.den); e != nil {
			return goerr.Wrap(e, "cannot derive rate", goerr.V("rate", def.name))
		}

		var col *df.Col
		if col, e = df.NewCol(Rate(num, den), df.ColName(def.name)); e != nil {
			return goerr.Wrap(e, "cannot build rate column", goerr.V("rate", def.name))
		}

		if e = table.AppendColumn(col, true); e != nil {
			return goerr.Wrap(e, "cannot append rate column", goerr.V("rate", def.name))
		}
	}

	return nil
}

func floatColumn(table *df.DF, name string) ([]float64, error) {
	col, e := table.Column(name)
	if e != nil {
		return nil, e
	}

	return df.Float(col)
}
