// Package analysis is the exploratory analysis of per-state COVID-19 metrics: load the state table,
// report on it, derive rate features and render the charts.
package analysis

// Column names of the state table.
const (
	State      = "State"
	Tested     = "Tested"
	Infected   = "Infected"
	Deaths     = "Deaths"
	Population = "Population"
	PopDensity = "Pop Density"
	Smoking    = "Smoking Rate"

	InfectionRate      = "Infection_Rate"
	MortalityRate      = "Mortality_Rate"
	TestPositivityRate = "Test_Positivity_Rate"
)

// Covariates are the demographic, economic and health columns of the input file.
var Covariates = []string{
	PopDensity, "Gini", "ICU Beds", "Income", "GDP", "Unemployment", "Sex Ratio", Smoking,
	"Flu Deaths", "Respiratory Deaths", "Physicians", "Hospitals", "Health Spending", "Pollution",
	"Med-Large Airports", "Temperature", "Urban", "Age 0-25", "Age 26-54", "Age 55+",
}

// RateColumns are the derived columns, in the order they are appended.
var RateColumns = []string{InfectionRate, MortalityRate, TestPositivityRate}

// CorrelationColumns are the columns of the correlation matrix, in display order.
var CorrelationColumns = append(append([]string{Tested, Infected, Deaths, Population}, Covariates...), RateColumns...)

// FeatureColumns are the columns shown in the feature preview and the workbook.
var FeatureColumns = append([]string{State, Infected, Deaths, Tested, Population}, RateColumns...)
