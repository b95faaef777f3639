package analytics

import "github.com/shopspring/decimal"

// PercentChange computes the period-over-period delta in percent. A
// zero-or-negative baseline cannot anchor a ratio: any growth from nothing
// is reported as a capped 100%, and no growth as 0%.
func PercentChange(current, previous decimal.Decimal) float64 {
	if previous.LessThanOrEqual(decimal.Zero) {
		if current.GreaterThan(decimal.Zero) {
			return 100.0
		}
		return 0.0
	}
	f, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return f
}

// PercentChangeInt is PercentChange over integer counts.
func PercentChangeInt(current, previous int) float64 {
	return PercentChange(decimal.NewFromInt(int64(current)), decimal.NewFromInt(int64(previous)))
}
