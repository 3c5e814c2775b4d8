package metrics

import (
	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimal places, half up. Decimal arithmetic keeps
// rates like 1/3*100 from picking up float artifacts before rounding.
func Round2(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}

// Rate returns part/total*100 rounded to two decimals. A zero total yields
// exactly 0, never NaN or Inf.
func Rate(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	out, _ := decimal.NewFromInt(part).
		Div(decimal.NewFromInt(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return out
}

// RateOf is Rate over float inputs, for values that are themselves
// derived (estimated revenue, capacity slots).
func RateOf(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	out, _ := decimal.NewFromFloat(part).
		Div(decimal.NewFromFloat(total)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return out
}

// Average returns sum/count rounded to two decimals, 0 when count is 0.
func Average(sum, count int64) float64 {
	if count == 0 {
		return 0
	}
	out, _ := decimal.NewFromInt(sum).
		Div(decimal.NewFromInt(count)).
		Round(2).
		Float64()
	return out
}

// Growth returns the period-over-period change (current-previous)/previous*100
// rounded to two decimals, 0 when previous is 0.
func Growth(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	out, _ := decimal.NewFromInt(current - previous).
		Div(decimal.NewFromInt(previous)).
		Mul(decimal.NewFromInt(100)).
		Round(2).
		Float64()
	return out
}
