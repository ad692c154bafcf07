package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// Fixed-point precisions documented by the contract: the investment token
// uses 18 decimals, the stable-coin uses 6, and percentages travel as basis
// points (1% = 100).
const (
	TokenDecimals  = 18
	StableDecimals = 6
	MonthsPerYear  = 12
	BpsPerPercent  = 100
	MaxBps         = 10000
)

// ParseFixedPoint converts a human-unit decimal string into contract base
// units at the given precision. "100" at 6 decimals becomes 100000000.
func ParseFixedPoint(amount string, decimals int) (*big.Int, error) {
	clean := strings.TrimSpace(amount)
	if clean == "" {
		return nil, fmt.Errorf("empty amount")
	}
	if strings.HasPrefix(clean, "-") {
		return nil, fmt.Errorf("negative amount %q", amount)
	}

	whole := clean
	frac := ""
	if idx := strings.IndexByte(clean, '.'); idx >= 0 {
		whole = clean[:idx]
		frac = clean[idx+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > decimals {
		return nil, fmt.Errorf("amount %q exceeds %d decimal places", amount, decimals)
	}

	digits := whole + frac + strings.Repeat("0", decimals-len(frac))
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amount)
	}
	return value, nil
}

// ParseTokenAmount parses an investment-token amount (18 decimals).
func ParseTokenAmount(amount string) (*big.Int, error) {
	return ParseFixedPoint(amount, TokenDecimals)
}

// ParseStableAmount parses a stable-coin amount (6 decimals).
func ParseStableAmount(amount string) (*big.Int, error) {
	return ParseFixedPoint(amount, StableDecimals)
}

// FormatFixedPoint renders base units back into a human-unit decimal string,
// trimming trailing fractional zeros.
func FormatFixedPoint(value *big.Int, decimals int) string {
	if value == nil {
		return "0"
	}
	sign := ""
	digits := value.String()
	if strings.HasPrefix(digits, "-") {
		sign = "-"
		digits = digits[1:]
	}
	if len(digits) <= decimals {
		digits = strings.Repeat("0", decimals-len(digits)+1) + digits
	}
	split := len(digits) - decimals
	whole, frac := digits[:split], digits[split:]
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return sign + whole
	}
	return sign + whole + "." + frac
}

// FormatStableAmount renders a stable-coin base-unit decimal string into
// human units for display. Unparseable input is returned unchanged.
func FormatStableAmount(baseUnits string) string {
	value, ok := new(big.Int).SetString(strings.TrimSpace(baseUnits), 10)
	if !ok {
		return baseUnits
	}
	return FormatFixedPoint(value, StableDecimals)
}

// YearsToMonths converts a user-facing loan term. Terms are accepted in
// whole years and submitted to the contract in months.
func YearsToMonths(years int) (uint64, error) {
	if years <= 0 {
		return 0, fmt.Errorf("loan term must be at least one year")
	}
	return uint64(years) * MonthsPerYear, nil
}

// PercentToBasisPoints converts a 0-100 slider value into basis points.
func PercentToBasisPoints(percent float64) (uint64, error) {
	if percent < 0 || percent > 100 {
		return 0, fmt.Errorf("profit share must be between 0 and 100 percent")
	}
	return uint64(percent * BpsPerPercent), nil
}
