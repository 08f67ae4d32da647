package service

import "github.com/shopspring/decimal"

// roundAmount rounds half away from zero to a whole currency unit. Every
// figure reported to callers goes through here and nothing else.
func roundAmount(value float64) int64 {
	return decimal.NewFromFloat(value).Round(0).IntPart()
}
