package service

import "time"

const (
	MaxPrincipal       = 1_000_000_000.0
	MaxInterestRate    = 1000.0 // annual percent
	MaxTenureMonths    = 600
	MaxMonthlyPrepay   = MaxPrincipal
	MaxTenureRange     = 120 // widest tenure sweep for recommendations
	DefaultResultTTL   = 24 * time.Hour
	maxAlternativeTerm = 3

	// payoffTolerance is the fraction of one EMI below which a remaining
	// balance is treated as float residue and folded into the final payment.
	payoffTolerance = 1e-3

	// iterationCapFactor bounds a schedule at this multiple of the nominal
	// tenure.
	iterationCapFactor = 2
)
