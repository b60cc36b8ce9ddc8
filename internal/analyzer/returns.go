package analyzer

// PercentReturns computes simple percentage returns from consecutive closes.
// The undefined first entry is dropped, so the result has len(closes)-1 values.
func PercentReturns(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	rets := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		rets[i-1] = (closes[i] - closes[i-1]) / closes[i-1]
	}
	return rets
}
