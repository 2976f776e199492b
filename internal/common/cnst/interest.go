package cnst

// InterestLevel represents how interested a lead's client is
type InterestLevel string

const (
	InterestLow      InterestLevel = "low"
	InterestMedium   InterestLevel = "medium"
	InterestHigh     InterestLevel = "high"
	InterestVeryHigh InterestLevel = "very_high"
)

// Valid reports whether the interest level is one of the known values
func (l InterestLevel) Valid() bool {
	switch l {
	case InterestLow, InterestMedium, InterestHigh, InterestVeryHigh:
		return true
	}
	return false
}
