package market

// PricePoint is one sample on a round's price chart.
type PricePoint struct {
	TimestampMs int64   `json:"time" yaml:"time"`
	Price       float64 `json:"price" yaml:"price"`
}

// AppendBounded returns a new slice holding points followed by p, keeping at
// most limit of the newest entries. The input slice is never modified, so
// callers holding the old slice keep a stable view. A limit <= 0 means no cap.
func AppendBounded(points []PricePoint, p PricePoint, limit int) []PricePoint {
	start := 0
	if limit > 0 && len(points)+1 > limit {
		start = len(points) + 1 - limit
	}

	out := make([]PricePoint, 0, len(points)-start+1)
	out = append(out, points[start:]...)
	return append(out, p)
}

// Last returns the newest point, or false if points is empty.
func Last(points []PricePoint) (PricePoint, bool) {
	if len(points) == 0 {
		return PricePoint{}, false
	}
	return points[len(points)-1], true
}
