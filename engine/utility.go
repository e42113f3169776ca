package engine

import "github.com/chewxy/math32"

func Round(v float32, precision int) float32 {
	var r float32

	p := math32.Pow(10, float32(precision))
	if tmp := v * p; tmp > 0 {
		r = math32.Floor(tmp + 0.5)
	} else {
		r = math32.Ceil(tmp - 0.5)
	}

	return r / p
}

// NearlyEquals compares two float32 with an error margin
func NearlyEquals(a, b, epsilon float32) bool {
	// shortcut, handles infinities
	if a == b {
		return true
	}

	diff := math32.Abs(a - b)

	// a or b or both are zero
	if a*b == 0 {
		return diff < (epsilon * epsilon)
	}

	return diff/(math32.Abs(a)+math32.Abs(b)) < epsilon
}
