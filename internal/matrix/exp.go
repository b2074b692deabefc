package matrix

import (
	"fmt"
	"sync"
)

// DefaultTerms is the number of series terms past I + A used by Exp.
const DefaultTerms = 8

var (
	factMu   sync.Mutex
	invFacts = []float64{1, 1} // invFacts[n] = 1/n!
)

// inverseFactorials returns 1/0! .. 1/n!, extending the shared table
// iteratively as needed.
func inverseFactorials(n int) []float64 {
	factMu.Lock()
	defer factMu.Unlock()
	for k := len(invFacts); k <= n; k++ {
		invFacts = append(invFacts, invFacts[k-1]/float64(k))
	}
	return invFacts[:n+1]
}

// Exp approximates e^A by the truncated Maclaurin series
//
//	I + A + A²/2! + … + A^(terms+1)/(terms+1)!
//
// The order is fixed: there is no scaling and squaring, so accuracy drops
// as ‖A‖ grows.
func Exp(a Matrix, terms int) (Matrix, error) {
	if terms < 0 {
		return nil, fmt.Errorf("Exp: terms=%d: %w", terms, ErrBadTerms)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}

	inv := inverseFactorials(terms + 1)
	ans, err := Add(Identity(a.Side()), a)
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}

	power := a
	for k := 2; k <= terms+1; k++ {
		power, err = Multiply(power, a)
		if err != nil {
			return nil, fmt.Errorf("Exp: %w", err)
		}
		ans, err = Add(ans, Scale(power, inv[k]))
		if err != nil {
			return nil, fmt.Errorf("Exp: %w", err)
		}
	}
	return ans, nil
}
