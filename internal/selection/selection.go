// Where: cli/internal/selection/selection.go
// What: Uniform random choice of a role instance.
// Why: Keep the random source injectable so tests can pin the choice.
package selection

import (
	"math/rand/v2"

	"github.com/poruru-code/wazmonkey/internal/domain/fault"
)

// Source yields an integer in [0, n). Implementations must be uniform.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n)
}

// NewSource returns the process-wide generator.
func NewSource() Source {
	return globalSource{}
}

// NewSeededSource returns a reproducible generator.
func NewSeededSource(seed1, seed2 uint64) Source {
	return rand.New(rand.NewPCG(seed1, seed2))
}

// Pick returns one element of names, each with equal probability.
func Pick(src Source, names []string) (string, error) {
	if len(names) == 0 {
		return "", fault.NoInstancesf("no role instances found")
	}
	if src == nil {
		src = NewSource()
	}
	idx := src.IntN(len(names))
	if idx < 0 || idx >= len(names) {
		return "", fault.NoInstancesf("random source returned index %d for %d instances", idx, len(names))
	}
	return names[idx], nil
}
