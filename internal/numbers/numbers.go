// Package numbers deals the six numbers and the target for a numbers round.
package numbers

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/countdown/internal/gamedata"
	"github.com/samdwyer/countdown/internal/gameerr"
)

// MaxBig is the most big numbers a player may ask for.
const MaxBig = 4

// Set is one round's deal.
type Set struct {
	Big     []int // Distinct big numbers
	Small   []int // Distinct small numbers
	Numbers []int // Big then Small
	Target  int
}

// Pool deals numbers from the big and small pools.
type Pool struct {
	def gamedata.NumberPoolsFile
	rng *rand.Rand
}

// NewPool creates a pool from loaded definitions.
func NewPool(def gamedata.NumberPoolsFile, rng *rand.Rand) *Pool {
	return &Pool{def: def, rng: rng}
}

// LoadPool creates a pool from the embedded numbers.json.
func LoadPool(rng *rand.Rand) (*Pool, error) {
	def, err := gamedata.LoadNumberPools()
	if err != nil {
		return nil, err
	}
	return NewPool(def, rng), nil
}

// Picks returns how many numbers each deal contains.
func (p *Pool) Picks() int {
	return p.def.Picks
}

// Draw returns bigCount numbers from the big pool and the rest from the small
// pool. Each value is used at most once per draw.
func (p *Pool) Draw(bigCount int) ([]int, error) {
	big, small, err := p.draw(bigCount)
	if err != nil {
		return nil, err
	}
	return append(big, small...), nil
}

// Target returns a uniformly random target in the configured range.
func (p *Pool) Target() int {
	return p.def.TargetMin + p.rng.Intn(p.def.TargetMax-p.def.TargetMin+1)
}

// Deal draws the numbers and a target for a round.
func (p *Pool) Deal(bigCount int) (Set, error) {
	big, small, err := p.draw(bigCount)
	if err != nil {
		return Set{}, err
	}
	all := make([]int, 0, len(big)+len(small))
	all = append(all, big...)
	all = append(all, small...)
	return Set{
		Big:     big,
		Small:   small,
		Numbers: all,
		Target:  p.Target(),
	}, nil
}

func (p *Pool) draw(bigCount int) (big, small []int, err error) {
	maxBig := MaxBig
	if len(p.def.Big) < maxBig {
		maxBig = len(p.def.Big)
	}
	if bigCount < 0 || bigCount > maxBig {
		return nil, nil, gameerr.New(gameerr.ErrRange,
			fmt.Sprintf("Please enter only numbers between 0 and %d", maxBig))
	}
	return p.sample(p.def.Big, bigCount), p.sample(p.def.Small, p.def.Picks-bigCount), nil
}

// sample picks n distinct entries without touching the source slice.
func (p *Pool) sample(from []int, n int) []int {
	out := make([]int, 0, n)
	for _, i := range p.rng.Perm(len(from))[:n] {
		out = append(out, from[i])
	}
	return out
}
