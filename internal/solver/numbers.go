// Package solver finds suggested answers for letters and numbers rounds.
// Its results are shown as hints after a round and never affect scoring.
package solver

import (
	"context"
	"fmt"
	"strings"
)

// Solution is the closest expression found for a numbers round.
type Solution struct {
	Expr  string
	Value int
	Diff  int
}

type item struct {
	value int
	expr  string
}

type search struct {
	ctx    context.Context
	target int
	best   Solution
	found  bool
	nodes  int
}

// checkEvery is how many nodes pass between context checks.
const checkEvery = 4096

// Solve searches for an expression over numbers that hits target, using each
// number at most once and keeping every intermediate value a positive
// integer. It returns the closest solution found before ctx ends and reports
// whether it is exact.
func Solve(ctx context.Context, numbers []int, target int) (Solution, bool) {
	s := &search{ctx: ctx, target: target}
	items := make([]item, 0, len(numbers))
	for _, n := range numbers {
		it := item{value: n, expr: fmt.Sprint(n)}
		s.consider(it)
		items = append(items, it)
	}
	s.walk(items)
	// Every combined expression carries one outer pair of parentheses.
	if strings.HasPrefix(s.best.Expr, "(") {
		s.best.Expr = s.best.Expr[1 : len(s.best.Expr)-1]
	}
	return s.best, s.found && s.best.Diff == 0
}

func (s *search) consider(it item) {
	diff := it.value - s.target
	if diff < 0 {
		diff = -diff
	}
	if !s.found || diff < s.best.Diff {
		s.best = Solution{Expr: it.expr, Value: it.value, Diff: diff}
		s.found = true
	}
}

// walk combines every pair of items and recurses on the shorter list.
// It returns false once the search should stop.
func (s *search) walk(items []item) bool {
	if s.found && s.best.Diff == 0 {
		return false
	}
	s.nodes++
	if s.nodes%checkEvery == 0 && s.ctx.Err() != nil {
		return false
	}

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if a.value < b.value {
				a, b = b, a
			}
			rest := make([]item, 0, len(items)-1)
			for k := range items {
				if k != i && k != j {
					rest = append(rest, items[k])
				}
			}
			for _, c := range combine(a, b) {
				s.consider(c)
				if !s.walk(append(rest, c)) {
					return false
				}
			}
		}
	}
	return true
}

// combine returns the useful results of a op b where a >= b.
func combine(a, b item) []item {
	out := make([]item, 0, 4)
	out = append(out, item{value: a.value + b.value, expr: "(" + a.expr + "+" + b.expr + ")"})
	if a.value != b.value {
		out = append(out, item{value: a.value - b.value, expr: "(" + a.expr + "-" + b.expr + ")"})
	}
	if b.value > 1 {
		out = append(out, item{value: a.value * b.value, expr: "(" + a.expr + "*" + b.expr + ")"})
		if a.value%b.value == 0 {
			out = append(out, item{value: a.value / b.value, expr: "(" + a.expr + "/" + b.expr + ")"})
		}
	}
	return out
}
