package numbers

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/countdown/internal/gameerr"
)

func newTestPool(t *testing.T, seed int64) *Pool {
	t.Helper()
	pool, err := LoadPool(rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("LoadPool() error: %v", err)
	}
	return pool
}

func isBig(n int) bool {
	return n == 25 || n == 50 || n == 75 || n == 100
}

func TestDrawComposition(t *testing.T) {
	pool := newTestPool(t, 42)

	for big := 0; big <= MaxBig; big++ {
		for i := 0; i < 100; i++ {
			nums, err := pool.Draw(big)
			if err != nil {
				t.Fatalf("Draw(%d) error: %v", big, err)
			}
			if len(nums) != 6 {
				t.Fatalf("Draw(%d) returned %d numbers, want 6", big, len(nums))
			}

			seen := make(map[int]bool)
			gotBig := 0
			for _, n := range nums {
				if seen[n] {
					t.Errorf("Draw(%d) = %v repeats %d", big, nums, n)
				}
				seen[n] = true
				switch {
				case isBig(n):
					gotBig++
				case n < 1 || n > 10:
					t.Errorf("Draw(%d) = %v contains %d outside 1..10", big, nums, n)
				}
			}
			if gotBig != big {
				t.Errorf("Draw(%d) = %v has %d big numbers", big, nums, gotBig)
			}
		}
	}
}

func TestDrawOutOfRange(t *testing.T) {
	pool := newTestPool(t, 1)

	for _, n := range []int{-1, 5, 6, 100} {
		if _, err := pool.Draw(n); !errors.Is(err, gameerr.ErrRange) {
			t.Errorf("Draw(%d) error = %v, want ErrRange", n, err)
		}
		if _, err := pool.Deal(n); !errors.Is(err, gameerr.ErrRange) {
			t.Errorf("Deal(%d) error = %v, want ErrRange", n, err)
		}
	}
}

func TestTargetRange(t *testing.T) {
	pool := newTestPool(t, 7)

	for i := 0; i < 5000; i++ {
		if got := pool.Target(); got < 100 || got > 999 {
			t.Fatalf("Target() = %d, want [100,999]", got)
		}
	}
}

func TestDeal(t *testing.T) {
	pool := newTestPool(t, 3)

	set, err := pool.Deal(2)
	if err != nil {
		t.Fatalf("Deal(2) error: %v", err)
	}
	if len(set.Big) != 2 || len(set.Small) != 4 || len(set.Numbers) != 6 {
		t.Errorf("Deal(2) = %+v, want 2 big, 4 small, 6 total", set)
	}
	for i, n := range set.Big {
		if set.Numbers[i] != n {
			t.Errorf("Numbers[%d] = %d, want big number %d first", i, set.Numbers[i], n)
		}
	}
	if set.Target < 100 || set.Target > 999 {
		t.Errorf("Deal(2).Target = %d, want [100,999]", set.Target)
	}
	if pool.Picks() != 6 {
		t.Errorf("Picks() = %d, want 6", pool.Picks())
	}
}
