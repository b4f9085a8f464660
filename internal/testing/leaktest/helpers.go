// Package leaktest checks that code under test does not leave goroutines running.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 2 * time.Second
	pollInterval  = 10 * time.Millisecond
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t        testing.TB
	baseline int
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{t: t, baseline: runtime.NumGoroutine()}
}

// Check fails the test if more than tolerance goroutines outlive the baseline.
// Goroutines get settleTimeout to wind down before the count is judged.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()
	limit := g.baseline + tolerance
	current := settle(limit)
	if current > limit {
		g.t.Errorf("goroutine leak: baseline=%d now=%d tolerance=%d", g.baseline, current, tolerance)
	}
}

// Verify runs fn and then checks that it left nothing behind
func Verify(t testing.TB, fn func()) {
	t.Helper()
	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

func settle(limit int) int {
	deadline := time.Now().Add(settleTimeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= limit || time.Now().After(deadline) {
			return n
		}
		time.Sleep(pollInterval)
	}
}
