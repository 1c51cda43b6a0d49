package workerpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubmitWaitRunsEverySubmittedUnit(t *testing.T) {
	p := New()
	var done int32
	for i := 0; i < 50; i++ {
		p.Submit(func() {
			atomic.AddInt32(&done, 1)
		})
	}
	p.Wait()
	assert.EqualValues(t, 50, done)
}

func TestMapPreservesInputOrder(t *testing.T) {
	p := New()
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	got := Map(p, items, func(n int) int { return n * n })
	assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64, 81, 100}, got)
}

func TestMapEmptyInput(t *testing.T) {
	p := New()
	got := Map(p, []int{}, func(n int) int { return n })
	assert.Empty(t, got)
}
