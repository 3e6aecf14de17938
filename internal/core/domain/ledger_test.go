package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLedger_Empty(t *testing.T) {
	l := NewLedger()

	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.IDs())
	assert.False(t, l.Contains("x"))
}

func TestNewLedger_CollapsesDuplicates(t *testing.T) {
	l := NewLedger("a", "b", "a", "c", "b")

	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"a", "b", "c"}, l.IDs())
}

func TestLedger_Add(t *testing.T) {
	l := NewLedger("a")

	assert.True(t, l.Add("b"))
	assert.False(t, l.Add("a"))
	assert.False(t, l.Add("b"))
	assert.Equal(t, []string{"a", "b"}, l.IDs())
}

func TestLedger_ContainsIsExact(t *testing.T) {
	l := NewLedger("18abcDEF")

	assert.True(t, l.Contains("18abcDEF"))
	assert.False(t, l.Contains("18abcdef"))
	assert.False(t, l.Contains("18abcDEF "))
	assert.False(t, l.Contains("18abc"))
}

func TestLedger_Merge(t *testing.T) {
	l := NewLedger("x")

	added := l.Merge([]string{"y", "x", "z", "y"})

	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"x", "y", "z"}, l.IDs())
}

func TestLedger_IDsReturnsCopy(t *testing.T) {
	l := NewLedger("a", "b")

	ids := l.IDs()
	ids[0] = "mutated"

	assert.True(t, l.Contains("a"))
	assert.Equal(t, []string{"a", "b"}, l.IDs())
}

func TestLedger_MonotonicGrowth(t *testing.T) {
	l := NewLedger()
	ids := []string{"m1", "m2", "m3", "m2", "m4"}

	prev := 0
	for _, id := range ids {
		l.Add(id)
		assert.GreaterOrEqual(t, l.Len(), prev)
		prev = l.Len()
	}
	for _, id := range ids {
		assert.True(t, l.Contains(id))
	}
}
