package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTimestampIDSkipsTaken(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	taken := map[string]bool{"1700000000000": true, "1700000000001": true}

	assert.Equal(t, "1700000000000", NewTimestampID(now, nil))
	assert.Equal(t, "1700000000002", NewTimestampID(now, func(id string) bool { return taken[id] }))
}

func TestNewCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		code := NewCode(func(c string) bool { return seen[c] })
		assert.Regexp(t, `^[0-9A-Z]{8}$`, code)
		assert.False(t, seen[code])
		seen[code] = true
	}
}

func TestCodeSet(t *testing.T) {
	set := CodeSet([]Product{{Code: "A"}, {Code: ""}, {Code: "B"}})
	assert.Equal(t, map[string]bool{"A": true, "B": true}, set)
}

func TestSum(t *testing.T) {
	items := []Item{
		{Total: decimal.RequireFromString("0.10")},
		{Total: decimal.RequireFromString("0.20")},
	}
	assert.Equal(t, "0.30", Sum(items).StringFixed(2))
	assert.True(t, Sum(nil).IsZero())
}
