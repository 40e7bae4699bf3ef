package models

import (
	"math/rand/v2"
	"strconv"
	"time"
)

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// CodeLength is the length of a generated product code.
const CodeLength = 8

// NewTimestampID derives an id from now in Unix milliseconds, moving forward
// one millisecond at a time while taken reports a collision.
func NewTimestampID(now time.Time, taken func(string) bool) string {
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if taken == nil || !taken(id) {
			return id
		}
		ms++
	}
}

// NewCode draws random product codes until taken reports a free one.
func NewCode(taken func(string) bool) string {
	buf := make([]byte, CodeLength)
	for {
		for i := range buf {
			buf[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
		}
		code := string(buf)
		if taken == nil || !taken(code) {
			return code
		}
	}
}

// CodeSet collects the codes already used by products.
func CodeSet(products []Product) map[string]bool {
	set := make(map[string]bool, len(products))
	for _, p := range products {
		if p.Code != "" {
			set[p.Code] = true
		}
	}
	return set
}
