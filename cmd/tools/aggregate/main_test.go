package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "a long na…", truncate("a long name indeed", 10))

	// Multi-byte names must be cut on rune boundaries.
	assert.Equal(t, "Chuo Kikuu — Schol…", truncate("Chuo Kikuu — Scholarship ya Elimu", 19))
	assert.Equal(t, "ufadhili…", truncate("ufadhili wa masomo…", 9))
}
