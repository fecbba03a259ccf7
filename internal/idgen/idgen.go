// Package idgen produces short string identifiers for records and sessions.
package idgen

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	suffixLen = 6
	base36    = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Generator returns a new identifier on every call.
type Generator interface {
	NewID() string
}

// TimeRandom concatenates the base-36 Unix millisecond clock with a short
// random base-36 suffix. No collision check is made against stored records.
type TimeRandom struct {
	Now  func() time.Time
	Rand func(n int) int
}

// NewTimeRandom builds a TimeRandom using the wall clock.
func NewTimeRandom() *TimeRandom {
	return &TimeRandom{Now: time.Now, Rand: rand.IntN}
}

// NewID implements Generator.
func (g *TimeRandom) NewID() string {
	buf := make([]byte, 0, 16)
	buf = strconv.AppendInt(buf, g.Now().UnixMilli(), 36)
	for i := 0; i < suffixLen; i++ {
		buf = append(buf, base36[g.Rand(len(base36))])
	}
	return string(buf)
}

// UUID issues random version 4 UUIDs.
type UUID struct{}

// NewID implements Generator.
func (UUID) NewID() string {
	return uuid.NewString()
}

// New selects a generator by scheme name; anything but "uuid" yields TimeRandom.
func New(scheme string) Generator {
	if scheme == "uuid" {
		return UUID{}
	}
	return NewTimeRandom()
}
