package model

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// TimestampLayout matches the millisecond precision ISO-8601 form clients expect.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in UTC using TimestampLayout.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewID returns an identifier of the form PREFIX-<unix millis>-<7 base36 chars>.
func NewID(prefix string, now time.Time) string {
	suffix := make([]byte, 7)
	for i := range suffix {
		suffix[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return prefix + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + string(suffix)
}
