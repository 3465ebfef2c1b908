package item

import (
	"math/rand/v2"
	"time"
)

const (
	// MySQLTimeFormat is the DATETIME layout.
	MySQLTimeFormat = "2006-01-02 15:04:05"
	// ZeroDateTime is the zero DATETIME sentinel. It maps to timestamp 0 and back.
	ZeroDateTime = "0000-00-00 00:00:00"
)

// TimeKeeper is a cursor over synthetic timestamps. Each Advance moves it forward by a
// random step of at most maxShift seconds without ever passing the current time.
// A keeper sitting on the zero sentinel stays there.
type TimeKeeper struct {
	unix     int64
	maxShift int64
	rng      *rand.Rand
	now      func() time.Time
}

// NewTimeKeeper returns a keeper positioned at start (unix seconds).
func NewTimeKeeper(start, maxShift int64, rng *rand.Rand, now func() time.Time) *TimeKeeper {
	return &TimeKeeper{
		unix:     max(start, 0),
		maxShift: max(maxShift, 0),
		rng:      rng,
		now:      now,
	}
}

// Advance moves the cursor and returns its new position.
func (k *TimeKeeper) Advance() int64 {
	if k.unix == 0 {
		return 0
	}
	next := k.unix + k.rng.Int64N(k.maxShift+1)
	if now := k.now().Unix(); next > now {
		next = now
	}
	k.unix = next
	return next
}

// Unix returns the current position.
func (k *TimeKeeper) Unix() int64 {
	return k.unix
}

// FormatIn renders unix in loc, mapping 0 to the zero sentinel.
func FormatIn(unix int64, loc *time.Location) string {
	if unix == 0 {
		return ZeroDateTime
	}
	return time.Unix(unix, 0).In(loc).Format(MySQLTimeFormat)
}

// FormatGMT renders unix in UTC, mapping 0 to the zero sentinel.
func FormatGMT(unix int64) string {
	return FormatIn(unix, time.UTC)
}

// ParseIn parses a DATETIME string in loc. The zero sentinel and unparsable values map to 0.
func ParseIn(value string, loc *time.Location) int64 {
	if value == "" || value == ZeroDateTime {
		return 0
	}
	t, err := time.ParseInLocation(MySQLTimeFormat, value, loc)
	if err != nil {
		return 0
	}
	return t.Unix()
}
