// Package format contains the value formatting functions
// used by the cell renderers of the explorer tables.
//
// The functions are methods of Formats so that the locale
// and the clock can be injected by the caller.
package format

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TimestampLayout is the layout used by FormatTimestamp.
const TimestampLayout = "2006-01-02 15:04:05"

// Formats formats values for display.
// The zero value formats numbers for language.English
// relative to the current time.
type Formats struct {
	// Printer formats numbers, nil uses language.English.
	Printer *message.Printer
	// Now returns the reference time of TimeAgo, nil uses time.Now.
	Now func() time.Time
}

// Default uses language.English and time.Now.
var Default = &Formats{}

// New returns Formats for the language tag.
func New(tag language.Tag) *Formats {
	return &Formats{Printer: message.NewPrinter(tag)}
}

func (f *Formats) printer() *message.Printer {
	if f == nil || f.Printer == nil {
		return message.NewPrinter(language.English)
	}
	return f.Printer
}

func (f *Formats) now() time.Time {
	if f == nil || f.Now == nil {
		return time.Now()
	}
	return f.Now()
}

// LocalFormat formats the integer in s with the grouping
// separators of the locale. Other strings are returned unchanged.
func (f *Formats) LocalFormat(s string) string {
	trimmed := strings.TrimSpace(s)
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return f.printer().Sprint(number.Decimal(i))
	}
	if u, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
		return f.printer().Sprint(number.Decimal(u))
	}
	return s
}

// LocalFormatInt formats i with the grouping separators of the locale.
func (f *Formats) LocalFormatInt(i int) string {
	return f.printer().Sprint(number.Decimal(i))
}

// TimeAgo returns how long ago t was like "5 minutes ago".
func (f *Formats) TimeAgo(t time.Time) string {
	return humanize.RelTime(t, f.now(), "ago", "from now")
}

// FormatTimestamp formats t in UTC with TimestampLayout.
func (f *Formats) FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Truncate returns the first n runes of s followed by suffix
// if s has more than n runes, else s unchanged.
func Truncate(s string, n int, suffix string) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + suffix
}

// CapitalizeFirstLetter returns s with the first rune in upper case.
func CapitalizeFirstLetter(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// NanoToMilli converts nanoseconds to milliseconds.
func NanoToMilli(nanos int64) int64 {
	return nanos / int64(time.Millisecond)
}

// NanoToTime returns the UTC time of a Unix timestamp in nanoseconds.
func NanoToTime(nanos int64) time.Time {
	return time.Unix(0, nanos).UTC()
}

// ParseNanos parses a Unix timestamp in nanoseconds
// as it is encoded by the backend.
func ParseNanos(s string) (time.Time, error) {
	nanos, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return NanoToTime(nanos), nil
}
