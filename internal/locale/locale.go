// Package locale formats numbers and timestamps for chart labels and
// tooltips. Grouping and decimal separators come from CLDR data through
// golang.org/x/text; dates use the Brazilian short forms the panel shows.
package locale

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultTag is used when a configured locale cannot be parsed.
var DefaultTag = language.BrazilianPortuguese

// Formatter renders values for one locale. The zero value is not usable;
// build one with New.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	loc     *time.Location
}

// New returns a formatter for a BCP 47 tag such as "pt-BR". Invalid tags
// fall back to DefaultTag.
func New(tag string) *Formatter {
	t, err := language.Parse(tag)
	if err != nil {
		t = DefaultTag
	}
	return &Formatter{tag: t, printer: message.NewPrinter(t), loc: time.Local}
}

// In returns a copy that renders timestamps in loc.
func (f *Formatter) In(loc *time.Location) *Formatter {
	c := *f
	if loc != nil {
		c.loc = loc
	}
	return &c
}

// Tag returns the resolved language tag.
func (f *Formatter) Tag() language.Tag {
	return f.tag
}

// Int rounds v and groups thousands: 12345.6 -> "12.346" in pt-BR.
func (f *Formatter) Int(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	return f.printer.Sprintf("%d", int64(math.Round(v)))
}

// Number groups thousands and keeps up to three fraction digits.
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if v == math.Trunc(v) {
		return f.Int(v)
	}
	return f.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Signed is Number with an explicit "+" for positive values.
func (f *Formatter) Signed(v float64) string {
	if v > 0 {
		return "+" + f.Number(v)
	}
	return f.Number(v)
}

// Percent renders v with one decimal and a trailing "%": 12.345 -> "12.3%".
func (f *Formatter) Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// Ordinal renders a ranking position, "3º lugar".
func (f *Formatter) Ordinal(rank int) string {
	return fmt.Sprintf("%dº lugar", rank)
}

var weekdays = [...]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."}

// Date renders "sex., 01/03/2024".
func (f *Formatter) Date(t time.Time) string {
	t = t.In(f.loc)
	return fmt.Sprintf("%s, %s", weekdays[t.Weekday()], t.Format("02/01/2006"))
}

// Time renders "14:05:09".
func (f *Formatter) Time(t time.Time) string {
	return t.In(f.loc).Format("15:04:05")
}

// DateTime joins Date and Time with a bullet.
func (f *Formatter) DateTime(t time.Time) string {
	return f.Date(t) + " • " + f.Time(t)
}

// ShortDate renders the axis form "01/03".
func (f *Formatter) ShortDate(t time.Time) string {
	return t.In(f.loc).Format("02/01")
}
