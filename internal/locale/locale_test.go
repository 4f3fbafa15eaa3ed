package locale

import (
	"testing"
	"time"
)

func TestIntGrouping(t *testing.T) {
	tests := []struct {
		tag  string
		in   float64
		want string
	}{
		{"pt-BR", 1234, "1.234"},
		{"pt-BR", 1234567.4, "1.234.567"},
		{"pt-BR", 999, "999"},
		{"en", 1234, "1,234"},
		{"not a tag!!", 5000, "5.000"},
	}
	for _, tt := range tests {
		if got := New(tt.tag).Int(tt.in); got != tt.want {
			t.Errorf("New(%q).Int(%v) = %q, want %q", tt.tag, tt.in, got, tt.want)
		}
	}
}

func TestSigned(t *testing.T) {
	f := New("pt-BR")
	if got := f.Signed(1500); got != "+1.500" {
		t.Errorf("Signed(1500) = %q", got)
	}
	if got := f.Signed(-3); got != "-3" {
		t.Errorf("Signed(-3) = %q", got)
	}
	if got := f.Signed(0); got != "0" {
		t.Errorf("Signed(0) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	f := New("pt-BR")
	if got := f.Percent(60); got != "60.0%" {
		t.Errorf("Percent(60) = %q", got)
	}
	if got := f.Percent(33.333); got != "33.3%" {
		t.Errorf("Percent(33.333) = %q", got)
	}
}

func TestDates(t *testing.T) {
	f := New("pt-BR").In(time.UTC)
	ts := time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC)

	if got := f.Date(ts); got != "sex., 01/03/2024" {
		t.Errorf("Date = %q", got)
	}
	if got := f.Time(ts); got != "14:05:09" {
		t.Errorf("Time = %q", got)
	}
	if got := f.DateTime(ts); got != "sex., 01/03/2024 • 14:05:09" {
		t.Errorf("DateTime = %q", got)
	}
	if got := f.ShortDate(ts); got != "01/03" {
		t.Errorf("ShortDate = %q", got)
	}
}

func TestOrdinal(t *testing.T) {
	if got := New("pt-BR").Ordinal(2); got != "2º lugar" {
		t.Errorf("Ordinal = %q", got)
	}
}
