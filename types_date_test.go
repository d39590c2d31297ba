package finboard

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2023-01-15", "2023-01-15", true},
		{"2023-1-5", "2023-01-05", true}, // lenient single digits
		{"2023/01/15", "", false},
		{"not-a-date", "", false},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.in)
		if (err == nil) != tc.ok {
			t.Errorf("ParseDate(%q) err = %v, want ok=%v", tc.in, err, tc.ok)
			continue
		}
		if tc.ok && got.String() != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2023, time.January, 15)
	b := NewDate(2023, time.February, 1)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before is wrong")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After is wrong")
	}
	if a.Before(a) || a.After(a) {
		t.Error("a date is neither before nor after itself")
	}
}

func TestDateAddNormalizes(t *testing.T) {
	d := NewDate(2023, time.January, 31).Add(1)
	if d.String() != "2023-02-01" {
		t.Errorf("Jan 31 + 1 = %s, want 2023-02-01", d)
	}
	d = NewDate(2024, time.February, 28).Add(1)
	if d.String() != "2024-02-29" {
		t.Errorf("leap year: %s, want 2024-02-29", d)
	}
}

func TestDateMonthKey(t *testing.T) {
	d := NewDate(2023, time.March, 7)
	if got := d.MonthKey(); got != "2023-03" {
		t.Errorf("MonthKey = %s, want 2023-03", got)
	}
}

func TestDateJSON(t *testing.T) {
	in := NewDate(2023, time.June, 9)
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2023-06-09"` {
		t.Errorf("marshal = %s", data)
	}
	var out Date
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip: %s != %s", out, in)
	}
}
