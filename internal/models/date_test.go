package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-01-22 ")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2026-01-22" {
		t.Errorf("String() = %s", d.String())
	}
	if _, err := ParseDate("22/01/2026"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestDate_JSON(t *testing.T) {
	var v struct {
		D Date `json:"d"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2026-02-28"}`), &v); err != nil {
		t.Fatal(err)
	}
	if !v.D.Equal(NewDate(2026, time.February, 28).Time) {
		t.Errorf("decoded %v", v.D)
	}
	out, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"d":"2026-02-28"}` {
		t.Errorf("marshal = %s", out)
	}
	if err := json.Unmarshal([]byte(`{"d":null}`), &v); err != nil || !v.D.IsZero() {
		t.Errorf("null should decode to zero date, got %v err %v", v.D, err)
	}
}

func TestDate_AddDays(t *testing.T) {
	d := NewDate(2026, time.January, 28).AddDays(6)
	if d.String() != "2026-02-03" {
		t.Errorf("AddDays = %s", d)
	}
}

func TestTimestamp_UnmarshalLayouts(t *testing.T) {
	inputs := []string{
		`"2026-01-22T10:15:30Z"`,
		`"2026-01-22T10:15:30.123456+05:30"`,
		`"2026-01-22T10:15:30.123456"`,
		`"2026-01-22 10:15:30"`,
	}
	for _, in := range inputs {
		var ts Timestamp
		if err := json.Unmarshal([]byte(in), &ts); err != nil {
			t.Errorf("Unmarshal(%s): %v", in, err)
			continue
		}
		if ts.Year() != 2026 || ts.Month() != time.January || ts.Day() != 22 {
			t.Errorf("Unmarshal(%s) = %v", in, ts.Time)
		}
	}
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}
