package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseSummaryMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SummaryMode
		wantErr bool
	}{
		{"daily", SummaryDaily, false},
		{"Weekly", SummaryWeekly, false},
		{" MONTHLY ", SummaryMonthly, false},
		{"yearly", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSummaryMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSummaryMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSummaryMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseSearchScope(t *testing.T) {
	if s, err := ParseSearchScope("Logs"); err != nil || s != ScopeLogs {
		t.Errorf("ParseSearchScope(Logs) = %q, %v", s, err)
	}
	if _, err := ParseSearchScope("people"); err == nil {
		t.Error("expected error for unknown scope")
	}
}

func TestSummaryMode_PeriodDays(t *testing.T) {
	if SummaryDaily.PeriodDays() != 1 || SummaryWeekly.PeriodDays() != 7 || SummaryMonthly.PeriodDays() != 30 {
		t.Errorf("period days: daily=%d weekly=%d monthly=%d",
			SummaryDaily.PeriodDays(), SummaryWeekly.PeriodDays(), SummaryMonthly.PeriodDays())
	}
}

func TestSummaryRequest_EndPrecedesStart(t *testing.T) {
	start := NewDate(2026, time.January, 22)
	before := start.AddDays(-1)
	after := start.AddDays(6)
	if (&SummaryRequest{StartDate: start}).EndPrecedesStart() {
		t.Error("no end date should not precede start")
	}
	if (&SummaryRequest{StartDate: start, EndDate: &after}).EndPrecedesStart() {
		t.Error("later end date should not precede start")
	}
	if !(&SummaryRequest{StartDate: start, EndDate: &before}).EndPrecedesStart() {
		t.Error("earlier end date should precede start")
	}
}

func TestSummaryRequest_OmitsNilEndDate(t *testing.T) {
	req := SummaryRequest{Mode: SummaryWeekly, StartDate: NewDate(2026, time.January, 22)}
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"mode":"weekly","start_date":"2026-01-22"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}
