package parse

import (
	"strings"
	"testing"
)

func TestValidate_CleanFile(t *testing.T) {
	report, err := Validate(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if !report.CanProceed() {
		t.Fatalf("clean file must proceed; errors: %v", report.Errors)
	}
	if len(report.Errors) != 0 || len(report.Warnings) != 0 {
		t.Errorf("errors=%v warnings=%v, want none", report.Errors, report.Warnings)
	}

	s := report.Summary
	if s.TotalRows != 3 || s.BuyCount != 2 || s.SellCount != 1 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Platforms) != 2 || s.Platforms[0] != "BINA" || s.Platforms[1] != "TDRP" {
		t.Errorf("platforms = %v, want [BINA TDRP]", s.Platforms)
	}
	if len(s.Symbols) != 2 || s.Symbols[0] != "AAPL" {
		t.Errorf("symbols = %v, want [AAPL BTC]", s.Symbols)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string // substring of the expected error
	}{
		{"bad column count", "23-01-15-14-30|MKT|TDRP|buy|AAPL|10|150", "expected 8 columns"},
		{"bad datetime shape", "2023-01-15|MKT|TDRP|buy|AAPL|10|150|-1500", "expected YY-MM-DD-HH-MM"},
		{"month out of range", "23-13-15-14-30|MKT|TDRP|buy|AAPL|10|150|-1500", "month 13 out of range"},
		{"hour out of range", "23-01-15-25-30|MKT|TDRP|buy|AAPL|10|150|-1500", "hour 25 out of range"},
		{"unknown type", "23-01-15-14-30|BND|TDRP|buy|AAPL|10|150|-1500", "unknown asset type"},
		{"unknown action", "23-01-15-14-30|MKT|TDRP|hold|AAPL|10|150|-1500", "unknown action"},
		{"empty symbol", "23-01-15-14-30|MKT|TDRP|buy||10|150|-1500", "symbol is empty"},
		{"zero quantity", "23-01-15-14-30|MKT|TDRP|buy|AAPL|0|150|-1500", "non-zero number"},
		{"negative price", "23-01-15-14-30|MKT|TDRP|buy|AAPL|10|-150|-1500", "non-negative number"},
		{"non-numeric balance", "23-01-15-14-30|MKT|TDRP|buy|AAPL|10|150|oops", "must be a number"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			csv := "DATETIME|TYPE|PLATFORM|ACTION|SYMBOL|QUANTITY|PRICE|BALANCE\n" + tc.row + "\n"
			report, err := Validate(strings.NewReader(csv))
			if err != nil {
				t.Fatal(err)
			}
			if report.CanProceed() {
				t.Fatal("file with errors must not proceed")
			}
			found := false
			for _, issue := range report.Errors {
				if strings.Contains(issue.Msg, tc.want) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", report.Errors, tc.want)
			}
		})
	}
}

func TestValidate_SignConsistencyWarnings(t *testing.T) {
	csv := `DATETIME|TYPE|PLATFORM|ACTION|SYMBOL|QUANTITY|PRICE|BALANCE
23-01-15-14-30|MKT|TDRP|buy|AAPL|10|150|1500
23-02-15-14-30|MKT|TDRP|sel|AAPL|5|160|-800
`
	report, err := Validate(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	// Sign violations warn but never block.
	if !report.CanProceed() {
		t.Fatalf("sign warnings must not block; errors: %v", report.Errors)
	}
	if len(report.Warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(report.Warnings), report.Warnings)
	}
	if !strings.Contains(report.Warnings[0].Msg, "positive balance") {
		t.Errorf("warning 0 = %v", report.Warnings[0])
	}
	if !strings.Contains(report.Warnings[1].Msg, "negative balance") {
		t.Errorf("warning 1 = %v", report.Warnings[1])
	}
}

func TestValidate_DuplicateDetection(t *testing.T) {
	csv := `DATETIME|TYPE|PLATFORM|ACTION|SYMBOL|QUANTITY|PRICE|BALANCE
23-01-15-14-30|MKT|TDRP|buy|AAPL|10|150|-1500
23-01-15-14-30|MKT|TDRP|buy|AAPL|10|150|-1500
`
	report, err := Validate(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, w := range report.Warnings {
		if strings.Contains(w.Msg, "duplicate of row 2") {
			found = true
		}
	}
	if !found {
		t.Errorf("duplicate not reported: %v", report.Warnings)
	}
	// Duplicates still load; deciding what to do with them is the user's call.
	if len(report.Rows) != 2 {
		t.Errorf("got %d rows, want 2", len(report.Rows))
	}
}

func TestValidate_MissingHeaderWarns(t *testing.T) {
	csv := "23-01-15-14-30|MKT|TDRP|buy|AAPL|10|150|-1500\n23-01-16-14-30|MKT|TDRP|buy|MSFT|5|200|-1000\n"
	report, err := Validate(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Warnings) == 0 || !strings.Contains(report.Warnings[0].Msg, "no header") {
		t.Errorf("missing header not warned: %v", report.Warnings)
	}
	if len(report.Rows) != 2 {
		t.Errorf("first line must be treated as data, got %d rows", len(report.Rows))
	}
}

func TestValidate_EmptyFile(t *testing.T) {
	report, err := Validate(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if report.CanProceed() {
		t.Error("empty file must not proceed")
	}
	if len(report.Errors) != 1 {
		t.Errorf("errors = %v, want one file-level error", report.Errors)
	}
}
