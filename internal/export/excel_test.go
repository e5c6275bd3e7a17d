package export

import (
	"strings"
	"testing"
)

func TestSheetName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "Grade 8A -- 2026-03-02", want: "Grade 8A -- 2026-03-02"},
		{name: "empty", raw: "", want: "Sheet1"},
		{name: "illegal chars", raw: "U14 Rugby: home/away?", want: "U14 Rugby- home-away-"},
		{name: "too long", raw: strings.Repeat("x", 40), want: strings.Repeat("x", 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SheetName(tt.raw); got != tt.want {
				t.Errorf("SheetName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestExportWritesWorkbook(t *testing.T) {
	svc := NewService(t.TempDir())

	path, err := svc.Export("Roster", []string{"Learner", "Status"}, [][]interface{}{
		{"N Dlamini", "present"},
		{"S Naidoo", "absent"},
	})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.HasSuffix(path, ".xlsx") {
		t.Errorf("Export() path = %q, want .xlsx suffix", path)
	}
}
