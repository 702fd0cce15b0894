package businessday

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultCalendar(t *testing.T) {
	t.Parallel()

	cal := DefaultCalendar()
	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		date time.Time
		name string
	}{
		{time.Date(2026, time.November, 3, 23, 30, 0, 0, tokyo), "文化の日"},
		{time.Date(2026, time.November, 4, 0, 0, 0, 0, tokyo), ""},
		{time.Date(2026, time.May, 6, 0, 0, 0, 0, tokyo), "休日"},
		{time.Date(2026, time.September, 22, 0, 0, 0, 0, tokyo), "国民の休日"},
		{time.Date(2029, time.April, 29, 0, 0, 0, 0, tokyo), "昭和の日"},
		{time.Date(2029, time.April, 30, 0, 0, 0, 0, tokyo), "休日"},
		{time.Date(2030, time.March, 20, 0, 0, 0, 0, tokyo), "春分の日"},
		{time.Date(2031, time.January, 13, 0, 0, 0, 0, tokyo), "成人の日"},
		{time.Date(2031, time.January, 6, 0, 0, 0, 0, tokyo), ""},
	}
	for _, tt := range tests {
		name, ok := cal.Name(tt.date)
		if name != tt.name || ok != (tt.name != "") {
			t.Errorf("Name(%s) = %q, %v, want %q", tt.date.Format(dateLayout), name, ok, tt.name)
		}
		if cal.IsHoliday(tt.date) != ok {
			t.Errorf("IsHoliday(%s) disagrees with Name", tt.date.Format(dateLayout))
		}
	}

	if !cal.Covers(2029) || cal.Covers(MaxYear+1) {
		t.Error("unexpected year coverage")
	}
	if cal.ExtraDays() != 0 {
		t.Errorf("ExtraDays() = %d", cal.ExtraDays())
	}
}

func TestJapanCalendar_Concurrent(t *testing.T) {
	t.Parallel()

	cal := NewJapanCalendar()
	done := make(chan bool)
	for i := 0; i < 4; i++ {
		go func(year int) {
			done <- cal.IsHoliday(time.Date(year, time.March, 20, 0, 0, 0, 0, time.UTC))
		}(2026 + i)
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}

func TestParseCalendar_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "holidays: [:"},
		{"bad date", "holidays:\n  - { date: \"2026/01/01\", name: x }\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseCalendar([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewCalendar_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "holidays.yaml")
	content := "holidays:\n  - { date: \"2030-06-10\", name: \"社内休日\" }\n  - { date: \"2030-11-03\", name: \"創立記念日\" }\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cal, err := NewCalendar(path)
	if err != nil {
		t.Fatalf("NewCalendar() error = %v", err)
	}
	if cal.ExtraDays() != 2 || !cal.IsHoliday(time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Error("extra days not loaded")
	}
	if name, _ := cal.Name(time.Date(2030, 11, 3, 0, 0, 0, 0, time.UTC)); name != "創立記念日" {
		t.Errorf("extra day should win over public holiday name, got %q", name)
	}
	if !cal.IsHoliday(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("public holidays still apply with an override file")
	}

	if _, err := NewCalendar(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
