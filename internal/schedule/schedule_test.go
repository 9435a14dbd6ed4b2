package schedule

import (
	"reflect"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      []string
		wantError bool
	}{
		{"default schedule", "09:00, 21:00", []string{"09:00", "21:00"}, false},
		{"unsorted input", "21:00,09:00", []string{"09:00", "21:00"}, false},
		{"duplicates collapsed", "09:00, 09:00", []string{"09:00"}, false},
		{"single time", "06:30", []string{"06:30"}, false},
		{"empty", "", nil, true},
		{"only commas", " , , ", nil, true},
		{"invalid time", "09:00, 25:00", nil, true},
		{"not a time", "breakfast", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Parse(tt.raw)
			if tt.wantError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if !reflect.DeepEqual(s.Times(), tt.want) {
				t.Errorf("Times() = %v, want %v", s.Times(), tt.want)
			}
		})
	}
}

func TestNext(t *testing.T) {
	s, err := Parse("09:00, 21:00")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"before first slot", day.Add(8 * time.Hour), day.Add(9 * time.Hour)},
		{"between slots", day.Add(12 * time.Hour), day.Add(21 * time.Hour)},
		{"exactly on a slot", day.Add(9 * time.Hour), day.Add(21 * time.Hour)},
		{"after last slot", day.Add(22 * time.Hour), day.AddDate(0, 0, 1).Add(9 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Next(tt.now); !got.Equal(tt.want) {
				t.Errorf("Next(%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}
