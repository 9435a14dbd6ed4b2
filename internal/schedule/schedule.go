// Package schedule interprets the settings schedule string: a comma
// separated list of HH:MM times at which a batch check should run.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/tourwatch/tourwatch/internal/event"
)

// Schedule is a set of daily run times.
type Schedule struct {
	minutes []int // minutes after midnight, sorted ascending
}

// Parse builds a Schedule from a comma-separated list of HH:MM times.
func Parse(raw string) (*Schedule, error) {
	entries := event.SplitList(raw)
	if len(entries) == 0 {
		return nil, fmt.Errorf("schedule is empty")
	}

	seen := make(map[int]bool)
	minutes := make([]int, 0, len(entries))
	for _, entry := range entries {
		t, err := time.Parse("15:04", entry)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule time %q: %w", entry, err)
		}
		m := t.Hour()*60 + t.Minute()
		if seen[m] {
			continue
		}
		seen[m] = true
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	return &Schedule{minutes: minutes}, nil
}

// Next returns the first scheduled time strictly after now.
func (s *Schedule) Next(now time.Time) time.Time {
	nowMinutes := now.Hour()*60 + now.Minute()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, m := range s.minutes {
		if m > nowMinutes {
			return midnight.Add(time.Duration(m) * time.Minute)
		}
	}
	// All of today's slots have passed; first slot tomorrow.
	return midnight.AddDate(0, 0, 1).Add(time.Duration(s.minutes[0]) * time.Minute)
}

// Times returns the run times in HH:MM form, sorted.
func (s *Schedule) Times() []string {
	times := make([]string, 0, len(s.minutes))
	for _, m := range s.minutes {
		times = append(times, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return times
}
