package store

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAddAndGetEntity(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddEntity(Entity{
		Name:            "Test Band",
		Locations:       "Seattle, CA",
		URLs:            "https://band.example/tour",
		UseTicketmaster: true,
		UseWebScrape:    true,
	})
	if err != nil {
		t.Fatalf("AddEntity() error: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected generated ID")
	}
	if added.Category != "music" {
		t.Errorf("category = %q, want default music", added.Category)
	}

	got, err := s.GetEntity(added.ID)
	if err != nil {
		t.Fatalf("GetEntity() error: %v", err)
	}
	if got.Name != "Test Band" || got.Locations != "Seattle, CA" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if !got.LastChecked.IsZero() {
		t.Errorf("new entity should have zero LastChecked, got %v", got.LastChecked)
	}
}

func TestAddEntity_RequiresName(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddEntity(Entity{}); err == nil {
		t.Error("expected error for empty name")
	}
}

func TestListEntities_ActiveOnly(t *testing.T) {
	s := newTestStore(t)

	active, _ := s.AddEntity(Entity{Name: "Active Act"})
	held, _ := s.AddEntity(Entity{Name: "Held Act", OnHold: true})

	all, err := s.ListEntities(false)
	if err != nil {
		t.Fatalf("ListEntities(false) error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entities, got %d", len(all))
	}

	activeOnly, err := s.ListEntities(true)
	if err != nil {
		t.Fatalf("ListEntities(true) error: %v", err)
	}
	if len(activeOnly) != 1 {
		t.Fatalf("expected 1 active entity, got %d", len(activeOnly))
	}
	if activeOnly[0].ID != active.ID {
		t.Errorf("expected %s, got %s", active.ID, activeOnly[0].ID)
	}
	_ = held
}

func TestSetOnHold(t *testing.T) {
	s := newTestStore(t)

	e, _ := s.AddEntity(Entity{Name: "Test Band"})

	if err := s.SetOnHold(e.ID, true); err != nil {
		t.Fatalf("SetOnHold() error: %v", err)
	}
	got, _ := s.GetEntity(e.ID)
	if !got.OnHold {
		t.Error("entity should be on hold")
	}

	if err := s.SetOnHold(e.ID, false); err != nil {
		t.Fatalf("SetOnHold() error: %v", err)
	}
	got, _ = s.GetEntity(e.ID)
	if got.OnHold {
		t.Error("entity should be active again")
	}

	if err := s.SetOnHold("no-such-id", true); err == nil {
		t.Error("expected error for unknown entity")
	}
}

func TestDeleteEntity(t *testing.T) {
	s := newTestStore(t)

	e, _ := s.AddEntity(Entity{Name: "Test Band"})
	if err := s.DeleteEntity(e.ID); err != nil {
		t.Fatalf("DeleteEntity() error: %v", err)
	}
	if _, err := s.GetEntity(e.ID); err == nil {
		t.Error("expected error fetching deleted entity")
	}
	if err := s.DeleteEntity(e.ID); err == nil {
		t.Error("expected error deleting twice")
	}
}

func TestUpdateLastChecked(t *testing.T) {
	s := newTestStore(t)

	e, _ := s.AddEntity(Entity{Name: "Test Band"})
	checkedAt := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

	if err := s.UpdateLastChecked(e.ID, checkedAt); err != nil {
		t.Fatalf("UpdateLastChecked() error: %v", err)
	}

	got, _ := s.GetEntity(e.ID)
	if !got.LastChecked.Equal(checkedAt) {
		t.Errorf("LastChecked = %v, want %v", got.LastChecked, checkedAt)
	}
}

func TestFindEntityByName(t *testing.T) {
	s := newTestStore(t)

	e, _ := s.AddEntity(Entity{Name: "Test Band"})

	got, err := s.FindEntityByName("test band")
	if err != nil {
		t.Fatalf("FindEntityByName() error: %v", err)
	}
	if got.ID != e.ID {
		t.Errorf("ID = %s, want %s", got.ID, e.ID)
	}

	if _, err := s.FindEntityByName("Unknown"); err == nil {
		t.Error("expected error for unknown name")
	}
}

func TestSettings_DefaultAndRoundTrip(t *testing.T) {
	s := newTestStore(t)

	cfg, err := s.Settings()
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if cfg.Schedule != DefaultSchedule {
		t.Errorf("schedule = %q, want %q", cfg.Schedule, DefaultSchedule)
	}

	if err := s.SaveSettings(Settings{Schedule: "08:00, 20:30"}); err != nil {
		t.Fatalf("SaveSettings() error: %v", err)
	}
	cfg, _ = s.Settings()
	if cfg.Schedule != "08:00, 20:30" {
		t.Errorf("schedule = %q after save", cfg.Schedule)
	}
}
