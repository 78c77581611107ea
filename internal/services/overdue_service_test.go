package services

import (
	"testing"
	"time"

	"github.com/yhkwon/taskpilot/internal/models"
)

type stubOverdueTaskStore struct {
	flagged     int64
	open        int64
	markedAt    time.Time
	countCalled bool
}

func (stub *stubOverdueTaskStore) MarkOverdue(before time.Time) (int64, error) {
	stub.markedAt = before
	return stub.flagged, nil
}

func (stub *stubOverdueTaskStore) CountOpen() (int64, error) {
	stub.countCalled = true
	return stub.open, nil
}

type stubSettingsStore struct {
	settings models.Settings
}

func (stub *stubSettingsStore) LoadOrInit() (models.Settings, error) {
	return stub.settings, nil
}

func TestOverdueRunOnceSweepsBeforeStartOfDay(t *testing.T) {
	tasks := &stubOverdueTaskStore{flagged: 3, open: 7}
	settings := &stubSettingsStore{settings: models.Settings{EmailEnabled: true, EmailFrequency: "daily", DeliveryTime: "09:00 AM"}}
	service := NewOverdueService(tasks, settings, time.UTC)

	now := time.Date(2025, 3, 10, 16, 45, 0, 0, time.UTC)
	flagged, err := service.RunOnce(now)
	if err != nil {
		t.Fatalf("run once: %v", err)
	}
	if flagged != 3 {
		t.Fatalf("expected 3 flagged, got %d", flagged)
	}

	wantCutoff := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !tasks.markedAt.Equal(wantCutoff) {
		t.Fatalf("expected cutoff %v, got %v", wantCutoff, tasks.markedAt)
	}
	if !tasks.countCalled {
		t.Fatal("digest should count open tasks when email delivery is enabled")
	}
}

func TestOverdueRunOnceSkipsDigestWhenDisabled(t *testing.T) {
	tasks := &stubOverdueTaskStore{flagged: 0}
	settings := &stubSettingsStore{settings: models.Settings{EmailEnabled: false}}
	service := NewOverdueService(tasks, settings, time.UTC)

	if _, err := service.RunOnce(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if tasks.countCalled {
		t.Fatal("digest must not run when email delivery is disabled")
	}
}
