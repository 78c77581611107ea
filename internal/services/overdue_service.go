package services

import (
	"context"
	"log"
	"time"
)

type OverdueTaskStore interface {
	MarkOverdue(before time.Time) (int64, error)
	CountOpen() (int64, error)
}

// OverdueService periodically flags open tasks whose due date has passed and
// emits a pending-work digest to the log when email delivery is enabled.
type OverdueService struct {
	tasks    OverdueTaskStore
	settings IntakeSettingsStore
	location *time.Location
	interval time.Duration
}

func NewOverdueService(tasks OverdueTaskStore, settings IntakeSettingsStore, location *time.Location) *OverdueService {
	if location == nil {
		location = time.Local
	}
	return &OverdueService{
		tasks:    tasks,
		settings: settings,
		location: location,
		interval: time.Hour,
	}
}

func (service *OverdueService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(service.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := service.RunOnce(time.Now().In(service.location)); err != nil {
					log.Printf("overdue sweep failed: %v", err)
				}
			}
		}
	}()
}

// RunOnce performs one sweep: tasks due before today become Overdue. Returns
// how many tasks were flagged.
func (service *OverdueService) RunOnce(now time.Time) (int64, error) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	flagged, err := service.tasks.MarkOverdue(startOfDay)
	if err != nil {
		return 0, err
	}

	settings, err := service.settings.LoadOrInit()
	if err != nil {
		return flagged, err
	}
	if settings.EmailEnabled {
		open, err := service.tasks.CountOpen()
		if err != nil {
			return flagged, err
		}
		log.Printf("task digest (%s at %s): %d open tasks, %d newly overdue",
			settings.EmailFrequency, settings.DeliveryTime, open, flagged)
	}
	return flagged, nil
}
