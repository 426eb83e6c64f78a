package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"truckpro/internal/models"
)

// driverCacheEntry is the last reading served successfully to a driver, kept
// so a transient feed outage degrades to stale data instead of an error.
type driverCacheEntry struct {
	reading models.TruckReading
	at      time.Time
}

// Service owns the telemetry stores and their watchers and assembles the
// role-specific dashboard views.
type Service struct {
	client *Client
	fleet  *Store
	trips  *Store

	fleetWatcher *Watcher
	tripsWatcher *Watcher

	mu         sync.Mutex
	lastDriver map[string]driverCacheEntry

	log logrus.FieldLogger
}

func NewService(client *Client, rotateEvery, refreshEvery time.Duration, log logrus.FieldLogger) *Service {
	s := &Service{
		client:     client,
		fleet:      NewStore(),
		trips:      NewStore(),
		lastDriver: make(map[string]driverCacheEntry),
		log:        log,
	}
	s.fleetWatcher = NewWatcher(s.fleet, s.refreshFleet, rotateEvery, refreshEvery, log.WithField("store", "fleet"))
	s.tripsWatcher = NewWatcher(s.trips, s.refreshTrips, rotateEvery, refreshEvery, log.WithField("store", "trips"))
	return s
}

// Start refreshes both stores once and launches their tick loops.
func (s *Service) Start(ctx context.Context) {
	s.fleetWatcher.Start(ctx)
	s.tripsWatcher.Start(ctx)
}

// Stop halts both tick loops deterministically.
func (s *Service) Stop() {
	s.fleetWatcher.Stop()
	s.tripsWatcher.Stop()
}

// refreshFleet pulls the fleet-wide feed and swaps it in wholesale. The
// generation check discards the result when a competing refresh already
// replaced the dataset while this fetch was in flight.
func (s *Service) refreshFleet(ctx context.Context) error {
	gen := s.fleet.Generation()
	data, err := s.client.FetchFleet(ctx)
	if err != nil {
		return fmt.Errorf("service.refreshFleet: %w", err)
	}
	if !s.fleet.ReplaceAllIfGeneration(gen, data) {
		s.log.Debug("discarding stale fleet refresh")
	}
	return nil
}

// refreshTrips re-fetches the history of every truck a shipper has selected.
// A truck whose fetch fails keeps its previous sequence.
func (s *Service) refreshTrips(ctx context.Context) error {
	ids := s.trips.TruckIDs()
	var lastErr error
	for _, id := range ids {
		seq, err := s.client.FetchTruckHistory(ctx, id)
		if err != nil {
			s.log.WithError(err).WithField("truck_id", id).Warn("trip history refresh failed")
			lastErr = err
			continue
		}
		s.trips.ReplaceTruck(id, seq)
	}
	return lastErr
}

// FleetOverview builds the owner dashboard: every truck's cursor reading as
// a card with its derived warnings and priority, plus fleet-wide counters.
func (s *Service) FleetOverview(ctx context.Context) models.FleetOverviewResponse {
	snapshot := s.fleet.Snapshot()
	ids := s.fleet.TruckIDs()

	resp := models.FleetOverviewResponse{
		Trucks:      make([]models.TruckCardView, 0, len(ids)),
		LastRefresh: s.fleet.LastRefresh(),
	}
	for _, id := range ids {
		entry, ok := snapshot[id]
		if !ok {
			continue
		}
		resp.Trucks = append(resp.Trucks, models.TruckCardView{
			TruckID:  id,
			Reading:  entry.Reading,
			Position: entry.Position + 1,
			Total:    entry.Total,
			Warnings: Warnings(entry.Reading),
			Priority: string(ClassifyPriority(entry.Reading)),
		})
		resp.Stats.TotalTrucks++
		if entry.Reading.TripStatus == models.TripStatusActive {
			resp.Stats.ActiveTrips++
		}
		if HasMaintenanceAlert(entry.Reading) {
			resp.Stats.MaintenanceAlerts++
		}
	}
	return resp
}

// DriverView fetches the truck's latest reading and derives the driver-side
// health view. When the fetch fails but a previous reading was served, that
// reading comes back flagged stale instead of an error.
func (s *Service) DriverView(ctx context.Context, truckID string) (models.DriverDashboardResponse, error) {
	if truckID == "" {
		return models.DriverDashboardResponse{}, models.ErrTruckRequired
	}

	reading, err := s.client.FetchTruck(ctx, truckID)
	stale := false
	at := time.Now()
	if err != nil {
		s.mu.Lock()
		cached, ok := s.lastDriver[truckID]
		s.mu.Unlock()
		if !ok {
			return models.DriverDashboardResponse{}, err
		}
		s.log.WithError(err).WithField("truck_id", truckID).Warn("serving stale driver reading")
		reading, at, stale = cached.reading, cached.at, true
	} else {
		s.mu.Lock()
		s.lastDriver[truckID] = driverCacheEntry{reading: reading, at: at}
		s.mu.Unlock()
	}

	score := DrivingScore(reading)
	return models.DriverDashboardResponse{
		Reading:          reading,
		Warnings:         Warnings(reading),
		SuggestedActions: SuggestedActions(reading),
		DrivingScore:     score,
		ScoreTier:        ScoreTier(score),
		Stale:            stale,
		LastRefresh:      at,
	}, nil
}

// TripView serves the shipper's view of one truck's trip at its current
// cursor position. selecting loads (or reloads) the truck's history and
// rewinds its cursor, which is what a dropdown change does.
func (s *Service) TripView(ctx context.Context, truckID string, selecting bool) (models.TripViewResponse, error) {
	if truckID == "" {
		return models.TripViewResponse{}, models.ErrTruckRequired
	}

	if selecting || !s.trips.Contains(truckID) {
		seq, err := s.client.FetchTruckHistory(ctx, truckID)
		if err != nil {
			return models.TripViewResponse{}, err
		}
		s.trips.ReplaceTruck(truckID, seq)
	}

	entry, ok := s.trips.Current(truckID)
	if !ok {
		return models.TripViewResponse{}, models.ErrEmptyDataset
	}

	return models.TripViewResponse{
		TruckID:          truckID,
		Reading:          entry.Reading,
		Position:         entry.Position + 1,
		Total:            entry.Total,
		BackhaulDiscount: entry.Reading.BackhaulStatus == models.BackhaulNotUtilized,
		LastRefresh:      s.trips.LastRefresh(),
	}, nil
}

// RefreshFleet forces an immediate fleet refresh, the owner dashboard's
// refresh button.
func (s *Service) RefreshFleet(ctx context.Context) error {
	return s.refreshFleet(ctx)
}

// MaintenanceAlerts builds the triage rows for every truck whose current
// reading carries a textual alert or breaches a threshold, ordered most
// urgent first.
func (s *Service) MaintenanceAlerts() []models.MaintenanceAlert {
	snapshot := s.fleet.Snapshot()
	ids := s.fleet.TruckIDs()

	alerts := make([]models.MaintenanceAlert, 0, len(ids))
	for _, id := range ids {
		entry, ok := snapshot[id]
		if !ok {
			continue
		}
		r := entry.Reading
		if !HasMaintenanceAlert(r) && len(Warnings(r)) == 0 {
			continue
		}
		alert := r.MaintenanceAlerts
		if !HasMaintenanceAlert(r) {
			alert = "Preventive maintenance recommended"
		}
		action := r.SuggestedActions
		if action == "" || action == "None" {
			action = "Schedule routine check"
		}
		alerts = append(alerts, models.MaintenanceAlert{
			TruckID:         id,
			Driver:          r.DriverName,
			Alert:           alert,
			SuggestedAction: action,
			Priority:        string(ClassifyPriority(r)),
			Timestamp:       r.Timestamp,
		})
	}
	SortAlertsByPriority(alerts)
	return alerts
}

// DriverName resolves the driver currently associated with a truck from the
// fleet store.
func (s *Service) DriverName(truckID string) string {
	if entry, ok := s.fleet.Current(truckID); ok && entry.Reading.DriverName != "" {
		return entry.Reading.DriverName
	}
	return "Unknown Driver"
}
