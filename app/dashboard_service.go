package app

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"evidencija/internal"
	"evidencija/internal/errors"
	"evidencija/models"
	"evidencija/ports"
)

// Dashboard messages shown instead of the map
const (
	MessageMissingSettings = "Nedostaju postavke korisnika. Ažurirajte Vaše postavke."
	MessageNoGeocoder      = "Prikaz karte nije dostupan."
	MessageUnknownAddress  = "Nije moguće odrediti položaj upisanih adresa. Molimo provjerite unesene adrese i ažurirajte ih."
)

// DashboardView is the profile summary with the commute cross-check
type DashboardView struct {
	Settings *models.Settings
	Message  string

	Home *ports.Place
	Work *ports.Place

	Route      *ports.Route
	RouteKm    decimal.NullDecimal
	ReportedKm decimal.NullDecimal
	// Mismatch is set when both distances are known and differ
	Mismatch bool
}

// DashboardService builds the dashboard
type DashboardService struct {
	settings ports.SettingsRepository
	geocoder ports.Geocoder
	logger   *internal.Logger
}

// NewDashboardService creates the service. geocoder may be nil.
func NewDashboardService(settings ports.SettingsRepository, geocoder ports.Geocoder, logger *internal.Logger) *DashboardService {
	return &DashboardService{settings: settings, geocoder: geocoder, logger: logger.With("dashboard")}
}

// Overview loads settings, geocodes home and work concurrently and compares
// the driving distance with the reported one. Problems with the addresses or
// the routing service end up in Message, not in the error.
func (s *DashboardService) Overview(ctx context.Context, userID uuid.UUID) (*DashboardView, error) {
	settings, err := s.settings.GetSettings(ctx, userID)
	if errors.Is(err, errors.CodeNotFound) {
		return &DashboardView{Message: MessageMissingSettings}, nil
	}
	if err != nil {
		return nil, err
	}

	view := &DashboardView{Settings: settings, ReportedKm: settings.DistanceToWork}
	if s.geocoder == nil {
		view.Message = MessageNoGeocoder
		return view, nil
	}

	home, work, err := s.locate(ctx, settings.HomeAddress, settings.WorkAddress)
	if err != nil {
		s.logger.Warn("geocoding failed for %s: %v", userID, err)
	}
	if home == nil || work == nil {
		view.Message = MessageUnknownAddress
		return view, nil
	}
	view.Home, view.Work = home, work

	route, err := s.geocoder.Directions(ctx, home.Point, work.Point, "")
	if err != nil {
		s.logger.Warn("routing failed for %s: %v", userID, err)
		return view, nil
	}
	view.Route = route
	routeKm := decimal.NewFromFloat(route.DistanceKm).Round(1)
	view.RouteKm = decimal.NewNullDecimal(routeKm)
	view.Mismatch = view.ReportedKm.Valid && !view.ReportedKm.Decimal.Equal(routeKm)
	return view, nil
}

// locate geocodes both addresses in parallel, keeping the best hit of each
func (s *DashboardService) locate(ctx context.Context, homeAddress, workAddress string) (*ports.Place, *ports.Place, error) {
	var home, work *ports.Place
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.first(gctx, homeAddress)
		home = p
		return err
	})
	g.Go(func() error {
		p, err := s.first(gctx, workAddress)
		work = p
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return home, work, nil
}

func (s *DashboardService) first(ctx context.Context, address string) (*ports.Place, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, nil
	}
	places, err := s.geocoder.Geocode(ctx, address)
	if err != nil || len(places) == 0 {
		return nil, err
	}
	return &places[0], nil
}
