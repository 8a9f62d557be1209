package fixture

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ygoas29/fieldway/core/model"
	"github.com/ygoas29/fieldway/core/schedule"
)

// WindowDef declares one weekly availability window in a fixture file.
type WindowDef struct {
	Weekday                string  `yaml:"weekday"`
	Start                  string  `yaml:"start"`
	End                    string  `yaml:"end"`
	Location               string  `yaml:"location"`
	ServiceRadiusKm        float64 `yaml:"service_radius_km"`
	MaxTravelMinutes       int     `yaml:"max_travel_minutes"`
	PreferredBufferMinutes int     `yaml:"preferred_buffer_minutes"`
}

// VendorDef declares one vendor with its windows.
type VendorDef struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Location string      `yaml:"location"`
	Windows  []WindowDef `yaml:"windows"`
}

// ServiceDef declares one bookable service.
type ServiceDef struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	DurationMinutes int    `yaml:"duration_minutes"`
}

// EntryDef declares one calendar entry.
type EntryDef struct {
	ID                     string `yaml:"id"`
	VendorID               string `yaml:"vendor_id"`
	Location               string `yaml:"location"`
	ScheduledStart         string `yaml:"scheduled_start"`
	ServiceDurationMinutes int    `yaml:"service_duration_minutes"`
	TravelTimeToMinutes    int    `yaml:"travel_to_minutes"`
	TravelTimeFromMinutes  int    `yaml:"travel_from_minutes"`
	BufferAfterMinutes     int    `yaml:"buffer_after_minutes"`
	Status                 string `yaml:"status"`
}

// File is the root of a fixture document.
type File struct {
	Vendors  []VendorDef  `yaml:"vendors"`
	Services []ServiceDef `yaml:"services"`
	Entries  []EntryDef   `yaml:"entries"`
}

// Store holds the parsed fixture data and serves as the vendor directory,
// service catalog and calendar source in fixture-backed deployments.
type Store struct {
	vendors  map[string]model.Vendor
	windows  map[string][]model.AvailabilityWindow
	services map[string]model.Service
	entries  map[string][]model.CalendarEntry
}

// Load reads and parses a fixture file.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return build(f)
}

func build(f File) (*Store, error) {
	s := &Store{
		vendors:  make(map[string]model.Vendor),
		windows:  make(map[string][]model.AvailabilityWindow),
		services: make(map[string]model.Service),
		entries:  make(map[string][]model.CalendarEntry),
	}
	for _, v := range f.Vendors {
		s.vendors[v.ID] = model.Vendor{ID: v.ID, Name: v.Name, Location: v.Location}
		for _, w := range v.Windows {
			window, err := w.toModel(v)
			if err != nil {
				return nil, fmt.Errorf("vendor %s: %w", v.ID, err)
			}
			s.windows[v.ID] = append(s.windows[v.ID], window)
		}
	}
	for _, def := range f.Services {
		svc := model.Service{ID: def.ID, Name: def.Name, DurationMinutes: def.DurationMinutes}
		if err := svc.Validate(); err != nil {
			return nil, fmt.Errorf("service %s: %w", def.ID, err)
		}
		s.services[def.ID] = svc
	}
	for _, def := range f.Entries {
		entry, err := def.toModel()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", def.ID, err)
		}
		s.entries[def.VendorID] = append(s.entries[def.VendorID], entry)
	}
	return s, nil
}

func (w WindowDef) toModel(v VendorDef) (model.AvailabilityWindow, error) {
	day, err := parseWeekday(w.Weekday)
	if err != nil {
		return model.AvailabilityWindow{}, err
	}
	start, err := parseClock(w.Start)
	if err != nil {
		return model.AvailabilityWindow{}, fmt.Errorf("start: %w", err)
	}
	end, err := parseClock(w.End)
	if err != nil {
		return model.AvailabilityWindow{}, fmt.Errorf("end: %w", err)
	}
	location := w.Location
	if location == "" {
		location = v.Location
	}
	window := model.AvailabilityWindow{
		VendorID:               v.ID,
		Weekday:                day,
		StartMinute:            start,
		EndMinute:              end,
		Location:               location,
		ServiceRadiusKm:        w.ServiceRadiusKm,
		MaxTravelMinutes:       w.MaxTravelMinutes,
		PreferredBufferMinutes: w.PreferredBufferMinutes,
	}
	if err := window.Validate(); err != nil {
		return model.AvailabilityWindow{}, err
	}
	return window, nil
}

func (e EntryDef) toModel() (model.CalendarEntry, error) {
	start, err := time.Parse(time.RFC3339, e.ScheduledStart)
	if err != nil {
		return model.CalendarEntry{}, fmt.Errorf("scheduled_start: %w", err)
	}
	status := model.EntryStatus(e.Status)
	if status == "" {
		status = model.StatusConfirmed
	}
	return model.CalendarEntry{
		ID:                     e.ID,
		VendorID:               e.VendorID,
		Location:               e.Location,
		ScheduledStart:         start,
		ServiceDurationMinutes: e.ServiceDurationMinutes,
		TravelTimeToMinutes:    e.TravelTimeToMinutes,
		TravelTimeFromMinutes:  e.TravelTimeFromMinutes,
		BufferAfterMinutes:     e.BufferAfterMinutes,
		Status:                 status,
	}, nil
}

// Vendor implements schedule.VendorDirectory.
func (s *Store) Vendor(_ context.Context, id string) (model.Vendor, error) {
	v, ok := s.vendors[id]
	if !ok {
		return model.Vendor{}, fmt.Errorf("%s: %w", id, schedule.ErrVendorNotFound)
	}
	return v, nil
}

// Windows implements schedule.VendorDirectory.
func (s *Store) Windows(_ context.Context, vendorID string) ([]model.AvailabilityWindow, error) {
	if _, ok := s.vendors[vendorID]; !ok {
		return nil, fmt.Errorf("%s: %w", vendorID, schedule.ErrVendorNotFound)
	}
	return s.windows[vendorID], nil
}

// Service implements schedule.ServiceCatalog.
func (s *Store) Service(_ context.Context, id string) (model.Service, error) {
	svc, ok := s.services[id]
	if !ok {
		return model.Service{}, fmt.Errorf("%s: %w", id, schedule.ErrServiceNotFound)
	}
	return svc, nil
}

// Entries implements schedule.CalendarSource, returning the entries whose
// scheduled start falls on the given date.
func (s *Store) Entries(_ context.Context, vendorID string, date time.Time) ([]model.CalendarEntry, error) {
	var out []model.CalendarEntry
	y, m, d := date.Date()
	for _, e := range s.entries[vendorID] {
		ey, em, ed := e.ScheduledStart.Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out, nil
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("unknown weekday %q", s)
	}
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}
