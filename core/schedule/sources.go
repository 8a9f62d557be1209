package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/ygoas29/fieldway/core/model"
)

// ErrVendorNotFound and ErrServiceNotFound signal a caller bug (an unknown
// id) and propagate as hard errors, unlike business outcomes such as a day
// without availability.
var (
	ErrVendorNotFound  = errors.New("vendor not found")
	ErrServiceNotFound = errors.New("service not found")
)

// VendorDirectory exposes the vendor account data the engine consumes.
type VendorDirectory interface {
	Vendor(ctx context.Context, id string) (model.Vendor, error)
	// Windows returns the vendor's recurring availability windows for all
	// weekdays.
	Windows(ctx context.Context, vendorID string) ([]model.AvailabilityWindow, error)
}

// ServiceCatalog resolves a service id to its fixed duration.
type ServiceCatalog interface {
	Service(ctx context.Context, id string) (model.Service, error)
}

// CalendarSource returns a vendor's calendar entries for a date. The engine
// treats the result as a read-only snapshot.
type CalendarSource interface {
	Entries(ctx context.Context, vendorID string, date time.Time) ([]model.CalendarEntry, error)
}
