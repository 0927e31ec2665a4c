package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pavankontham/smart-maps/internal/models"
	"github.com/pavankontham/smart-maps/pkg/email"
)

// MaxRecords is the cap on how many records a listing returns.
const MaxRecords = 50

// ServiceInterface defines the history engine's contract. Callers must
// have an authenticated owner identity before invoking Save, List, or
// DeleteAll; the engine trusts the identity it is given.
type ServiceInterface interface {
	Save(ctx context.Context, ownerID, ownerEmail string, req models.SaveSearchRequest) (*models.SearchRecord, error)
	List(ctx context.Context, ownerID string, filter models.HistoryFilter) ([]*models.SearchRecord, error)
	Delete(ctx context.Context, recordID string) error
	DeleteAll(ctx context.Context, ownerID string) (int, error)
	Share(ctx context.Context, ownerID, recipient, recordID string) error
}

// Service implements the history engine on top of the store primitives.
type Service struct {
	repo     RepositoryInterface
	emailSvc email.ServiceInterface
	now      func() time.Time
}

// NewService creates a new history service. emailSvc may be nil, in which
// case sharing reports ErrEmailNotConfigured.
func NewService(repo RepositoryInterface, emailSvc email.ServiceInterface) *Service {
	return &Service{repo: repo, emailSvc: emailSvc, now: time.Now}
}

// Save appends one immutable record owned by ownerID. Enumerated fields
// default when absent (fastest route, car). The client-side date/time pair
// is recorded so the record can be ordered before the store's timestamp
// materializes.
func (s *Service) Save(ctx context.Context, ownerID, ownerEmail string, req models.SaveSearchRequest) (*models.SearchRecord, error) {
	now := s.now()
	record := &models.SearchRecord{
		OwnerID:          ownerID,
		OwnerEmail:       ownerEmail,
		StartingAddress:  req.StartingAddress,
		Destination:      req.Destination,
		DistanceText:     req.DistanceText,
		DurationText:     req.DurationText,
		RouteType:        req.RouteType,
		VehicleType:      req.VehicleType,
		AvoidTolls:       req.AvoidTolls,
		AvoidHighways:    req.AvoidHighways,
		CarbonEstimateKg: req.CarbonEstimateKg,
		EcoScore:         req.EcoScore,
		ClientDate:       now.Format("2006-01-02"),
		ClientTime:       now.Format("15:04:05"),
	}
	if record.RouteType == "" {
		record.RouteType = models.RouteTypeFastest
	}
	if record.VehicleType == "" {
		record.VehicleType = models.VehicleTypeCar
	}

	id, err := s.repo.Insert(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("service.Save: %w", err)
	}
	record.ID = id
	return record, nil
}

// List returns the owner's records, most recent first, capped at
// MaxRecords, optionally narrowed by equality filters. It first attempts
// the optimized store query; if and only if the store reports the missing
// composite index, it falls back exactly once to the basic query plus
// in-memory filtering. Both paths return the same records in the same
// order for any store state. Any other store error is propagated.
func (s *Service) List(ctx context.Context, ownerID string, filter models.HistoryFilter) ([]*models.SearchRecord, error) {
	records, err := s.repo.ListOptimized(ctx, ownerID, filter, MaxRecords)
	if err == nil {
		return records, nil
	}
	if !errors.Is(err, models.ErrMissingIndex) {
		return nil, fmt.Errorf("service.List: %w", err)
	}
	return s.listBasic(ctx, ownerID, filter)
}

// listBasic is the fallback path: fetch every record owned by ownerID with
// the unindexed query, then filter, order, and truncate in memory to match
// the optimized query's observable result exactly.
func (s *Service) listBasic(ctx context.Context, ownerID string, filter models.HistoryFilter) ([]*models.SearchRecord, error) {
	all, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("service.List fallback: %w", err)
	}

	matched := make([]*models.SearchRecord, 0, len(all))
	for _, record := range all {
		if filter.Matches(record) {
			matched = append(matched, record)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].EffectiveTimestamp().After(matched[j].EffectiveTimestamp())
	})

	if len(matched) > MaxRecords {
		matched = matched[:MaxRecords]
	}
	return matched, nil
}

// Delete removes one record by ID. Deleting an already-deleted or unknown
// ID succeeds; ownership is enforced by the store's access policy, which
// the caller relies on having verified upstream.
func (s *Service) Delete(ctx context.Context, recordID string) error {
	if err := s.repo.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("service.Delete: %w", err)
	}
	return nil
}

// DeleteAll removes every record owned by ownerID and returns how many
// were deleted. The enumeration is uncapped. There is no transactional
// wrapper: records saved concurrently with this call may survive it.
func (s *Service) DeleteAll(ctx context.Context, ownerID string) (int, error) {
	records, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("service.DeleteAll: %w", err)
	}

	deleted := 0
	for _, record := range records {
		if err := s.repo.Delete(ctx, record.ID); err != nil {
			return deleted, fmt.Errorf("service.DeleteAll: %w", err)
		}
		deleted++
	}
	return deleted, nil
}

// Share emails a summary of one saved search to the given recipient. The
// record must belong to ownerID; a record owned by someone else is reported
// as not found rather than revealing that it exists.
func (s *Service) Share(ctx context.Context, ownerID, recipient, recordID string) error {
	if s.emailSvc == nil {
		return models.ErrEmailNotConfigured
	}

	record, err := s.repo.FindByID(ctx, recordID)
	if err != nil {
		return fmt.Errorf("service.Share: %w", err)
	}
	if record.OwnerID != ownerID {
		return models.ErrNotFound
	}

	subject, text, html := email.RouteSummary(record)
	if err := s.emailSvc.SendEmail(ctx, recipient, subject, text, html); err != nil {
		return fmt.Errorf("service.Share: %w", err)
	}
	return nil
}
