package history

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/pavankontham/smart-maps/internal/models"
)

// fakeRepo is an in-memory stand-in for the document store. It emulates the
// store's observable behavior: the optimized query applies equality clauses,
// orders by the server timestamp descending, and caps the result; the basic
// query returns the owner's records unordered; deletes of unknown IDs
// succeed. Setting missingIndex makes the optimized query fail the way the
// store does when the composite index is absent.
type fakeRepo struct {
	records []*models.SearchRecord
	nextID  int

	clock             time.Time
	pendingTimestamps bool // leave CreatedAt zero, as before server materialization

	missingIndex bool
	optimizedErr error
	basicErr     error

	optimizedCalls int
	basicCalls     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clock: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (f *fakeRepo) tick() time.Time {
	f.clock = f.clock.Add(time.Minute)
	return f.clock
}

func (f *fakeRepo) Insert(_ context.Context, record *models.SearchRecord) (string, error) {
	f.nextID++
	stored := *record
	stored.ID = fmt.Sprintf("rec-%d", f.nextID)
	if !f.pendingTimestamps {
		stored.CreatedAt = f.tick()
	}
	f.records = append(f.records, &stored)
	return stored.ID, nil
}

func (f *fakeRepo) ListOptimized(_ context.Context, ownerID string, filter models.HistoryFilter, limit int) ([]*models.SearchRecord, error) {
	f.optimizedCalls++
	if f.optimizedErr != nil {
		return nil, f.optimizedErr
	}
	if f.missingIndex {
		return nil, fmt.Errorf("rpc error: %w", models.ErrMissingIndex)
	}

	var matched []*models.SearchRecord
	for _, r := range f.records {
		if r.OwnerID == ownerID && filter.Matches(r) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (f *fakeRepo) ListByOwner(_ context.Context, ownerID string) ([]*models.SearchRecord, error) {
	f.basicCalls++
	if f.basicErr != nil {
		return nil, f.basicErr
	}
	var matched []*models.SearchRecord
	for _, r := range f.records {
		if r.OwnerID == ownerID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (f *fakeRepo) FindByID(_ context.Context, recordID string) (*models.SearchRecord, error) {
	for _, r := range f.records {
		if r.ID == recordID {
			return r, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeRepo) Delete(_ context.Context, recordID string) error {
	for i, r := range f.records {
		if r.ID == recordID {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil // deleting a missing document is a no-op
}

type fakeEmailSender struct {
	sent []string // recipients
	err  error
}

func (f *fakeEmailSender) SendEmail(_ context.Context, to, _, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

func saveRecord(t *testing.T, svc *Service, owner string, req models.SaveSearchRequest) *models.SearchRecord {
	t.Helper()
	record, err := svc.Save(context.Background(), owner, owner+"@example.com", req)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	return record
}

func recordIDs(records []*models.SearchRecord) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}

func TestSaveAppliesDefaults(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	record := saveRecord(t, svc, "user-a", models.SaveSearchRequest{
		StartingAddress: "Kayamkulam",
		Destination:     "Karunagappalli",
	})

	if record.ID == "" {
		t.Error("expected a record ID from the store")
	}
	if record.RouteType != models.RouteTypeFastest {
		t.Errorf("expected default route type %q, got %q", models.RouteTypeFastest, record.RouteType)
	}
	if record.VehicleType != models.VehicleTypeCar {
		t.Errorf("expected default vehicle type %q, got %q", models.VehicleTypeCar, record.VehicleType)
	}
	if record.ClientDate == "" || record.ClientTime == "" {
		t.Error("expected client date/time to be recorded at save")
	}
}

func TestSaveThenListReturnsNewestFirst(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	saveRecord(t, svc, "user-a", models.SaveSearchRequest{
		StartingAddress: "Kayamkulam",
		Destination:     "Karunagappalli",
		VehicleType:     models.VehicleTypeCar,
		RouteType:       models.RouteTypeFastest,
	})

	records, err := svc.List(context.Background(), "user-a", models.HistoryFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected at least one record")
	}
	if records[0].Destination != "Karunagappalli" {
		t.Errorf("expected newest record first, got destination %q", records[0].Destination)
	}
}

func TestListScopedToOwner(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	saveRecord(t, svc, "user-a", models.SaveSearchRequest{StartingAddress: "A1", Destination: "B1"})
	saveRecord(t, svc, "user-b", models.SaveSearchRequest{StartingAddress: "A2", Destination: "B2"})

	for _, useFallback := range []bool{false, true} {
		repo.missingIndex = useFallback
		records, err := svc.List(context.Background(), "user-a", models.HistoryFilter{})
		if err != nil {
			t.Fatalf("List (fallback=%v) failed: %v", useFallback, err)
		}
		for _, r := range records {
			if r.OwnerID != "user-a" {
				t.Errorf("List (fallback=%v) leaked record owned by %q", useFallback, r.OwnerID)
			}
		}
	}
}

func TestListOrderedByCreationDescending(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	for i := 0; i < 5; i++ {
		saveRecord(t, svc, "user-a", models.SaveSearchRequest{
			StartingAddress: "Start",
			Destination:     fmt.Sprintf("Dest %d", i),
		})
	}

	records, err := svc.List(context.Background(), "user-a", models.HistoryFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i := 1; i < len(records); i++ {
		if records[i].CreatedAt.After(records[i-1].CreatedAt) {
			t.Fatalf("records out of order at %d: %v before %v", i, records[i-1].CreatedAt, records[i].CreatedAt)
		}
	}
}

func TestListCapsAtMaxRecords(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	var oldest *models.SearchRecord
	for i := 0; i < MaxRecords+10; i++ {
		r := saveRecord(t, svc, "user-a", models.SaveSearchRequest{
			StartingAddress: "Start",
			Destination:     fmt.Sprintf("Dest %d", i),
		})
		if i == 0 {
			oldest = r
		}
	}

	records, err := svc.List(context.Background(), "user-a", models.HistoryFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != MaxRecords {
		t.Fatalf("expected %d records, got %d", MaxRecords, len(records))
	}
	for _, r := range records {
		if r.ID == oldest.ID {
			t.Error("the oldest record should have been excluded by the cap")
		}
	}
}

func TestListVehicleFilter(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	saveRecord(t, svc, "user-x", models.SaveSearchRequest{StartingAddress: "A", Destination: "B", VehicleType: models.VehicleTypeCar})
	saveRecord(t, svc, "user-x", models.SaveSearchRequest{StartingAddress: "A", Destination: "C", VehicleType: models.VehicleTypeBicycle})
	saveRecord(t, svc, "user-x", models.SaveSearchRequest{StartingAddress: "A", Destination: "D", VehicleType: models.VehicleTypeCar})

	records, err := svc.List(context.Background(), "user-x", models.HistoryFilter{VehicleType: models.VehicleTypeCar})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 car records, got %d", len(records))
	}
	if records[0].Destination != "D" || records[1].Destination != "B" {
		t.Errorf("expected [D, B] most recent first, got [%s, %s]", records[0].Destination, records[1].Destination)
	}
	for _, r := range records {
		if r.VehicleType != models.VehicleTypeCar {
			t.Errorf("filter leaked vehicle type %q", r.VehicleType)
		}
	}
}

func TestListFallbackOnMissingIndex(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	saveRecord(t, svc, "user-z", models.SaveSearchRequest{StartingAddress: "A", Destination: "B", RouteType: models.RouteTypeEcoFriendly})
	saveRecord(t, svc, "user-z", models.SaveSearchRequest{StartingAddress: "A", Destination: "C", RouteType: models.RouteTypeFastest})
	saveRecord(t, svc, "user-z", models.SaveSearchRequest{StartingAddress: "A", Destination: "D", RouteType: models.RouteTypeEcoFriendly})

	repo.missingIndex = true
	records, err := svc.List(context.Background(), "user-z", models.HistoryFilter{RouteType: models.RouteTypeEcoFriendly})
	if err != nil {
		t.Fatalf("List should succeed via fallback, got: %v", err)
	}
	if repo.basicCalls != 1 {
		t.Errorf("expected exactly one basic query, got %d", repo.basicCalls)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 eco_friendly records, got %d", len(records))
	}
	if records[0].Destination != "D" || records[1].Destination != "B" {
		t.Errorf("expected [D, B] most recent first, got [%s, %s]", records[0].Destination, records[1].Destination)
	}
}

func TestListPathsAreObservationallyEquivalent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	vehicles := []string{models.VehicleTypeCar, models.VehicleTypeBicycle, models.VehicleTypeHybrid}
	for i := 0; i < 60; i++ {
		saveRecord(t, svc, "user-a", models.SaveSearchRequest{
			StartingAddress: "Start",
			Destination:     fmt.Sprintf("Dest %d", i),
			VehicleType:     vehicles[i%len(vehicles)],
		})
	}

	filters := []models.HistoryFilter{
		{},
		{VehicleType: models.VehicleTypeCar},
		{VehicleType: models.VehicleTypeBicycle, RouteType: models.RouteTypeFastest},
	}
	for _, filter := range filters {
		repo.missingIndex = false
		optimized, err := svc.List(context.Background(), "user-a", filter)
		if err != nil {
			t.Fatalf("optimized List failed: %v", err)
		}

		repo.missingIndex = true
		fallback, err := svc.List(context.Background(), "user-a", filter)
		if err != nil {
			t.Fatalf("fallback List failed: %v", err)
		}

		optIDs, fbIDs := recordIDs(optimized), recordIDs(fallback)
		if len(optIDs) != len(fbIDs) {
			t.Fatalf("filter %+v: optimized returned %d records, fallback %d", filter, len(optIDs), len(fbIDs))
		}
		for i := range optIDs {
			if optIDs[i] != fbIDs[i] {
				t.Fatalf("filter %+v: paths diverge at %d: %s vs %s", filter, i, optIDs[i], fbIDs[i])
			}
		}
	}
}

func TestListFallbackOrdersByClientTimestampWhenServerPending(t *testing.T) {
	repo := newFakeRepo()
	repo.pendingTimestamps = true
	svc := NewService(repo, nil)

	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Hour)
		svc.now = func() time.Time { return at }
		saveRecord(t, svc, "user-a", models.SaveSearchRequest{
			StartingAddress: "Start",
			Destination:     fmt.Sprintf("Dest %d", i),
		})
	}

	repo.missingIndex = true
	records, err := svc.List(context.Background(), "user-a", models.HistoryFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	want := []string{"Dest 2", "Dest 1", "Dest 0"}
	for i, r := range records {
		if r.Destination != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], r.Destination)
		}
	}
}

func TestListPropagatesOtherStoreErrors(t *testing.T) {
	repo := newFakeRepo()
	repo.optimizedErr = errors.New("permission denied")
	svc := NewService(repo, nil)

	if _, err := svc.List(context.Background(), "user-a", models.HistoryFilter{}); err == nil {
		t.Fatal("expected a non-missing-index store error to propagate")
	}
	if repo.basicCalls != 0 {
		t.Errorf("fallback must not run for errors other than missing index, ran %d times", repo.basicCalls)
	}
}

func TestListEmptyIsSuccess(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	records, err := svc.List(context.Background(), "user-without-records", models.HistoryFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty result, got %d records", len(records))
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	record := saveRecord(t, svc, "user-a", models.SaveSearchRequest{StartingAddress: "A", Destination: "B"})

	if err := svc.Delete(context.Background(), record.ID); err != nil {
		t.Fatalf("first Delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), record.ID); err != nil {
		t.Fatalf("second Delete should be a no-op success, got: %v", err)
	}
}

func TestDeleteAll(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	// More records than the listing cap: DeleteAll must enumerate them all.
	for i := 0; i < MaxRecords+5; i++ {
		saveRecord(t, svc, "user-a", models.SaveSearchRequest{StartingAddress: "A", Destination: fmt.Sprintf("D%d", i)})
	}
	saveRecord(t, svc, "user-b", models.SaveSearchRequest{StartingAddress: "A", Destination: "Keep"})

	deleted, err := svc.DeleteAll(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if deleted != MaxRecords+5 {
		t.Errorf("expected %d deletions, got %d", MaxRecords+5, deleted)
	}

	records, err := svc.List(context.Background(), "user-a", models.HistoryFilter{})
	if err != nil {
		t.Fatalf("List after DeleteAll failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records after DeleteAll, got %d", len(records))
	}

	others, err := svc.List(context.Background(), "user-b", models.HistoryFilter{})
	if err != nil {
		t.Fatalf("List for other owner failed: %v", err)
	}
	if len(others) != 1 {
		t.Errorf("DeleteAll must not touch other owners, left %d records", len(others))
	}
}

func TestDeleteAllWithZeroRecords(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	deleted, err := svc.DeleteAll(context.Background(), "user-without-records")
	if err != nil {
		t.Fatalf("DeleteAll on empty owner failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("expected 0 deletions, got %d", deleted)
	}
}

func TestShare(t *testing.T) {
	repo := newFakeRepo()
	sender := &fakeEmailSender{}
	svc := NewService(repo, sender)

	record := saveRecord(t, svc, "user-a", models.SaveSearchRequest{StartingAddress: "A", Destination: "B"})

	if err := svc.Share(context.Background(), "user-a", "user-a@example.com", record.ID); err != nil {
		t.Fatalf("Share failed: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "user-a@example.com" {
		t.Errorf("expected one email to the owner, got %v", sender.sent)
	}

	// A record owned by someone else must read as not found.
	err := svc.Share(context.Background(), "user-b", "user-b@example.com", record.ID)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound for foreign record, got %v", err)
	}
}

func TestShareWithoutEmailConfigured(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	record := saveRecord(t, svc, "user-a", models.SaveSearchRequest{StartingAddress: "A", Destination: "B"})

	err := svc.Share(context.Background(), "user-a", "user-a@example.com", record.ID)
	if !errors.Is(err, models.ErrEmailNotConfigured) {
		t.Errorf("expected ErrEmailNotConfigured, got %v", err)
	}
}
