package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/pavankontham/smart-maps/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// searchHistoryCollection is the document collection holding saved searches.
const searchHistoryCollection = "searchHistory"

// RepositoryInterface defines the store primitives the history engine
// needs: an append-only insert with a server-assigned timestamp, the
// optimized equality+order+limit query, the unindexed owner-only query,
// a point lookup, and a per-document delete. The optimized query reports
// a missing composite index as models.ErrMissingIndex so the service can
// tell that condition apart from every other store failure.
type RepositoryInterface interface {
	Insert(ctx context.Context, record *models.SearchRecord) (string, error)
	ListOptimized(ctx context.Context, ownerID string, filter models.HistoryFilter, limit int) ([]*models.SearchRecord, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.SearchRecord, error)
	FindByID(ctx context.Context, recordID string) (*models.SearchRecord, error)
	Delete(ctx context.Context, recordID string) error
}

// Repository implements RepositoryInterface against Firestore.
type Repository struct {
	client *firestore.Client
}

// NewRepository creates a new history repository.
func NewRepository(client *firestore.Client) RepositoryInterface {
	return &Repository{client: client}
}

func (r *Repository) collection() *firestore.CollectionRef {
	return r.client.Collection(searchHistoryCollection)
}

// Insert appends one record. The store assigns both the document ID and the
// authoritative creation timestamp (via the serverTimestamp tag on
// SearchRecord.CreatedAt, which is zero at this point).
func (r *Repository) Insert(ctx context.Context, record *models.SearchRecord) (string, error) {
	ref, _, err := r.collection().Add(ctx, record)
	if err != nil {
		return "", fmt.Errorf("repository.Insert: %w", err)
	}
	return ref.ID, nil
}

// ListOptimized issues the single-query path: owner equality, each filter
// clause as an equality, descending order on the creation timestamp, and a
// result cap. The store only serves this when a composite index covering
// (userId, [filter fields], timestamp) exists; when it does not, the query
// fails with FailedPrecondition and that is surfaced as ErrMissingIndex.
func (r *Repository) ListOptimized(ctx context.Context, ownerID string, filter models.HistoryFilter, limit int) ([]*models.SearchRecord, error) {
	q := r.collection().Query.Where("userId", "==", ownerID)
	for _, clause := range filter.Clauses() {
		q = q.Where(clause.Field, "==", clause.Value)
	}
	q = q.OrderBy("timestamp", firestore.Desc).Limit(limit)

	records, err := collectRecords(q.Documents(ctx))
	if err != nil {
		if status.Code(err) == codes.FailedPrecondition {
			return nil, fmt.Errorf("repository.ListOptimized: %w: %v", models.ErrMissingIndex, err)
		}
		return nil, fmt.Errorf("repository.ListOptimized: %w", err)
	}
	return records, nil
}

// ListByOwner issues the basic query: a single owner equality, no order, no
// cap. It needs no composite index, so it is always servable.
func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]*models.SearchRecord, error) {
	q := r.collection().Query.Where("userId", "==", ownerID)
	records, err := collectRecords(q.Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("repository.ListByOwner: %w", err)
	}
	return records, nil
}

// FindByID retrieves a single record by its document ID.
func (r *Repository) FindByID(ctx context.Context, recordID string) (*models.SearchRecord, error) {
	snap, err := r.collection().Doc(recordID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repository.FindByID: %w", err)
	}
	return snapshotToRecord(snap)
}

// Delete removes one record by ID. Deleting a document that does not exist
// is a successful no-op in Firestore, which keeps deletes idempotent under
// partial retries.
func (r *Repository) Delete(ctx context.Context, recordID string) error {
	if _, err := r.collection().Doc(recordID).Delete(ctx); err != nil {
		return fmt.Errorf("repository.Delete: %w", err)
	}
	return nil
}

func collectRecords(it *firestore.DocumentIterator) ([]*models.SearchRecord, error) {
	defer it.Stop()

	var records []*models.SearchRecord
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		record, err := snapshotToRecord(snap)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

func snapshotToRecord(snap *firestore.DocumentSnapshot) (*models.SearchRecord, error) {
	var record models.SearchRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", snap.Ref.ID, err)
	}
	record.ID = snap.Ref.ID
	return &record, nil
}
