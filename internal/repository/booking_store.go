package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/Domenick1991/spacetravel/internal/domain"
	"go.uber.org/zap"
)

// DefaultBookingsKey is the storage key the booking list is kept under.
const DefaultBookingsKey = "bookings"

var ErrBookingNotFound = errors.New("booking not found")

// BlobKV stores opaque blobs by key. Load returns nil, nil for a missing key.
type BlobKV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte) error
}

type BookingStore interface {
	Append(ctx context.Context, record domain.BookingRecord) error
	List(ctx context.Context) ([]domain.BookingRecord, error)
	// Cancel and Confirm report whether the status actually moved.
	Cancel(ctx context.Context, id string) (*domain.BookingRecord, bool, error)
	Confirm(ctx context.Context, id string) (*domain.BookingRecord, bool, error)
}

// BlobBookingStore keeps every booking in one JSON array under a single key and
// rewrites the whole array on each change. The mutex serializes read-modify-write
// within this process only; another process sharing the key can still overwrite it.
type BlobBookingStore struct {
	kv              BlobKV
	key             string
	log             *zap.Logger
	cancelConfirmed bool

	mu sync.Mutex
}

type BlobStoreOption func(*BlobBookingStore)

func WithKey(key string) BlobStoreOption {
	return func(s *BlobBookingStore) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(log *zap.Logger) BlobStoreOption {
	return func(s *BlobBookingStore) {
		s.log = log
	}
}

// WithCancelConfirmed lets Cancel also end confirmed bookings.
func WithCancelConfirmed(allow bool) BlobStoreOption {
	return func(s *BlobBookingStore) {
		s.cancelConfirmed = allow
	}
}

func NewBlobBookingStore(kv BlobKV, opts ...BlobStoreOption) *BlobBookingStore {
	s := &BlobBookingStore{
		kv:  kv,
		key: DefaultBookingsKey,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(zap.String("repository", "booking"), zap.String("key", s.key))
	return s
}

func (s *BlobBookingStore) Append(ctx context.Context, record domain.BookingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, record)
	if err := s.save(ctx, records); err != nil {
		return fmt.Errorf("append booking %s: %w", record.ID, err)
	}
	return nil
}

func (s *BlobBookingStore) List(ctx context.Context) ([]domain.BookingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// Cancel moves a pending booking to cancelled. Bookings in any other status are
// returned unchanged.
func (s *BlobBookingStore) Cancel(ctx context.Context, id string) (*domain.BookingRecord, bool, error) {
	return s.transition(ctx, id, domain.BookingStatusCancelled, func(current domain.BookingStatus) bool {
		return current == domain.BookingStatusPending ||
			(s.cancelConfirmed && current == domain.BookingStatusConfirmed)
	})
}

func (s *BlobBookingStore) Confirm(ctx context.Context, id string) (*domain.BookingRecord, bool, error) {
	return s.transition(ctx, id, domain.BookingStatusConfirmed, func(current domain.BookingStatus) bool {
		return current == domain.BookingStatusPending
	})
}

func (s *BlobBookingStore) transition(ctx context.Context, id string, to domain.BookingStatus, allowed func(domain.BookingStatus) bool) (*domain.BookingRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}

	i := slices.IndexFunc(records, func(r domain.BookingRecord) bool { return r.ID == id })
	if i < 0 {
		return nil, false, fmt.Errorf("booking %s: %w", id, ErrBookingNotFound)
	}

	if !allowed(records[i].Status) {
		current := records[i]
		return &current, false, nil
	}

	records[i].Status = to
	if err := s.save(ctx, records); err != nil {
		return nil, false, fmt.Errorf("update booking %s to %s: %w", id, to, err)
	}

	updated := records[i]
	return &updated, true, nil
}

func (s *BlobBookingStore) load(ctx context.Context) ([]domain.BookingRecord, error) {
	blob, err := s.kv.Load(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}
	if len(blob) == 0 {
		return []domain.BookingRecord{}, nil
	}

	var records []domain.BookingRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		s.log.Warn("Stored bookings are unreadable, treating as empty", zap.Error(err), zap.Int("bytes", len(blob)))
		return []domain.BookingRecord{}, nil
	}
	if records == nil {
		records = []domain.BookingRecord{}
	}
	return records, nil
}

func (s *BlobBookingStore) save(ctx context.Context, records []domain.BookingRecord) error {
	blob, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Save(ctx, s.key, blob)
}

var _ BookingStore = (*BlobBookingStore)(nil)
