package repository

import (
	"cmp"
	"context"
	"equiplend/internal/domains/reservation/model"
	"equiplend/shared/constant"
	gDto "equiplend/shared/dto"
	"maps"
	"slices"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[int64]model.Reservation
	nextID  int64
}

// NewMemory returns a process local store. Atomic sections are serialized
// by a single lock and their writes are applied only on success.
func NewMemory() Reservation {
	return &memoryStore{
		records: map[int64]model.Reservation{},
		nextID:  1,
	}
}

func compareReservations(a, b model.Reservation) int {
	if c := a.Start.Compare(b.Start); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}

func collect(records map[int64]model.Reservation, keep func(model.Reservation) bool) []model.Reservation {
	res := []model.Reservation{}

	for _, record := range records {
		if keep(record) {
			res = append(res, record.Clone())
		}
	}

	slices.SortFunc(res, compareReservations)

	return res
}

func holding(item string) func(model.Reservation) bool {
	return func(r model.Reservation) bool {
		return item == constant.Empty || r.HasItem(item)
	}
}

func (m *memoryStore) Get(_ context.Context, id int64) (model.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return model.Reservation{}, ErrNotFound
	}

	return record.Clone(), nil
}

func (m *memoryStore) ListByEquipment(_ context.Context, item string) ([]model.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return collect(m.records, holding(item)), nil
}

func (m *memoryStore) ListAll(_ context.Context, params gDto.QueryParams, equipment string) ([]model.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := collect(m.records, holding(equipment))

	if params.Limit <= 0 {
		return res, nil
	}

	offset := 0
	if params.Page > 0 {
		offset = (params.Page - 1) * params.Limit
	}

	if offset >= len(res) {
		return []model.Reservation{}, nil
	}

	return res[offset:min(offset+params.Limit, len(res))], nil
}

func (m *memoryStore) Count(_ context.Context, equipment string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(collect(m.records, holding(equipment))), nil
}

func (m *memoryStore) ListOverlapping(_ context.Context, interval model.Interval) ([]model.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return collect(m.records, func(r model.Reservation) bool {
		return model.Overlaps(r.Interval(), interval)
	}), nil
}

func (m *memoryStore) Atomic(ctx context.Context, _ []string, fn func(ctx context.Context, tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	staged := &memoryTx{
		records: maps.Clone(m.records),
		nextID:  m.nextID,
	}

	if err := fn(ctx, staged); err != nil {
		return err
	}

	m.records = staged.records
	m.nextID = staged.nextID

	return nil
}

// memoryTx works on a private copy of the records. The caller holds the store lock.
type memoryTx struct {
	records map[int64]model.Reservation
	nextID  int64
}

func (t *memoryTx) Get(_ context.Context, id int64) (model.Reservation, error) {
	record, ok := t.records[id]
	if !ok {
		return model.Reservation{}, ErrNotFound
	}

	return record.Clone(), nil
}

func (t *memoryTx) ListByEquipment(_ context.Context, item string) ([]model.Reservation, error) {
	return collect(t.records, holding(item)), nil
}

func (t *memoryTx) Insert(_ context.Context, record model.Reservation) (int64, error) {
	now := time.Now()

	record = record.Clone()
	record.ID = t.nextID
	record.CreatedAt = now
	record.ModifiedAt = now

	t.records[record.ID] = record
	t.nextID++

	return record.ID, nil
}

func (t *memoryTx) Update(_ context.Context, id int64, record model.Reservation) error {
	current, ok := t.records[id]
	if !ok {
		return ErrNotFound
	}

	record = record.Clone()
	record.ID = id
	record.CreatedAt = current.CreatedAt
	record.ModifiedAt = time.Now()

	t.records[id] = record

	return nil
}

func (t *memoryTx) Delete(_ context.Context, id int64) error {
	if _, ok := t.records[id]; !ok {
		return ErrNotFound
	}

	delete(t.records, id)

	return nil
}
