package ledger_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/financas-casa/internal/domain/entity"
	domledger "github.com/jhoicas/financas-casa/internal/domain/ledger"
	"github.com/jhoicas/financas-casa/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var errBoom = errors.New("boom")

// memStore es una BD en memoria con las mismas reglas que el adaptador postgres.
type memStore struct {
	mu     sync.Mutex
	rows   []entity.Movement
	limits []entity.Limit
	nextID int64

	// failOnCreate hace fallar la n-ésima inserción (1-based); 0 = nunca.
	failOnCreate int
	creates      int
}

func newMemStore(rows ...entity.Movement) *memStore {
	s := &memStore{}
	for i := range rows {
		s.insert(rows[i])
	}
	return s
}

func (s *memStore) insert(m entity.Movement) int64 {
	s.nextID++
	m.ID = s.nextID
	m.Date = entity.DateOnly(m.Date)
	s.rows = append(s.rows, m)
	return m.ID
}

func (s *memStore) snapshot() ([]entity.Movement, []entity.Limit, int64) {
	rows := append([]entity.Movement(nil), s.rows...)
	limits := append([]entity.Limit(nil), s.limits...)
	return rows, limits, s.nextID
}

func (s *memStore) all() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.Movement(nil), s.rows...)
}

func (s *memStore) byKind(kind entity.Kind) []entity.Movement {
	var out []entity.Movement
	for _, m := range s.all() {
		if m.Kind == kind {
			out = append(out, m)
		}
	}
	return out
}

// memTxRunner restaura el estado si fn falla.
type memTxRunner struct {
	store *memStore
}

func (r *memTxRunner) Run(ctx context.Context, fn func(repository.MovementRepository, repository.LimitRepository) error) error {
	r.store.mu.Lock()
	rows, limits, next := r.store.snapshot()
	r.store.mu.Unlock()

	if err := fn(&memRepo{store: r.store}, &memLimitRepo{store: r.store}); err != nil {
		r.store.mu.Lock()
		r.store.rows, r.store.limits, r.store.nextID = rows, limits, next
		r.store.mu.Unlock()
		return err
	}
	return nil
}

type memRepo struct {
	store *memStore
}

type memLimitRepo struct {
	store *memStore
}

func (r *memRepo) Create(_ context.Context, m *entity.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.creates++
	if r.store.failOnCreate > 0 && r.store.creates == r.store.failOnCreate {
		return errBoom
	}
	m.ID = r.store.insert(*m)
	return nil
}

func (r *memRepo) InsertIfAbsent(_ context.Context, m *entity.Movement) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := m.Key()
	for i := range r.store.rows {
		if r.store.rows[i].Key() == key {
			return false, nil
		}
	}
	m.ID = r.store.insert(*m)
	return true, nil
}

func (r *memRepo) DistinctMonths(_ context.Context) ([]entity.Month, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	seen := map[entity.Month]bool{}
	var out []entity.Month
	for _, m := range r.store.rows {
		month := entity.MonthOf(m.Date)
		if !seen[month] {
			seen[month] = true
			out = append(out, month)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, nil
}

func (r *memRepo) ListByMonth(_ context.Context, month entity.Month) ([]entity.Movement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Movement
	for _, m := range r.store.rows {
		if month.Contains(m.Date) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memRepo) RecurringTemplates(_ context.Context) ([]domledger.Template, error) {
	r.store.mu.Lock()
	rows := append([]entity.Movement(nil), r.store.rows...)
	r.store.mu.Unlock()
	return domledger.TemplatesFromMovements(rows), nil
}

func (r *memLimitRepo) Upsert(_ context.Context, l *entity.Limit) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.limits {
		cur := &r.store.limits[i]
		if cur.MonthStart.Equal(l.MonthStart) && cur.Person == l.Person {
			cur.Amount = l.Amount
			l.ID = cur.ID
			return nil
		}
	}
	r.store.nextID++
	l.ID = r.store.nextID
	r.store.limits = append(r.store.limits, *l)
	return nil
}

func (r *memLimitRepo) ListByMonth(_ context.Context, month entity.Month) ([]entity.Limit, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []entity.Limit
	for _, l := range r.store.limits {
		if l.Month() == month {
			out = append(out, l)
		}
	}
	return out, nil
}

// failingRepo falla en DistinctMonths (visor).
type failingRepo struct {
	memRepo
}

func (r *failingRepo) DistinctMonths(context.Context) ([]entity.Month, error) {
	return nil, errBoom
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
