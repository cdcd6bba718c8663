package service

import (
	"context"
	"sync"
	"time"

	"controle-financeiro/internal/extraction"
	"controle-financeiro/internal/models"
	"controle-financeiro/internal/recurrence"
	"controle-financeiro/internal/repository"

	"github.com/google/uuid"
)

type memUsers struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[uuid.UUID]*models.User{}} }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return repository.ErrConflict
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

type memCategories struct {
	created    []*models.Category
	seeded     []string
	seedUserID uuid.UUID
	renameErr  error
}

func (m *memCategories) Create(_ context.Context, c *models.Category) error {
	for _, existing := range m.created {
		if existing.UserID == c.UserID && existing.Name == c.Name {
			return repository.ErrConflict
		}
	}
	m.created = append(m.created, c)
	return nil
}

func (m *memCategories) CreateMissing(_ context.Context, userID uuid.UUID, names []string) (int64, error) {
	m.seedUserID = userID
	m.seeded = append(m.seeded, names...)
	return int64(len(names)), nil
}

func (m *memCategories) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Category, error) {
	var out []*models.Category
	for _, c := range m.created {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCategories) Rename(context.Context, uuid.UUID, uuid.UUID, string) error {
	return m.renameErr
}

func (m *memCategories) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	return repository.ErrNotFound
}

type memPurchases struct {
	mu   sync.Mutex
	rows []*models.Purchase
	err  error
}

func (m *memPurchases) Create(_ context.Context, p *models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, p)
	return nil
}

func (m *memPurchases) ListByMonth(_ context.Context, userID uuid.UUID, month, year int) ([]*models.Purchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var out []*models.Purchase
	for _, p := range m.rows {
		if p.UserID == userID && int(p.Date.Month()) == month && p.Date.Year() == year {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPurchases) Delete(_ context.Context, userID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.rows {
		if p.ID == id && p.UserID == userID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memObligations struct {
	mu   sync.Mutex
	rows []*models.Obligation
}

func (m *memObligations) Create(_ context.Context, o *models.Obligation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, o)
	return nil
}

func (m *memObligations) Update(_ context.Context, o *models.Obligation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.rows {
		if existing.ID == o.ID && existing.UserID == o.UserID && existing.Kind == o.Kind {
			o.CreatedAt = existing.CreatedAt
			m.rows[i] = o
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memObligations) Delete(_ context.Context, userID, id uuid.UUID, kind recurrence.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, o := range m.rows {
		if o.ID == id && o.UserID == userID && o.Kind == kind {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memObligations) ListByUser(_ context.Context, userID uuid.UUID, kinds ...recurrence.Kind) ([]*models.Obligation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.Obligation
	for _, o := range m.rows {
		if o.UserID != userID {
			continue
		}
		if len(kinds) == 0 {
			out = append(out, o)
			continue
		}
		for _, k := range kinds {
			if o.Kind == k {
				out = append(out, o)
				break
			}
		}
	}
	return out, nil
}

type memDocuments struct {
	docs      []*models.Document
	purchases []*models.Purchase
	err       error
}

func (m *memDocuments) SaveExtraction(_ context.Context, doc *models.Document, purchases []*models.Purchase) error {
	if m.err != nil {
		return m.err
	}
	m.docs = append(m.docs, doc)
	m.purchases = append(m.purchases, purchases...)
	return nil
}

func (m *memDocuments) ListByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*models.Document, error) {
	var out []*models.Document
	for _, d := range m.docs {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

type stubExtractor struct {
	items    *extraction.ItemsResult
	image    extraction.Result
	err      error
	urlCalls int
	lastType string
}

func (s *stubExtractor) FromURL(context.Context, string) (*extraction.ItemsResult, error) {
	s.urlCalls++
	return s.items, s.err
}

func (s *stubExtractor) FromImage(_ context.Context, _ []byte, contentType string) (extraction.Result, error) {
	s.lastType = contentType
	return s.image, s.err
}

func (s *stubExtractor) FromAccessKey(input string) (*extraction.AccessKeyResult, error) {
	key, err := extraction.NormalizeAccessKey(input)
	if err != nil {
		return nil, err
	}
	return &extraction.AccessKeyResult{Key: key, LookupURL: "https://lookup.example/?p=" + key}, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }
