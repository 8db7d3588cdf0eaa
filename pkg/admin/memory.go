package admin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/shouni/gemini-thumbnail-kit/pkg/domain"
)

// MemoryStore はプロセス内で完結する Store 実装です。再起動で内容は失われます。
type MemoryStore struct {
	mu       sync.RWMutex
	payments map[string]domain.PaymentRequest
	users    map[string]domain.User
}

// NewMemoryStore は空の MemoryStore を作成します。
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		payments: make(map[string]domain.PaymentRequest),
		users:    make(map[string]domain.User),
	}
}

// NewDemoMemoryStore はデモデータを投入済みの MemoryStore を作成します。
func NewDemoMemoryStore() *MemoryStore {
	s := NewMemoryStore()
	for _, p := range DemoPayments() {
		s.payments[p.ID] = p
	}
	for _, u := range DemoUsers() {
		s.users[u.ID] = u
	}
	return s
}

func (s *MemoryStore) ListPayments(ctx context.Context, status domain.PaymentStatus) ([]domain.PaymentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PaymentRequest, 0, len(s.payments))
	for _, p := range s.payments {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	sortPayments(out)
	return out, nil
}

func (s *MemoryStore) GetPayment(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (s *MemoryStore) CreatePayment(ctx context.Context, p domain.PaymentRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.payments[p.ID]; exists {
		return fmt.Errorf("payment %s already exists", p.ID)
	}
	s.payments[p.ID] = p
	return nil
}

func (s *MemoryStore) UpdatePaymentStatus(ctx context.Context, id string, from, to domain.PaymentStatus) (*domain.PaymentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.payments[id]
	if !ok {
		return nil, fmt.Errorf("payment %s: %w", id, ErrNotFound)
	}
	if p.Status != from {
		return nil, fmt.Errorf("payment %s is %s: %w", id, p.Status, ErrAlreadyDecided)
	}
	p.Status = to
	s.payments[id] = p
	return &p, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sortUsers(out)
	return out, nil
}

func (s *MemoryStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	return &u, nil
}

func (s *MemoryStore) FindUserByName(ctx context.Context, name string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Name == name {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user named %q: %w", name, ErrNotFound)
}

func (s *MemoryStore) ModifyUser(ctx context.Context, id string, fn func(*domain.User)) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	fn(&u)
	u.ID = id
	s.users[id] = u
	return &u, nil
}

// sortPayments は新しい申請を先頭に並べます。同日なら ID 順です。
func sortPayments(ps []domain.PaymentRequest) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].Date.Equal(ps[j].Date) {
			return ps[i].Date.After(ps[j].Date)
		}
		return ps[i].ID < ps[j].ID
	})
}

func sortUsers(us []domain.User) {
	sort.Slice(us, func(i, j int) bool { return us[i].ID < us[j].ID })
}

var _ Store = (*MemoryStore)(nil)
