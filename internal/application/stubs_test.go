package application

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/domain/repository"
)

var pageOne = repository.Page{Limit: 1}

// In-memory repository stubs. They implement just enough semantics for
// the service tests: id-keyed storage, call counting on the read paths,
// and merge-free updates (the patch replaces non-zero fields).

type stubProductRepo struct {
	mu        sync.Mutex
	items     map[string]*entity.Product
	findCalls int
	allCalls  int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: map[string]*entity.Product{}}
}

func (s *stubProductRepo) put(p *entity.Product) *entity.Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	cp := *p
	s.items[p.ID] = &cp
	return &cp
}

func (s *stubProductRepo) FindByID(_ context.Context, id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findCalls++
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) FindAll(_ context.Context, _ *repository.Page) ([]*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.allCalls++
	out := []*entity.Product{}
	for _, p := range s.items {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubProductRepo) FindBy(_ context.Context, _ *entity.Product, _ *repository.Page) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Count(_ context.Context, _ *entity.Product) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.items)), nil
}

func (s *stubProductRepo) Create(_ context.Context, p *entity.Product) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(p), nil
}

func (s *stubProductRepo) Update(_ context.Context, id string, patch *entity.Product) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Title != "" {
		p.Title = patch.Title
	}
	if patch.Status != "" {
		p.Status = patch.Status
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) Delete(_ context.Context, id string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.items, id)
	return p, nil
}

func (s *stubProductRepo) DeleteMany(_ context.Context, _ *entity.Product) (int64, error) {
	return 0, nil
}

func (s *stubProductRepo) FindBySeller(_ context.Context, _ string, _ *repository.Page) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) FindByCategory(_ context.Context, _ string, _ *repository.Page) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Search(_ context.Context, _ string, _ *repository.Page) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) FindByStatus(_ context.Context, _ entity.ProductStatus, _ *repository.Page) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) FindByLocation(_ context.Context, _ entity.GeoLocation, _ *repository.Page) ([]*entity.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) UpdateStatus(_ context.Context, id string, status entity.ProductStatus) (*entity.Product, error) {
	return s.Update(context.Background(), id, &entity.Product{Status: status})
}

func (s *stubProductRepo) AddImage(_ context.Context, id string, url string, isPrimary bool) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if isPrimary {
		for i := range p.Images {
			p.Images[i].IsPrimary = false
		}
	}
	p.Images = append(p.Images, entity.ImageMetadata{URL: url, IsPrimary: isPrimary})
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) RemoveImage(_ context.Context, id string, url string) (*entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	kept := p.Images[:0]
	for _, img := range p.Images {
		if img.URL != url {
			kept = append(kept, img)
		}
	}
	p.Images = kept
	if len(p.Images) > 0 {
		hasPrimary := false
		for _, img := range p.Images {
			if img.IsPrimary {
				hasPrimary = true
				break
			}
		}
		if !hasPrimary {
			p.Images[0].IsPrimary = true
		}
	}
	cp := *p
	return &cp, nil
}

type stubUserRepo struct {
	mu    sync.Mutex
	items map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{items: map[string]*entity.User{}}
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) FindAll(_ context.Context, _ *repository.Page) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.User{}
	for _, u := range s.items {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (s *stubUserRepo) FindBy(_ context.Context, _ *entity.User, _ *repository.Page) ([]*entity.User, error) {
	return nil, nil
}

func (s *stubUserRepo) Count(_ context.Context, _ *entity.User) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *stubUserRepo) Create(_ context.Context, u *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	s.items[u.ID] = &cp
	out := cp
	return &out, nil
}

func (s *stubUserRepo) Update(_ context.Context, id string, patch *entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != "" {
		u.Name = patch.Name
	}
	cp := *u
	return &cp, nil
}

func (s *stubUserRepo) Delete(_ context.Context, id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.items, id)
	return u, nil
}

func (s *stubUserRepo) DeleteMany(_ context.Context, _ *entity.User) (int64, error) {
	return 0, nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) FindByRole(_ context.Context, role entity.UserRole, _ *repository.Page) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.User{}
	for _, u := range s.items {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *stubUserRepo) UpdatePassword(_ context.Context, id string, hash string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u.PasswordHash = hash
	cp := *u
	return &cp, nil
}

type stubOrderRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{items: map[string]*entity.Order{}}
}

func (s *stubOrderRepo) FindByID(_ context.Context, id string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderRepo) FindAll(_ context.Context, _ *repository.Page) ([]*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) FindBy(_ context.Context, _ *entity.Order, _ *repository.Page) ([]*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) Count(_ context.Context, _ *entity.Order) (int64, error) {
	return int64(len(s.items)), nil
}

func (s *stubOrderRepo) Create(_ context.Context, o *entity.Order) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	cp := *o
	s.items[o.ID] = &cp
	out := cp
	return &out, nil
}

func (s *stubOrderRepo) Update(_ context.Context, id string, patch *entity.Order) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.PaymentID != "" {
		o.PaymentID = patch.PaymentID
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderRepo) Delete(_ context.Context, id string) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(s.items, id)
	return o, nil
}

func (s *stubOrderRepo) DeleteMany(_ context.Context, _ *entity.Order) (int64, error) {
	return 0, nil
}

func (s *stubOrderRepo) FindByBuyer(_ context.Context, _ string, _ *repository.Page) ([]*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) FindBySeller(_ context.Context, _ string, _ *repository.Page) ([]*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) FindByStatus(_ context.Context, _ entity.OrderStatus, _ *repository.Page) ([]*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) FindByProduct(_ context.Context, _ string, _ *repository.Page) ([]*entity.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Status = status
	cp := *o
	return &cp, nil
}

// stubPublisher records published notification jobs.
type stubPublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (s *stubPublisher) PublishJSON(_ context.Context, body any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, body)
	return nil
}
