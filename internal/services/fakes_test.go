package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"maintenance-system/internal/authz"
	"maintenance-system/internal/entities"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/types"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	adminCaller = authz.Caller{UserID: "admin-1", Username: "admin", FullName: "Administrador del Sistema", Role: entities.RoleAdmin}
	userCaller  = authz.Caller{UserID: "user-1", Username: "jperez", FullName: "Juan Pérez", Role: entities.RoleUser}
)

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.calls++
	return fn(nil)
}

type fakeEquipmentRepository struct {
	mu      sync.Mutex
	records []entities.Equipment
	getErr  error
}

func (r *fakeEquipmentRepository) GetAll(ctx context.Context) ([]entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := make([]entities.Equipment, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *fakeEquipmentRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.records {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepository) Create(ctx context.Context, tx pgx.Tx, e entities.Equipment) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// новые первыми, как ORDER BY created_at DESC
	r.records = append([]entities.Equipment{e}, r.records...)
	return &e, nil
}

func (r *fakeEquipmentRepository) Update(ctx context.Context, tx pgx.Tx, e entities.Equipment) (*entities.Equipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == e.ID {
			r.records[i] = e
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *fakeEquipmentRepository) get(id string) (entities.Equipment, bool) {
	e, err := r.FindByID(context.Background(), nil, id)
	if err != nil {
		return entities.Equipment{}, false
	}
	return *e, true
}

type fakeUserRepository struct {
	mu        sync.Mutex
	users     map[string]entities.User
	order     []string
	lastLogin map[string]time.Time
}

func newFakeUserRepository(users ...entities.User) *fakeUserRepository {
	r := &fakeUserRepository{users: map[string]entities.User{}, lastLogin: map[string]time.Time{}}
	for _, u := range users {
		r.users[u.ID] = u
		r.order = append(r.order, u.ID)
	}
	return r
}

func (r *fakeUserRepository) GetAll(ctx context.Context) ([]entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.users[id])
	}
	return out, nil
}

func (r *fakeUserRepository) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepository) Create(ctx context.Context, tx pgx.Tx, u entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, apperrors.NewValidationError("username", "имя пользователя уже используется")
		}
	}
	r.users[u.ID] = u
	r.order = append(r.order, u.ID)
	return &u, nil
}

func (r *fakeUserRepository) Update(ctx context.Context, tx pgx.Tx, u entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[u.ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	current.Email = u.Email
	current.FullName = u.FullName
	current.Role = u.Role
	current.IsActive = u.IsActive
	r.users[u.ID] = current
	return &current, nil
}

func (r *fakeUserRepository) UpdatePassword(ctx context.Context, tx pgx.Tx, id, hash string, state entities.PasswordState, changedAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.PasswordHash = hash
	u.PasswordState = state
	if changedAt != nil {
		u.PasswordChangedAt.SetValid(*changedAt)
	}
	r.users[id] = u
	return nil
}

func (r *fakeUserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.LastLogin.SetValid(at)
	r.users[id] = u
	r.lastLogin[id] = at
	return nil
}

func (r *fakeUserRepository) Delete(ctx context.Context, tx pgx.Tx, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeUserRepository) get(id string) (entities.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	return u, ok
}

type fakeCacheRepository struct {
	mu     sync.Mutex
	values map[string]string
	ttl    map[string]time.Duration
	setErr error
}

func newFakeCacheRepository() *fakeCacheRepository {
	return &fakeCacheRepository{values: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (c *fakeCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = fmt.Sprint(value)
	c.ttl[key] = expiration
	return nil
}

func (c *fakeCacheRepository) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (c *fakeCacheRepository) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		delete(c.ttl, k)
	}
	return nil
}

func (c *fakeCacheRepository) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCacheRepository) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; !ok {
		return false, nil
	}
	c.ttl[key] = expiration
	return true, nil
}

type fakeDashboardRepository struct {
	total   int
	groups  map[string][]types.DashboardCountByGroup
	recent  []entities.Equipment
	err     error
	columns []string
	mu      sync.Mutex
}

func (r *fakeDashboardRepository) GetTotal(ctx context.Context) (int, error) {
	return r.total, r.err
}

func (r *fakeDashboardRepository) GetCountByColumn(ctx context.Context, column string) ([]types.DashboardCountByGroup, error) {
	r.mu.Lock()
	r.columns = append(r.columns, column)
	r.mu.Unlock()
	return r.groups[column], nil
}

func (r *fakeDashboardRepository) GetRecent(ctx context.Context, limit uint64) ([]entities.Equipment, error) {
	if int(limit) < len(r.recent) {
		return r.recent[:limit], nil
	}
	return r.recent, nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
