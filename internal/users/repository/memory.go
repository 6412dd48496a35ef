package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/meanstack/userapi/internal/users"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepo is an in-memory Repository used by the dev server and unit tests.
// It applies the same shape rules as the collection validator: required fields,
// minimum lengths, string values only and no extra fields.
type MemoryRepo struct {
	mu       sync.RWMutex
	store    map[primitive.ObjectID]users.User
	order    []primitive.ObjectID
	validate *validator.Validate
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		store:    make(map[primitive.ObjectID]users.User),
		validate: validator.New(),
	}
}

func (m *MemoryRepo) Ready(ctx context.Context) error { return nil }

func (m *MemoryRepo) List(ctx context.Context) ([]users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]users.User, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.store[id])
	}
	return out, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*users.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[oid]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *MemoryRepo) Create(ctx context.Context, u *users.User) (users.InsertResult, error) {
	if err := m.check(*u); err != nil {
		return users.InsertResult{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, exists := m.store[u.ID]; exists {
		return users.InsertResult{}, fmt.Errorf("duplicate key: _id %s", u.ID.Hex())
	}
	m.store[u.ID] = *u
	m.order = append(m.order, u.ID)
	return users.InsertResult{ID: u.ID, Acknowledged: true}, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, changes users.Changes) (users.UpdateOutcome, error) {
	oid, err := ParseID(id)
	if err != nil {
		return users.UpdateNoResult, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.store[oid]
	if !ok {
		return users.UpdateNotMatched, nil
	}
	// an empty $set matches without modifying
	if len(changes) == 0 {
		return users.UpdateUnchanged, nil
	}
	next, err := applyChanges(cur, changes)
	if err != nil {
		return users.UpdateNoResult, err
	}
	if err := m.check(next); err != nil {
		return users.UpdateNoResult, err
	}
	if next == cur {
		return users.UpdateUnchanged, nil
	}
	m.store[oid] = next
	return users.UpdateModified, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) (users.DeleteOutcome, error) {
	oid, err := ParseID(id)
	if err != nil {
		return users.DeleteNoResult, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[oid]; !ok {
		return users.DeleteNotFound, nil
	}
	delete(m.store, oid)
	for i, v := range m.order {
		if v == oid {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return users.DeleteDeleted, nil
}

func (m *MemoryRepo) check(u users.User) error {
	if err := m.validate.Struct(u); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// applyChanges mimics $set against a document guarded by the users validator.
func applyChanges(u users.User, changes users.Changes) (users.User, error) {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		var dst *string
		switch k {
		case "_id":
			return u, fmt.Errorf("%w: field '_id' is immutable", ErrValidation)
		case "name":
			dst = &u.Name
		case "email":
			dst = &u.Email
		case "password":
			dst = &u.Password
		default:
			return u, fmt.Errorf("%w: additional property '%s' is not allowed", ErrValidation, k)
		}
		s, ok := changes[k].(string)
		if !ok {
			return u, fmt.Errorf("%w: field '%s' must be a string", ErrValidation, k)
		}
		*dst = s
	}
	return u, nil
}
