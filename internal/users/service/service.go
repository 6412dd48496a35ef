package service

import (
	"context"

	"github.com/meanstack/userapi/internal/users"
	"github.com/meanstack/userapi/internal/users/repository"
	"github.com/meanstack/userapi/pkg/metrics"
)

// Service performs one repository operation per call, applying the configured
// password hasher on writes and counting outcomes.
type Service struct {
	repo   repository.Repository
	hasher PasswordHasher
}

// New wraps repo. A nil hasher stores passwords as submitted.
func New(repo repository.Repository, hasher PasswordHasher) *Service {
	if hasher == nil {
		hasher = PlainPasswords{}
	}
	return &Service{repo: repo, hasher: hasher}
}

func (s *Service) List(ctx context.Context) ([]users.User, error) {
	list, err := s.repo.List(ctx)
	record("list", outcomeOf(err, "ok"))
	return list, err
}

func (s *Service) Get(ctx context.Context, id string) (*users.User, error) {
	u, err := s.repo.Get(ctx, id)
	found := "found"
	if u == nil {
		found = "not_found"
	}
	record("get", outcomeOf(err, found))
	return u, err
}

func (s *Service) Create(ctx context.Context, u *users.User) (users.InsertResult, error) {
	hashed, err := s.hasher.Hash(u.Password)
	if err != nil {
		record("create", "error")
		return users.InsertResult{}, err
	}
	u.Password = hashed
	res, err := s.repo.Create(ctx, u)
	ack := "acknowledged"
	if !res.Acknowledged {
		ack = "unacknowledged"
	}
	record("create", outcomeOf(err, ack))
	return res, err
}

func (s *Service) Update(ctx context.Context, id string, changes users.Changes) (users.UpdateOutcome, error) {
	if pw, ok := changes["password"].(string); ok {
		hashed, err := s.hasher.Hash(pw)
		if err != nil {
			record("update", "error")
			return users.UpdateNoResult, err
		}
		// copy so the caller's map is left untouched
		next := make(users.Changes, len(changes))
		for k, v := range changes {
			next[k] = v
		}
		next["password"] = hashed
		changes = next
	}
	out, err := s.repo.Update(ctx, id, changes)
	record("update", outcomeOf(err, out.String()))
	return out, err
}

func (s *Service) Delete(ctx context.Context, id string) (users.DeleteOutcome, error) {
	out, err := s.repo.Delete(ctx, id)
	record("delete", outcomeOf(err, out.String()))
	return out, err
}

func (s *Service) Ready(ctx context.Context) error {
	return s.repo.Ready(ctx)
}

func outcomeOf(err error, ok string) string {
	if err != nil {
		return "error"
	}
	return ok
}

func record(op, outcome string) {
	metrics.UserOperations.WithLabelValues(op, outcome).Inc()
}
