package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	repo Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

type CreateInput struct {
	Type string
	Name string
}

// UpdateInput is a merge-patch: nil means "leave the field as is".
type UpdateInput struct {
	Type *string
	Name *string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	typ := strings.TrimSpace(in.Type)
	name := strings.TrimSpace(in.Name)
	if typ == "" {
		return Pet{}, fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	if name == "" {
		return Pet{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	now := s.clock()
	p := Pet{
		ID:        uuid.NewString(),
		Type:      typ,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("create pet", zap.Error(err))
		return Pet{}, err
	}

	s.log.Info("pet created", zap.String("pet_id", p.ID), zap.String("type", p.Type))
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("get pet", zap.Error(err), zap.String("pet_id", id))
		}
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("list pets", zap.Error(err))
		return nil, err
	}
	return items, nil
}

// Update applies a merge-patch onto the stored record: fields absent from the
// patch keep their current value. The write re-checks existence, so a pet
// deleted between the read and the write still reports ErrNotFound instead of
// silently reappearing.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Type != nil {
		p.Type = strings.TrimSpace(*in.Type)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if p.Type == "" {
		return Pet{}, fmt.Errorf("%w: type is required", ErrInvalidInput)
	}
	if p.Name == "" {
		return Pet{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	p.UpdatedAt = s.clock()

	if err := s.repo.Update(ctx, p); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("update pet", zap.Error(err), zap.String("pet_id", id))
		}
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("delete pet", zap.Error(err), zap.String("pet_id", id))
		}
		return err
	}
	s.log.Info("pet deleted", zap.String("pet_id", id))
	return nil
}

// clock truncates to the millisecond so timestamps survive every storage
// backend unchanged and create-then-get returns an identical record.
func (s *Service) clock() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}
