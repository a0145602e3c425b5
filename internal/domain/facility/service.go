package facility

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"

	"culturehub/internal/domain"
	"culturehub/internal/domain/pricing"
)

type Service struct {
	repo   Repository
	engine *pricing.Engine
	log    zerolog.Logger
}

func NewService(repo Repository, engine *pricing.Engine, log zerolog.Logger) *Service {
	return &Service{repo: repo, engine: engine, log: log}
}

func (s *Service) List(ctx context.Context, building string) ([]domain.Facility, error) {
	return s.repo.List(ctx, strings.TrimSpace(building))
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Facility, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*domain.Facility, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if err := s.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	f := &domain.Facility{
		Name:           name,
		Slug:           slug.Make(name),
		Building:       strings.TrimSpace(req.Building),
		Floor:          req.Floor,
		Room:           req.Room,
		Capacity:       req.Capacity,
		BaseHourlyRate: req.BaseHourlyRate,
		Description:    req.Description,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	s.log.Info().Int64("facility_id", f.ID).Str("name", f.Name).Msg("cultural center created")
	return f, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Facility, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrValidation)
		}
		if name != f.Name {
			if err := s.ensureNameFree(ctx, name, f.ID); err != nil {
				return nil, err
			}
			if _, overridden := s.engine.Rates()[f.Name]; overridden {
				s.log.Warn().Str("old_name", f.Name).Str("new_name", name).
					Msg("renamed cultural center loses its rate override")
			}
			f.Name = name
			f.Slug = slug.Make(name)
		}
	}
	if req.Building != nil {
		f.Building = strings.TrimSpace(*req.Building)
	}
	if req.Floor != nil {
		f.Floor = *req.Floor
	}
	if req.Room != nil {
		f.Room = *req.Room
	}
	if req.Capacity != nil {
		f.Capacity = *req.Capacity
	}
	if req.BaseHourlyRate != nil {
		f.BaseHourlyRate = req.BaseHourlyRate
	}
	if req.Description != nil {
		f.Description = *req.Description
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete refuses while any booking still references the facility.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	n, err := s.repo.CountBookings(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrInUse
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("facility_id", id).Msg("cultural center deleted")
	return nil
}

func (s *Service) EffectiveRates(ctx context.Context) ([]RateView, error) {
	list, err := s.repo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	out := make([]RateView, 0, len(list))
	for i := range list {
		rate, src := s.engine.UnitRate(&list[i])
		out = append(out, RateView{
			ID:       list[i].ID,
			Name:     list[i].Name,
			UnitRate: rate,
			Source:   src,
		})
	}
	return out, nil
}

func (s *Service) ensureNameFree(ctx context.Context, name string, selfID int64) error {
	existing, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return ErrNameTaken
	}
	return nil
}
