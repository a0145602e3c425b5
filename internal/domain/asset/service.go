package asset

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"culturehub/internal/domain"
)

type Service struct {
	repo Repository
	log  zerolog.Logger
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (s *Service) List(ctx context.Context, facilityID int64) (*ListResponse, error) {
	if err := s.requireFacility(ctx, facilityID); err != nil {
		return nil, err
	}
	assets, err := s.repo.ListByFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []domain.Asset{}
	}
	return &ListResponse{Assets: assets, Summary: Summarize(facilityID, assets)}, nil
}

func (s *Service) Create(ctx context.Context, facilityID int64, req CreateRequest) (*domain.Asset, error) {
	if err := s.requireFacility(ctx, facilityID); err != nil {
		return nil, err
	}
	cond := req.Condition
	if cond == "" {
		cond = domain.AssetGood
	}
	if !cond.Valid() {
		return nil, ErrInvalidCondition
	}

	a := &domain.Asset{
		CulturalCenterID: facilityID,
		Name:             strings.TrimSpace(req.Name),
		Category:         strings.TrimSpace(req.Category),
		Quantity:         req.Quantity,
		Condition:        cond,
		Note:             req.Note,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*domain.Asset, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Condition != nil {
		if !req.Condition.Valid() {
			return nil, ErrInvalidCondition
		}
		if *req.Condition != a.Condition {
			s.log.Info().Int64("asset_id", a.ID).
				Str("from", string(a.Condition)).Str("to", string(*req.Condition)).
				Msg("asset condition changed")
		}
		a.Condition = *req.Condition
	}
	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		a.Category = strings.TrimSpace(*req.Category)
	}
	if req.Quantity != nil {
		a.Quantity = *req.Quantity
	}
	if req.Note != nil {
		a.Note = *req.Note
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) requireFacility(ctx context.Context, facilityID int64) error {
	ok, err := s.repo.FacilityExists(ctx, facilityID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrFacilityNotFound
	}
	return nil
}

// Summarize adds up quantities per condition.
func Summarize(facilityID int64, assets []domain.Asset) Summary {
	sum := Summary{
		CulturalCenterID: facilityID,
		ByCondition: map[domain.AssetCondition]int{
			domain.AssetGood:        0,
			domain.AssetNeedsRepair: 0,
			domain.AssetBroken:      0,
		},
	}
	for _, a := range assets {
		sum.Total += a.Quantity
		sum.ByCondition[a.Condition] += a.Quantity
	}
	return sum
}
