// Package nutrition implements the nutrition catalog service: supplements
// and recipes with optional supporting http refs.
package nutrition

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

type nutritionRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Nutrition, error)
	TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	Find(ctx context.Context, f domain.ListFilter) ([]domain.Nutrition, int, error)
	Create(ctx context.Context, n *domain.Nutrition) (*domain.Nutrition, error)
	Update(ctx context.Context, n *domain.Nutrition) (*domain.Nutrition, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListTypes(ctx context.Context) ([]domain.NutritionType, error)
	GetTypeByID(ctx context.Context, id uuid.UUID) (*domain.NutritionType, error)
	SetHttpRefs(ctx context.Context, nutritionID uuid.UUID, httpRefIDs []uuid.UUID) error
	GetHttpRefsByNutritionIDs(ctx context.Context, nutritionIDs []uuid.UUID) ([]domain.HttpRefWithNutritionID, error)
}

type httpRefRepo interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.HttpRef, error)
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides nutrition operations.
type Service struct {
	nutritions nutritionRepo
	httpRefs   httpRefRepo
	users      userRepo
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new Nutrition service.
func NewService(
	log *slog.Logger,
	nutritions nutritionRepo,
	httpRefs httpRefRepo,
	users userRepo,
	tx txManager,
) *Service {
	return &Service{
		nutritions: nutritions,
		httpRefs:   httpRefs,
		users:      users,
		tx:         tx,
		log:        log.With("service", "nutrition"),
	}
}

func (s *Service) resolveType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.nutritions.GetTypeByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("nutrition type %s: %w", id, domain.ErrInvalidNestedObject)
		}
		return fmt.Errorf("get nutrition type: %w", err)
	}
	return nil
}

func (s *Service) resolveHttpRefs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]domain.HttpRef, error) {
	ids = domain.DedupIDs(ids)
	domain.SortIDs(ids)

	got, err := s.httpRefs.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get http refs: %w", err)
	}
	if len(got) != len(ids) {
		return nil, domain.ErrInvalidNestedObject
	}

	for _, ref := range got {
		if ref.IsCustom && !ref.OwnedBy(userID) {
			return nil, fmt.Errorf("http ref %s: %w", ref.ID, domain.ErrResourceOwnerMismatch)
		}
	}

	return got, nil
}

func (s *Service) attachHttpRefs(ctx context.Context, nutritions []domain.Nutrition) error {
	if len(nutritions) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(nutritions))
	index := make(map[uuid.UUID]*domain.Nutrition, len(nutritions))
	for i := range nutritions {
		ids[i] = nutritions[i].ID
		index[nutritions[i].ID] = &nutritions[i]
	}

	links, err := s.nutritions.GetHttpRefsByNutritionIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load http refs: %w", err)
	}
	for _, item := range links {
		n := index[item.NutritionID]
		n.HttpRefs = append(n.HttpRefs, item.HttpRef)
	}

	for i := range nutritions {
		nutritions[i].SortRelations()
	}

	return nil
}

func idsOf(items []domain.HttpRef) []uuid.UUID {
	ids := make([]uuid.UUID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
