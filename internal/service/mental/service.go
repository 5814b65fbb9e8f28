// Package mental implements the mental activity catalog service:
// meditations and affirmations with optional supporting http refs.
package mental

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

type mentalRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MentalActivity, error)
	TitleTaken(ctx context.Context, title string, userID uuid.UUID) (bool, error)
	Find(ctx context.Context, f domain.ListFilter) ([]domain.MentalActivity, int, error)
	Create(ctx context.Context, m *domain.MentalActivity) (*domain.MentalActivity, error)
	Update(ctx context.Context, m *domain.MentalActivity) (*domain.MentalActivity, error)
	Delete(ctx context.Context, id uuid.UUID) error

	ListTypes(ctx context.Context) ([]domain.MentalType, error)
	GetTypeByID(ctx context.Context, id uuid.UUID) (*domain.MentalType, error)
	SetHttpRefs(ctx context.Context, activityID uuid.UUID, httpRefIDs []uuid.UUID) error
	GetHttpRefsByActivityIDs(ctx context.Context, activityIDs []uuid.UUID) ([]domain.HttpRefWithActivityID, error)
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

// Service provides mental activity operations.
type Service struct {
	activities mentalRepo
	httpRefs   httpRefRepo
	users      userRepo
	tx         txManager
	log        *slog.Logger
}

// NewService creates a new MentalActivity service.
func NewService(
	log *slog.Logger,
	activities mentalRepo,
	httpRefs httpRefRepo,
	users userRepo,
	tx txManager,
) *Service {
	return &Service{
		activities: activities,
		httpRefs:   httpRefs,
		users:      users,
		tx:         tx,
		log:        log.With("service", "mental"),
	}
}

// resolveType checks that the mental type id references a seeded taxonomy row.
func (s *Service) resolveType(ctx context.Context, id uuid.UUID) error {
	if _, err := s.activities.GetTypeByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("mental type %s: %w", id, domain.ErrInvalidNestedObject)
		}
		return fmt.Errorf("get mental type: %w", err)
	}
	return nil
}

// resolveHttpRefs resolves http ref ids and re-checks ownership per item in
// ascending id order.
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

// attachHttpRefs batch-loads the http ref relation for the given activities
// and attaches it sorted ascending by id.
func (s *Service) attachHttpRefs(ctx context.Context, activities []domain.MentalActivity) error {
	if len(activities) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(activities))
	index := make(map[uuid.UUID]*domain.MentalActivity, len(activities))
	for i := range activities {
		ids[i] = activities[i].ID
		index[activities[i].ID] = &activities[i]
	}

	links, err := s.activities.GetHttpRefsByActivityIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load http refs: %w", err)
	}
	for _, item := range links {
		m := index[item.ActivityID]
		m.HttpRefs = append(m.HttpRefs, item.HttpRef)
	}

	for i := range activities {
		activities[i].SortRelations()
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
