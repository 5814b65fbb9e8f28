package mental

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Create creates a custom mental activity owned by the given user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.MentalActivity, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.MentalActivity
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByID(txCtx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if err := s.resolveType(txCtx, input.MentalTypeID); err != nil {
			return err
		}
		httpRefs, err := s.resolveHttpRefs(txCtx, userID, input.HttpRefIDs)
		if err != nil {
			return err
		}

		taken, err := s.activities.TitleTaken(txCtx, input.Title, userID)
		if err != nil {
			return fmt.Errorf("check title: %w", err)
		}
		if taken {
			return domain.ErrNameDuplicate
		}

		now := time.Now().UTC()
		created, err = s.activities.Create(txCtx, &domain.MentalActivity{
			ID:           uuid.New(),
			Ownership:    domain.CustomOwnedBy(userID),
			Title:        input.Title,
			Description:  input.Description,
			MentalTypeID: input.MentalTypeID,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("create mental activity: %w", err)
		}

		if err := s.activities.SetHttpRefs(txCtx, created.ID, idsOf(httpRefs)); err != nil {
			return fmt.Errorf("set http refs: %w", err)
		}

		created.HttpRefs = httpRefs
		created.SortRelations()

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "mental activity created",
		slog.String("user_id", userID.String()),
		slog.String("mental_activity_id", created.ID.String()),
	)

	return created, nil
}

// GetByID returns one mental activity with http refs sorted ascending by id.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.MentalActivity, error) {
	m, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get mental activity: %w", err)
	}

	if err := domain.CheckAccess(m.Ownership, requested, userID, domain.AccessRead); err != nil {
		return nil, err
	}

	items := []domain.MentalActivity{*m}
	if err := s.attachHttpRefs(ctx, items); err != nil {
		return nil, err
	}

	return &items[0], nil
}

// ListWithFilter returns one page of mental activities with http refs
// attached.
func (s *Service) ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.MentalActivity], error) {
	if customsInScope(f.IsCustom) {
		if userID == uuid.Nil {
			return nil, domain.ErrUnauthorized
		}
		f.UserID = &userID
	}
	f = f.Normalized()

	items, total, err := s.activities.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find mental activities: %w", err)
	}

	if err := s.attachHttpRefs(ctx, items); err != nil {
		return nil, err
	}

	return &domain.Page[domain.MentalActivity]{
		Items:         items,
		PageNumber:    f.PageNumber,
		PageSize:      f.PageSize,
		TotalElements: total,
	}, nil
}

// ListTypes returns the seeded mental type taxonomy sorted ascending by id.
func (s *Service) ListTypes(ctx context.Context) ([]domain.MentalType, error) {
	types, err := s.activities.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list mental types: %w", err)
	}
	return types, nil
}

// Update applies a sparse update to a custom mental activity owned by the
// caller.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*domain.MentalActivity, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.MentalActivity
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.activities.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get mental activity: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		var diff domain.FieldDiff
		domain.DiffValue(&diff, "title", input.Title, stored.Title)
		domain.DiffOptional(&diff, "description", input.Description, stored.Description)
		domain.DiffValue(&diff, "mentalTypeId", input.MentalTypeID, stored.MentalTypeID)
		if input.HttpRefIDs != nil {
			diff.MarkProvided("httpRefs")
		}
		if err := diff.Err(); err != nil {
			return err
		}

		if diff.Changed("mentalTypeId") {
			if err := s.resolveType(txCtx, *input.MentalTypeID); err != nil {
				return err
			}
			stored.MentalTypeID = *input.MentalTypeID
		}
		var httpRefs []domain.HttpRef
		if input.HttpRefIDs != nil {
			httpRefs, err = s.resolveHttpRefs(txCtx, userID, *input.HttpRefIDs)
			if err != nil {
				return err
			}
		}

		if diff.Changed("title") {
			taken, err := s.activities.TitleTaken(txCtx, *input.Title, userID)
			if err != nil {
				return fmt.Errorf("check title: %w", err)
			}
			if taken {
				return domain.ErrNameDuplicate
			}
			stored.Title = *input.Title
		}
		if diff.Changed("description") {
			stored.Description = input.Description
		}
		stored.UpdatedAt = time.Now().UTC()

		updated, err = s.activities.Update(txCtx, stored)
		if err != nil {
			return fmt.Errorf("update mental activity: %w", err)
		}

		if input.HttpRefIDs != nil {
			if err := s.activities.SetHttpRefs(txCtx, updated.ID, idsOf(httpRefs)); err != nil {
				return fmt.Errorf("set http refs: %w", err)
			}
		}

		items := []domain.MentalActivity{*updated}
		if err := s.attachHttpRefs(txCtx, items); err != nil {
			return err
		}
		updated = &items[0]

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "mental activity updated",
		slog.String("user_id", userID.String()),
		slog.String("mental_activity_id", input.ID.String()),
	)

	return updated, nil
}

// Delete removes a custom mental activity owned by the caller.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error) {
	if userID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.activities.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get mental activity: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		if err := s.activities.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete mental activity: %w", err)
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.InfoContext(ctx, "mental activity deleted",
		slog.String("user_id", userID.String()),
		slog.String("mental_activity_id", id.String()),
	)

	return id, nil
}

func customsInScope(isCustom *bool) bool {
	return isCustom == nil || *isCustom
}
