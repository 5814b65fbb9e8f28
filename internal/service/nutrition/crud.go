package nutrition

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// Create creates a custom nutrition item owned by the given user.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Nutrition, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var created *domain.Nutrition
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByID(txCtx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		if err := s.resolveType(txCtx, input.NutritionTypeID); err != nil {
			return err
		}
		httpRefs, err := s.resolveHttpRefs(txCtx, userID, input.HttpRefIDs)
		if err != nil {
			return err
		}

		taken, err := s.nutritions.TitleTaken(txCtx, input.Title, userID)
		if err != nil {
			return fmt.Errorf("check title: %w", err)
		}
		if taken {
			return domain.ErrNameDuplicate
		}

		now := time.Now().UTC()
		created, err = s.nutritions.Create(txCtx, &domain.Nutrition{
			ID:              uuid.New(),
			Ownership:       domain.CustomOwnedBy(userID),
			Title:           input.Title,
			Description:     input.Description,
			NutritionTypeID: input.NutritionTypeID,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		if err != nil {
			return fmt.Errorf("create nutrition: %w", err)
		}

		if err := s.nutritions.SetHttpRefs(txCtx, created.ID, idsOf(httpRefs)); err != nil {
			return fmt.Errorf("set http refs: %w", err)
		}

		created.HttpRefs = httpRefs
		created.SortRelations()

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "nutrition created",
		slog.String("user_id", userID.String()),
		slog.String("nutrition_id", created.ID.String()),
	)

	return created, nil
}

// GetByID returns one nutrition item with http refs sorted ascending by id.
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID, requested domain.Visibility) (*domain.Nutrition, error) {
	n, err := s.nutritions.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get nutrition: %w", err)
	}

	if err := domain.CheckAccess(n.Ownership, requested, userID, domain.AccessRead); err != nil {
		return nil, err
	}

	items := []domain.Nutrition{*n}
	if err := s.attachHttpRefs(ctx, items); err != nil {
		return nil, err
	}

	return &items[0], nil
}

// ListWithFilter returns one page of nutrition items with http refs attached.
func (s *Service) ListWithFilter(ctx context.Context, userID uuid.UUID, f domain.ListFilter) (*domain.Page[domain.Nutrition], error) {
	if customsInScope(f.IsCustom) {
		if userID == uuid.Nil {
			return nil, domain.ErrUnauthorized
		}
		f.UserID = &userID
	}
	f = f.Normalized()

	items, total, err := s.nutritions.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find nutritions: %w", err)
	}

	if err := s.attachHttpRefs(ctx, items); err != nil {
		return nil, err
	}

	return &domain.Page[domain.Nutrition]{
		Items:         items,
		PageNumber:    f.PageNumber,
		PageSize:      f.PageSize,
		TotalElements: total,
	}, nil
}

// ListTypes returns the seeded nutrition type taxonomy sorted ascending by id.
func (s *Service) ListTypes(ctx context.Context) ([]domain.NutritionType, error) {
	types, err := s.nutritions.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list nutrition types: %w", err)
	}
	return types, nil
}

// Update applies a sparse update to a custom nutrition item owned by the
// caller.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, input UpdateInput) (*domain.Nutrition, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.Nutrition
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.nutritions.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get nutrition: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		var diff domain.FieldDiff
		domain.DiffValue(&diff, "title", input.Title, stored.Title)
		domain.DiffOptional(&diff, "description", input.Description, stored.Description)
		domain.DiffValue(&diff, "nutritionTypeId", input.NutritionTypeID, stored.NutritionTypeID)
		if input.HttpRefIDs != nil {
			diff.MarkProvided("httpRefs")
		}
		if err := diff.Err(); err != nil {
			return err
		}

		if diff.Changed("nutritionTypeId") {
			if err := s.resolveType(txCtx, *input.NutritionTypeID); err != nil {
				return err
			}
			stored.NutritionTypeID = *input.NutritionTypeID
		}
		var httpRefs []domain.HttpRef
		if input.HttpRefIDs != nil {
			httpRefs, err = s.resolveHttpRefs(txCtx, userID, *input.HttpRefIDs)
			if err != nil {
				return err
			}
		}

		if diff.Changed("title") {
			taken, err := s.nutritions.TitleTaken(txCtx, *input.Title, userID)
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

		updated, err = s.nutritions.Update(txCtx, stored)
		if err != nil {
			return fmt.Errorf("update nutrition: %w", err)
		}

		if input.HttpRefIDs != nil {
			if err := s.nutritions.SetHttpRefs(txCtx, updated.ID, idsOf(httpRefs)); err != nil {
				return fmt.Errorf("set http refs: %w", err)
			}
		}

		items := []domain.Nutrition{*updated}
		if err := s.attachHttpRefs(txCtx, items); err != nil {
			return err
		}
		updated = &items[0]

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "nutrition updated",
		slog.String("user_id", userID.String()),
		slog.String("nutrition_id", input.ID.String()),
	)

	return updated, nil
}

// Delete removes a custom nutrition item owned by the caller.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) (uuid.UUID, error) {
	if userID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.nutritions.GetByID(txCtx, id)
		if err != nil {
			return fmt.Errorf("get nutrition: %w", err)
		}

		if err := domain.CheckAccess(stored.Ownership, domain.VisibilityCustom, userID, domain.AccessMutate); err != nil {
			return err
		}

		if err := s.nutritions.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete nutrition: %w", err)
		}

		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	s.log.InfoContext(ctx, "nutrition deleted",
		slog.String("user_id", userID.String()),
		slog.String("nutrition_id", id.String()),
	)

	return id, nil
}

func customsInScope(isCustom *bool) bool {
	return isCustom == nil || *isCustom
}
