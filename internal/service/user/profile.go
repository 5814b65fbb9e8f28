package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/wellforge/lifestyle-backend/internal/domain"
)

// GetProfile returns the caller's own account.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return u, nil
}

// UpdateProfile applies a sparse update to the caller's own account.
// Password changes always count as a change; the stored hash is never
// compared against the plaintext.
func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error) {
	if input.ID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	if input.Username != nil {
		trimmed := strings.TrimSpace(*input.Username)
		input.Username = &trimmed
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var updated *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		stored, err := s.users.GetByID(txCtx, input.ID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		var diff domain.FieldDiff
		domain.DiffValue(&diff, "username", input.Username, stored.Username)
		domain.DiffOptional(&diff, "fullName", input.FullName, stored.FullName)
		if input.Password != nil {
			diff.MarkProvided("password")
		}
		if err := diff.Err(); err != nil {
			return err
		}

		if diff.Changed("username") {
			stored.Username = *input.Username
		}
		if diff.Changed("fullName") {
			stored.FullName = input.FullName
		}
		if input.Password != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), s.passwordHashCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			stored.PasswordHash = string(hash)
		}
		stored.UpdatedAt = time.Now().UTC()

		updated, err = s.users.Update(txCtx, stored)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "profile updated",
		slog.String("user_id", input.ID.String()))

	return updated, nil
}

// DeleteAccount removes the caller's own account. Custom resources owned by
// the account are removed by the database cascades.
func (s *Service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.users.GetByID(txCtx, userID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if err := s.users.Delete(txCtx, userID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "account deleted",
		slog.String("user_id", userID.String()))

	return nil
}
