package postgres

import "github.com/jackc/pgx/v5/pgtype"

// TextFromPtr converts a *string to pgtype.Text (nil -> NULL).
func TextFromPtr(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

// PtrFromText converts a pgtype.Text to *string (NULL -> nil).
func PtrFromText(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}
