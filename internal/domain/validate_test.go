package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "plain title", value: "Push-up", wantErr: false},
		{name: "with digits and spaces", value: "Set of 10 reps", wantErr: false},
		{name: "empty", value: "", wantErr: true},
		{name: "forbidden symbol", value: "Push-up!", wantErr: true},
		{name: "angle bracket", value: "<script>", wantErr: true},
		{name: "too long", value: strings.Repeat("a", 256), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateTitle("title", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle(%q) = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrValidation) {
				t.Errorf("error should unwrap to ErrValidation, got %v", err)
			}
		})
	}
}

func TestValidateDescription(t *testing.T) {
	t.Parallel()

	if err := ValidateDescription("description", nil); err != nil {
		t.Errorf("nil description should pass, got %v", err)
	}
	ok := "reading it is optional"
	if err := ValidateDescription("description", &ok); err != nil {
		t.Errorf("plain description should pass, got %v", err)
	}
	bad := "watch this @ home"
	if err := ValidateDescription("description", &bad); err == nil {
		t.Error("forbidden symbol should fail")
	}
}

func TestValidateRef(t *testing.T) {
	t.Parallel()

	if err := ValidateRef("ref", "http://example.org/article"); err != nil {
		t.Errorf("http url should pass, got %v", err)
	}
	if err := ValidateRef("ref", "https://example.org"); err != nil {
		t.Errorf("https url should pass, got %v", err)
	}
	if err := ValidateRef("ref", "ftp://example.org"); err == nil {
		t.Error("non-http scheme should fail")
	}
	if err := ValidateRef("ref", ""); err == nil {
		t.Error("empty ref should fail")
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("password", "short"); err == nil {
		t.Error("short password should fail")
	}
	if err := ValidatePassword("password", "long-enough-password"); err != nil {
		t.Errorf("valid password should pass, got %v", err)
	}
	if err := ValidatePassword("password", strings.Repeat("x", 65)); err == nil {
		t.Error("overlong password should fail")
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateEmail("email", "user@example.org"); err != nil {
		t.Errorf("valid email should pass, got %v", err)
	}
	if err := ValidateEmail("email", "not-an-email"); err == nil {
		t.Error("invalid email should fail")
	}
}
