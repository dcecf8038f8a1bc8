package session

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/SatuPadu/fses-client/core"
)

func firstFieldError(t *testing.T, err error) string {
	t.Helper()
	var vErr *core.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected *core.ValidationError, got %T (%v)", err, err)
	}
	if len(vErr.Fields) == 0 {
		t.Fatal("expected field errors, got none")
	}
	return vErr.Fields[0].Error
}

func TestSetPassword_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload SetPassword
		wantErr string // "" means valid
	}{
		{
			name:    "valid",
			payload: SetPassword{Password: "Str0ng!Pass", PasswordConfirm: "Str0ng!Pass"},
		},
		{
			name:    "confirmation mismatch",
			payload: SetPassword{Password: "Str0ng!Pass", PasswordConfirm: "Str0ng!Pass2"},
			wantErr: "password_confirmation must be equal to Password",
		},
		{
			name:    "too short",
			payload: SetPassword{Password: "Sh0r!t", PasswordConfirm: "Sh0r!t"},
			wantErr: "password must contain at least 8 characters",
		},
		{
			name:    "whitespace",
			payload: SetPassword{Password: "Pass word1!", PasswordConfirm: "Pass word1!"},
			wantErr: "password must not contain whitespace",
		},
		{
			name:    "all numeric",
			payload: SetPassword{Password: "1234567890", PasswordConfirm: "1234567890"},
			wantErr: "password cannot be entirely numeric",
		},
		{
			name:    "no complexity",
			payload: SetPassword{Password: "passwordpassword", PasswordConfirm: "passwordpassword"},
			wantErr: "password must contain at least 1 uppercase character, 1 lowercase character, 1 digit and 1 special character",
		},
		{
			name: "similar to name",
			payload: SetPassword{
				Password:        "J0hn.Doe!",
				PasswordConfirm: "J0hn.Doe!",
				UserName:        "John Doe",
			},
			wantErr: "password cannot be similar to user attributes",
		},
		{
			name: "similar to email",
			payload: SetPassword{
				Password:        "oa@fses.Te5t!",
				PasswordConfirm: "oa@fses.Te5t!",
				UserEmail:       "oa@fses.test",
			},
			wantErr: "password cannot be similar to user attributes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if got := firstFieldError(t, err); got != tt.wantErr {
				t.Errorf("Validate() field error = %q, want %q", got, tt.wantErr)
			}
		})
	}
}

func TestResetPassword_Validate(t *testing.T) {
	valid := ResetPassword{
		Email:           "oa@fses.test",
		Token:           "tok",
		Password:        "Str0ng!Pass",
		PasswordConfirm: "Str0ng!Pass",
	}

	t.Run("valid", func(t *testing.T) {
		rp := valid
		if err := rp.Validate(); err != nil {
			t.Errorf("Validate() unexpected error = %v", err)
		}
	})
	t.Run("missing token", func(t *testing.T) {
		rp := valid
		rp.Token = ""
		if err := rp.Validate(); err == nil {
			t.Error("Validate() expected error, got nil")
		}
	})
	t.Run("policy applies", func(t *testing.T) {
		rp := valid
		rp.Password, rp.PasswordConfirm = "12345678", "12345678"
		err := rp.Validate()
		if err == nil {
			t.Fatal("Validate() expected error, got nil")
		}
		if got := firstFieldError(t, err); got != "password cannot be entirely numeric" {
			t.Errorf("Validate() field error = %q", got)
		}
	})
}
