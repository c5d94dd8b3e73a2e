package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signUp struct {
	UID   string `json:"uid" validate:"omitempty,account_id"`
	Email string `json:"email" validate:"omitempty,email,max=254"`
}

func TestValidator_Validate(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		input      signUp
		wantFields []string
	}{
		{"valid", signUp{UID: "Xy12abc", Email: "a@x.com"}, nil},
		{"empty fields are left to the caller", signUp{}, nil},
		{"bad email", signUp{UID: "u1", Email: "not-an-email"}, []string{"email"}},
		{"slash in uid", signUp{UID: "users/u1", Email: "a@x.com"}, []string{"uid"}},
		{"dot uid", signUp{UID: "..", Email: "a@x.com"}, []string{"uid"}},
		{"long uid", signUp{UID: strings.Repeat("a", 129), Email: "a@x.com"}, []string{"uid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.input)
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			for _, f := range tt.wantFields {
				assert.Contains(t, verr.Errors, f)
			}
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{Errors: map[string]string{
		"uid":   "uid must be a valid account identifier",
		"email": "email must be a valid email address",
	}}

	assert.Equal(t, "validation failed: email must be a valid email address, uid must be a valid account identifier", err.Error())
}
