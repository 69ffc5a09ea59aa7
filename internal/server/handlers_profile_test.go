package server

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAchievementRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		req     createAchievementRequest
		wantErr bool
	}{
		{"valid", createAchievementRequest{Title: "AWS Certified"}, false},
		{"valid with description", createAchievementRequest{Title: "Best Paper", Description: "ICML 2024"}, false},
		{"missing title", createAchievementRequest{Description: "no title"}, true},
		{"title too long", createAchievementRequest{Title: strings.Repeat("a", 256)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			if tt.wantErr {
				require.Error(t, err)
				verr := firstValidationError(err)
				var fieldErr *ErrValidation
				assert.ErrorAs(t, verr, &fieldErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
