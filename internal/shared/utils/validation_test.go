package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/shared/errors"
)

type sampleRequest struct {
	Title    string `json:"title" validate:"notblank,max=200"`
	Priority string `json:"priority" validate:"repair_priority"`
	Status   string `json:"status" validate:"omitempty,repair_status"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sampleRequest{Title: "Leaky faucet", Priority: "medium"}))

	err := ValidateStruct(sampleRequest{Title: "   ", Priority: "whenever", Status: "closed"})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	appErr := errors.GetAppError(err)
	assert.Contains(t, appErr.Details, "title is required")
	assert.Contains(t, appErr.Details, "priority must be one of")
	assert.Contains(t, appErr.Details, "status must be one of")
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "Broken window", SanitizeText("  <b>Broken</b> window<script>alert(1)</script> "))
	assert.Nil(t, SanitizeOptional(nil))

	in := "<i>Replaced</i> hinge"
	assert.Equal(t, "Replaced hinge", *SanitizeOptional(&in))
}

func TestSanitizeText_KeepsPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"apostrophe and ampersand", "Tom's sink & drain", "Tom's sink & drain"},
		{"double quotes", `Room "B" & C`, `Room "B" & C`},
		{"literal entity text", "5 &amp; 6", "5 &amp; 6"},
		{"comparison", "pressure < 2 bar", "pressure < 2 bar"},
		{"ampersands do not grow", strings.Repeat("&", 60), strings.Repeat("&", 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.in))
		})
	}
}
