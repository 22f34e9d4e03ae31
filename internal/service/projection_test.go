package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/esim-activation-service/internal/domain"
)

func TestMaskPhoneNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"7185551234", "******1234"},
		{"1234", "1234"},
		{"12345", "*2345"},
		{"123", "123"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskPhoneNumber(tt.in), "mask(%q)", tt.in)
	}
}

func TestPublicViewStandby(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()
	view := PublicView(&domain.Activation{
		ID:          "abc12345",
		PhoneNumber: "7185551234",
		Notes:       "internal remark",
		Status:      domain.ActivationStatusStandby,
		CreatedAt:   now,
		UpdatedAt:   now,
		CreatedBy:   "webapp",
	})

	assert.Equal(t, "abc12345", view.ID)
	assert.Equal(t, domain.ActivationStatusStandby, view.Status)
	require.NotNil(t, view.PhoneNumber)
	assert.Equal(t, "******1234", *view.PhoneNumber)
	assert.Nil(t, view.ProvisioningCode)
	assert.Nil(t, view.ActivationURL)
	assert.Equal(t, now, view.CreatedAt)
	assert.Equal(t, now, view.UpdatedAt)
}

func TestPublicViewActiveExposesCode(t *testing.T) {
	t.Parallel()

	view := PublicView(&domain.Activation{
		ID:               "abc12345",
		Status:           domain.ActivationStatusActive,
		ProvisioningCode: "LPA:1$smdp.example.com$ABC123",
	})

	require.NotNil(t, view.ProvisioningCode)
	assert.Equal(t, "LPA:1$smdp.example.com$ABC123", *view.ProvisioningCode)
	require.NotNil(t, view.ActivationURL)
	assert.Contains(t, *view.ActivationURL, "LPA%3A1%24smdp.example.com%24ABC123")
}

func TestPublicViewEmptyPhoneIsNull(t *testing.T) {
	t.Parallel()

	view := PublicView(&domain.Activation{ID: "abc12345", Status: domain.ActivationStatusStandby})
	assert.Nil(t, view.PhoneNumber)
}
