package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/esim-activation-service/internal/domain"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	operator := domain.Identity{ID: "admin", Username: "admin"}
	anonymous := domain.Identity{}

	tests := []struct {
		name     string
		op       Operation
		identity domain.Identity
		hasCode  bool
		allow    bool
	}{
		{"anonymous create without code", OpCreate, anonymous, false, true},
		{"anonymous create with code", OpCreate, anonymous, true, false},
		{"authenticated create with code", OpCreate, operator, true, true},
		{"anonymous list", OpList, anonymous, false, false},
		{"authenticated list", OpList, operator, false, true},
		{"anonymous update", OpUpdate, anonymous, false, false},
		{"authenticated update", OpUpdate, operator, false, true},
		{"anonymous delete", OpDelete, anonymous, false, false},
		{"authenticated delete", OpDelete, operator, false, true},
		{"anonymous get", OpGet, anonymous, false, true},
		{"authenticated get", OpGet, operator, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decide(tt.op, tt.identity, tt.hasCode)
			if tt.allow {
				require.NoError(t, err)
				assert.Equal(t, tt.identity, got)
			} else {
				require.Error(t, err)
				assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
			}
		})
	}
}

func TestDecideUnknownOperation(t *testing.T) {
	t.Parallel()

	_, err := Decide(Operation("purge"), domain.Identity{Username: "admin"}, false)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "UNAUTHORIZED"))
}
