package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/spec-kit/esim-activation-service/internal/domain"
	"github.com/spec-kit/esim-activation-service/internal/persistence"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

const (
	activationKeyPrefix = "activation:"
	activationIndexSet  = "activations"
)

// ActivationRepository encapsulates activation persistence. It exclusively
// owns the activation index set and each record key.
type ActivationRepository interface {
	Create(ctx context.Context, activation *domain.Activation) error
	Update(ctx context.Context, activation *domain.Activation) error
	GetByID(ctx context.Context, id string) (*domain.Activation, error)
	List(ctx context.Context) ([]domain.Activation, error)
	Delete(ctx context.Context, id string) error
}

type activationRepository struct {
	store persistence.KV
}

// NewActivationRepository instantiates repository.
func NewActivationRepository(store persistence.KV) ActivationRepository {
	return &activationRepository{store: store}
}

func (r *activationRepository) Create(ctx context.Context, activation *domain.Activation) error {
	if err := r.put(ctx, activation); err != nil {
		return err
	}
	if err := r.store.AddToSet(ctx, activationIndexSet, activation.ID); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

func (r *activationRepository) Update(ctx context.Context, activation *domain.Activation) error {
	return r.put(ctx, activation)
}

func (r *activationRepository) put(ctx context.Context, activation *domain.Activation) error {
	raw, err := json.Marshal(activation)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if err := r.store.Set(ctx, activationKeyPrefix+activation.ID, string(raw), 0); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}

func (r *activationRepository) GetByID(ctx context.Context, id string) (*domain.Activation, error) {
	raw, err := r.store.Get(ctx, activationKeyPrefix+id)
	if err != nil {
		if errors.Is(err, persistence.ErrKeyNotFound) {
			return nil, apperrors.NewNotFound("activation", map[string]any{"id": id})
		}
		return nil, apperrors.NewStoreUnavailable(err)
	}

	var activation domain.Activation
	if err := json.Unmarshal([]byte(raw), &activation); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &activation, nil
}

// List returns all live activations ordered by createdAt descending. Ids in
// the index whose record vanished concurrently are skipped.
func (r *activationRepository) List(ctx context.Context) ([]domain.Activation, error) {
	ids, err := r.store.SetMembers(ctx, activationIndexSet)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	activations := make([]domain.Activation, 0, len(ids))
	for _, id := range ids {
		activation, err := r.GetByID(ctx, id)
		if err != nil {
			if apperrors.IsCode(err, "NOT_FOUND") {
				continue
			}
			return nil, err
		}
		activations = append(activations, *activation)
	}

	sort.SliceStable(activations, func(i, j int) bool {
		return activations[i].CreatedAt.After(activations[j].CreatedAt)
	})
	return activations, nil
}

// Delete removes the index entry before the record so a concurrent List never
// observes an id with no backing record.
func (r *activationRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.store.RemoveFromSet(ctx, activationIndexSet, id); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	if err := r.store.Delete(ctx, activationKeyPrefix+id); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	return nil
}
