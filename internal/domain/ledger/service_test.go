package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
)

type fakeRepo struct {
	onHand    map[id.ID]types.Quantity
	movements []*entity.StockMovement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{onHand: make(map[id.ID]types.Quantity)}
}

func (r *fakeRepo) GetOnHandForUpdate(_ context.Context, productID id.ID) (types.Quantity, error) {
	qty, ok := r.onHand[productID]
	if !ok {
		return 0, apperror.NewNotFound("product", productID.String())
	}
	return qty, nil
}

func (r *fakeRepo) SetOnHand(_ context.Context, productID id.ID, quantity types.Quantity) error {
	r.onHand[productID] = quantity
	return nil
}

func (r *fakeRepo) RecordMovement(_ context.Context, movement *entity.StockMovement) error {
	r.movements = append(r.movements, movement)
	return nil
}

func (r *fakeRepo) ListMovements(_ context.Context, _ MovementFilter) ([]MovementRow, error) {
	rows := make([]MovementRow, 0, len(r.movements))
	for _, m := range r.movements {
		rows = append(rows, MovementRow{StockMovement: *m})
	}
	return rows, nil
}

func adjustment(productID id.ID, qty types.Quantity, dir entity.Direction) Adjustment {
	return Adjustment{
		LineID:       id.New(),
		RecorderID:   id.New(),
		RecorderType: "doc_sale",
		ProductID:    productID,
		Quantity:     qty,
		Direction:    dir,
		Period:       time.Now().UTC(),
	}
}

func TestApply_Increase(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	repo.onHand[productID] = 3

	svc := NewService(repo)
	err := svc.Apply(context.Background(), adjustment(productID, 7, entity.DirectionIncrease))

	require.NoError(t, err)
	assert.Equal(t, types.Quantity(10), repo.onHand[productID])
	require.Len(t, repo.movements, 1)
	assert.Equal(t, entity.DirectionIncrease, repo.movements[0].Direction)
	assert.Equal(t, types.Quantity(7), repo.movements[0].Quantity)
}

func TestApply_DecreaseWithinBalance(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	repo.onHand[productID] = 10

	svc := NewService(repo)
	err := svc.Apply(context.Background(), adjustment(productID, 4, entity.DirectionDecrease))

	require.NoError(t, err)
	assert.Equal(t, types.Quantity(6), repo.onHand[productID])
}

func TestApply_DecreaseToExactlyZero(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	repo.onHand[productID] = 5

	svc := NewService(repo)
	err := svc.Apply(context.Background(), adjustment(productID, 5, entity.DirectionDecrease))

	require.NoError(t, err)
	assert.Equal(t, types.Quantity(0), repo.onHand[productID])
}

func TestApply_InsufficientStock(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	repo.onHand[productID] = 3

	svc := NewService(repo)
	err := svc.Apply(context.Background(), adjustment(productID, 5, entity.DirectionDecrease))

	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, types.Quantity(5), appErr.Details["requested"])
	assert.Equal(t, types.Quantity(3), appErr.Details["available"])

	// balance untouched, no journal entry
	assert.Equal(t, types.Quantity(3), repo.onHand[productID])
	assert.Empty(t, repo.movements)
}

func TestApply_UnknownProduct(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	err := svc.Apply(context.Background(), adjustment(id.New(), 1, entity.DirectionDecrease))

	assert.True(t, apperror.IsNotFound(err))
}

func TestApply_RejectsNonPositiveQuantity(t *testing.T) {
	repo := newFakeRepo()
	productID := id.New()
	repo.onHand[productID] = 10
	svc := NewService(repo)

	for _, qty := range []types.Quantity{0, -1} {
		err := svc.Apply(context.Background(), adjustment(productID, qty, entity.DirectionDecrease))
		assert.True(t, apperror.IsValidation(err))
	}
}
