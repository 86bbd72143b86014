package posting

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
	"stockbook/internal/domain/ledger"
)

// fakeTxManager runs the closure and remembers whether it failed, so
// tests can assert a rollback happened.
type fakeTxManager struct {
	rolledBack bool
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.rolledBack = true
		return err
	}
	return nil
}

type fakeLedger struct {
	applied []ledger.Adjustment
	failOn  id.ID
	failErr error
}

func (l *fakeLedger) Apply(_ context.Context, adj ledger.Adjustment) error {
	if adj.ProductID == l.failOn {
		return l.failErr
	}
	l.applied = append(l.applied, adj)
	return nil
}

func testDoc(lines []Line) (Doc, *bool, *types.Money) {
	persisted := false
	var gotTotal types.Money
	doc := Doc{
		ID:           id.New(),
		RecorderType: "doc_sale",
		Direction:    entity.DirectionDecrease,
		Date:         time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		Lines:        lines,
		Persist: func(context.Context) error {
			persisted = true
			return nil
		},
		SetTotal: func(_ context.Context, total types.Money) error {
			gotTotal = total
			return nil
		},
	}
	return doc, &persisted, &gotTotal
}

func TestPost_CommitsAllLinesInOrder(t *testing.T) {
	led := &fakeLedger{}
	engine := NewEngine(&fakeTxManager{}, led)

	p1, p2 := id.New(), id.New()
	doc, persisted, gotTotal := testDoc([]Line{
		{LineID: id.New(), ProductID: p1, Quantity: 5, UnitPrice: types.MustMoney("10.00")},
		{LineID: id.New(), ProductID: p2, Quantity: 2, UnitPrice: types.MustMoney("3.50")},
	})

	total, err := engine.Post(context.Background(), doc)

	require.NoError(t, err)
	assert.True(t, *persisted)
	assert.True(t, total.Equal(types.MustMoney("57.00")), "got %s", total)
	assert.True(t, gotTotal.Equal(total))

	require.Len(t, led.applied, 2)
	assert.Equal(t, p1, led.applied[0].ProductID)
	assert.Equal(t, p2, led.applied[1].ProductID)
	assert.Equal(t, doc.ID, led.applied[0].RecorderID)
	assert.Equal(t, entity.DirectionDecrease, led.applied[0].Direction)
	assert.Equal(t, doc.Date, led.applied[0].Period)
}

func TestPost_FirstInsufficientLineAborts(t *testing.T) {
	p1, p2, p3 := id.New(), id.New(), id.New()
	led := &fakeLedger{
		failOn:  p2,
		failErr: apperror.NewInsufficientStock(p2.String(), 5, 3),
	}
	txm := &fakeTxManager{}
	engine := NewEngine(txm, led)

	doc, _, _ := testDoc([]Line{
		{LineID: id.New(), ProductID: p1, Quantity: 1, UnitPrice: types.MustMoney("1.00")},
		{LineID: id.New(), ProductID: p2, Quantity: 5, UnitPrice: types.MustMoney("1.00")},
		{LineID: id.New(), ProductID: p3, Quantity: 1, UnitPrice: types.MustMoney("1.00")},
	})

	_, err := engine.Post(context.Background(), doc)

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.True(t, txm.rolledBack)

	// the third line was never attempted
	require.Len(t, led.applied, 1)
	assert.Equal(t, p1, led.applied[0].ProductID)
}

func TestPost_EmptyLinesRejectedBeforeTransaction(t *testing.T) {
	led := &fakeLedger{}
	txm := &fakeTxManager{}
	engine := NewEngine(txm, led)

	doc, persisted, _ := testDoc(nil)
	_, err := engine.Post(context.Background(), doc)

	assert.True(t, apperror.IsValidation(err))
	assert.False(t, *persisted)
	assert.False(t, txm.rolledBack)
}

func TestPost_InvalidLineRejectedBeforeTransaction(t *testing.T) {
	engine := NewEngine(&fakeTxManager{}, &fakeLedger{})

	doc, persisted, _ := testDoc([]Line{
		{LineID: id.New(), ProductID: id.New(), Quantity: 0, UnitPrice: types.MustMoney("1.00")},
	})
	_, err := engine.Post(context.Background(), doc)

	assert.True(t, apperror.IsValidation(err))
	assert.False(t, *persisted)
}

func TestPost_UnknownDirectionRejected(t *testing.T) {
	engine := NewEngine(&fakeTxManager{}, &fakeLedger{})

	doc, _, _ := testDoc([]Line{
		{LineID: id.New(), ProductID: id.New(), Quantity: 1, UnitPrice: types.MustMoney("1.00")},
	})
	doc.Direction = entity.Direction("sideways")

	_, err := engine.Post(context.Background(), doc)
	assert.True(t, apperror.IsValidation(err))
}

func TestLineSubtotal(t *testing.T) {
	line := Line{Quantity: 3, UnitPrice: types.MustMoney("2.25")}
	assert.True(t, line.Subtotal().Equal(types.MustMoney("6.75")))
}
