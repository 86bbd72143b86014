package purchase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbook/internal/core/apperror"
	"stockbook/internal/core/entity"
	"stockbook/internal/core/id"
	"stockbook/internal/core/types"
	"stockbook/internal/domain"
	"stockbook/internal/domain/ledger"
	"stockbook/internal/domain/posting"
	"stockbook/pkg/numerator"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeLedgerRepo struct {
	onHand    map[id.ID]types.Quantity
	movements []*entity.StockMovement
}

func (r *fakeLedgerRepo) GetOnHandForUpdate(_ context.Context, productID id.ID) (types.Quantity, error) {
	qty, ok := r.onHand[productID]
	if !ok {
		return 0, apperror.NewNotFound("product", productID.String())
	}
	return qty, nil
}

func (r *fakeLedgerRepo) SetOnHand(_ context.Context, productID id.ID, quantity types.Quantity) error {
	r.onHand[productID] = quantity
	return nil
}

func (r *fakeLedgerRepo) RecordMovement(_ context.Context, movement *entity.StockMovement) error {
	r.movements = append(r.movements, movement)
	return nil
}

func (r *fakeLedgerRepo) ListMovements(_ context.Context, _ ledger.MovementFilter) ([]ledger.MovementRow, error) {
	return nil, nil
}

type fakeRepo struct {
	docs   map[id.ID]*Purchase
	lines  map[id.ID][]Line
	totals map[id.ID]types.Money
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:   make(map[id.ID]*Purchase),
		lines:  make(map[id.ID][]Line),
		totals: make(map[id.ID]types.Money),
	}
}

func (r *fakeRepo) Create(_ context.Context, doc *Purchase) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) SaveLines(_ context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *fakeRepo) SetTotal(_ context.Context, docID id.ID, total types.Money) error {
	r.totals[docID] = total
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, docID id.ID) (*Purchase, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", docID.String())
	}
	copied := *doc
	if total, ok := r.totals[docID]; ok {
		copied.Total = total
	}
	return &copied, nil
}

func (r *fakeRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *fakeRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Purchase], error) {
	result := domain.ListResult[*Purchase]{}
	for _, doc := range r.docs {
		result.Items = append(result.Items, doc)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

type fakeNumerator struct{ counter atomic.Int64 }

func (n *fakeNumerator) GetNextNumber(_ context.Context, cfg numerator.Config, _ time.Time) (string, error) {
	return fmt.Sprintf("%s-2026-%05d", cfg.Prefix, n.counter.Add(1)), nil
}

func TestCommit(t *testing.T) {
	ledgerRepo := &fakeLedgerRepo{onHand: map[id.ID]types.Quantity{}}
	productID := id.New()
	ledgerRepo.onHand[productID] = 2

	repo := newFakeRepo()
	engine := posting.NewEngine(fakeTxManager{}, ledger.NewService(ledgerRepo))
	svc := NewService(repo, engine, &fakeNumerator{})

	doc := NewPurchase(id.New(), id.New())
	doc.AddLine(productID, 8, types.MustMoney("12.50"))

	committed, err := svc.Commit(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, committed.Total.Equal(types.MustMoney("100.00")), "got %s", committed.Total)
	assert.True(t, strings.HasPrefix(committed.Number, "PUR-"))
	require.Len(t, committed.Lines, 1)
	assert.True(t, committed.Lines[0].Subtotal.Equal(types.MustMoney("100.00")))

	// stock increased
	assert.Equal(t, types.Quantity(10), ledgerRepo.onHand[productID])
	require.Len(t, ledgerRepo.movements, 1)
	assert.Equal(t, entity.DirectionIncrease, ledgerRepo.movements[0].Direction)
	assert.Equal(t, DocumentType, ledgerRepo.movements[0].RecorderType)
}

func TestCommit_ValidationFailures(t *testing.T) {
	repo := newFakeRepo()
	engine := posting.NewEngine(fakeTxManager{}, ledger.NewService(&fakeLedgerRepo{onHand: map[id.ID]types.Quantity{}}))
	svc := NewService(repo, engine, &fakeNumerator{})

	t.Run("no supplier", func(t *testing.T) {
		doc := NewPurchase(id.Nil(), id.New())
		doc.AddLine(id.New(), 1, types.MustMoney("1.00"))
		_, err := svc.Commit(context.Background(), doc)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("no lines", func(t *testing.T) {
		doc := NewPurchase(id.New(), id.New())
		_, err := svc.Commit(context.Background(), doc)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("future date", func(t *testing.T) {
		doc := NewPurchase(id.New(), id.New())
		doc.Date = time.Now().UTC().Add(48 * time.Hour)
		doc.AddLine(id.New(), 1, types.MustMoney("1.00"))
		_, err := svc.Commit(context.Background(), doc)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("zero quantity", func(t *testing.T) {
		doc := NewPurchase(id.New(), id.New())
		doc.AddLine(id.New(), 0, types.MustMoney("1.00"))
		_, err := svc.Commit(context.Background(), doc)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("nothing persisted on failure", func(t *testing.T) {
		assert.Empty(t, repo.docs)
	})
}

func TestCommit_KeepsProvidedNumber(t *testing.T) {
	ledgerRepo := &fakeLedgerRepo{onHand: map[id.ID]types.Quantity{}}
	productID := id.New()
	ledgerRepo.onHand[productID] = 0

	repo := newFakeRepo()
	engine := posting.NewEngine(fakeTxManager{}, ledger.NewService(ledgerRepo))
	svc := NewService(repo, engine, &fakeNumerator{})

	doc := NewPurchase(id.New(), id.New())
	doc.Number = "PUR-2026-99999"
	doc.AddLine(productID, 1, types.MustMoney("1.00"))

	committed, err := svc.Commit(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, "PUR-2026-99999", committed.Number)
}
