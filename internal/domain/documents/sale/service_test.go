package sale

import (
	"context"
	"fmt"
	"strings"
	"sync"
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

// memEnv is an in-memory stand-in for the database. Row locks are real
// mutexes per product held until transaction end, so concurrent
// commits interleave the way they would against Postgres FOR UPDATE.
type memEnv struct {
	mu     sync.Mutex
	locks  map[id.ID]*sync.Mutex
	onHand map[id.ID]types.Quantity

	movements []*entity.StockMovement
	docs      map[id.ID]*Sale
	lines     map[id.ID][]Line
}

func newMemEnv() *memEnv {
	return &memEnv{
		locks:  make(map[id.ID]*sync.Mutex),
		onHand: make(map[id.ID]types.Quantity),
		docs:   make(map[id.ID]*Sale),
		lines:  make(map[id.ID][]Line),
	}
}

// memTx buffers writes until commit and remembers which balances to
// restore on rollback.
type memTx struct {
	held     []*sync.Mutex
	snapshot map[id.ID]types.Quantity

	doc       *Sale
	docLines  []Line
	total     *types.Money
	movements []*entity.StockMovement
}

type txKey struct{}

func getTx(ctx context.Context) *memTx {
	state, _ := ctx.Value(txKey{}).(*memTx)
	return state
}

// --- tx.Manager ---

type memTxManager struct{ env *memEnv }

func (m *memTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	state := &memTx{snapshot: make(map[id.ID]types.Quantity)}
	ctx = context.WithValue(ctx, txKey{}, state)

	err := fn(ctx)

	m.env.mu.Lock()
	if err != nil {
		for productID, qty := range state.snapshot {
			m.env.onHand[productID] = qty
		}
	} else {
		if state.doc != nil {
			if state.total != nil {
				state.doc.Total = *state.total
			}
			m.env.docs[state.doc.ID] = state.doc
			m.env.lines[state.doc.ID] = state.docLines
		}
		m.env.movements = append(m.env.movements, state.movements...)
	}
	m.env.mu.Unlock()

	for _, lock := range state.held {
		lock.Unlock()
	}
	return err
}

// --- ledger.Repository ---

type memLedgerRepo struct{ env *memEnv }

func (r *memLedgerRepo) GetOnHandForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error) {
	state := getTx(ctx)

	r.env.mu.Lock()
	lock, ok := r.env.locks[productID]
	if !ok {
		r.env.mu.Unlock()
		return 0, apperror.NewNotFound("product", productID.String())
	}
	r.env.mu.Unlock()

	lock.Lock()
	state.held = append(state.held, lock)

	r.env.mu.Lock()
	defer r.env.mu.Unlock()
	qty := r.env.onHand[productID]
	if _, seen := state.snapshot[productID]; !seen {
		state.snapshot[productID] = qty
	}
	return qty, nil
}

func (r *memLedgerRepo) SetOnHand(_ context.Context, productID id.ID, quantity types.Quantity) error {
	r.env.mu.Lock()
	defer r.env.mu.Unlock()
	r.env.onHand[productID] = quantity
	return nil
}

func (r *memLedgerRepo) RecordMovement(ctx context.Context, movement *entity.StockMovement) error {
	getTx(ctx).movements = append(getTx(ctx).movements, movement)
	return nil
}

func (r *memLedgerRepo) ListMovements(_ context.Context, _ ledger.MovementFilter) ([]ledger.MovementRow, error) {
	return nil, nil
}

// --- Repository ---

type memSaleRepo struct{ env *memEnv }

func (r *memSaleRepo) Create(ctx context.Context, doc *Sale) error {
	getTx(ctx).doc = doc
	return nil
}

func (r *memSaleRepo) SaveLines(ctx context.Context, _ id.ID, lines []Line) error {
	getTx(ctx).docLines = lines
	return nil
}

func (r *memSaleRepo) SetTotal(ctx context.Context, _ id.ID, total types.Money) error {
	getTx(ctx).total = &total
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, docID id.ID) (*Sale, error) {
	r.env.mu.Lock()
	defer r.env.mu.Unlock()
	doc, ok := r.env.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("sale", docID.String())
	}
	copied := *doc
	return &copied, nil
}

func (r *memSaleRepo) GetLines(_ context.Context, docID id.ID) ([]Line, error) {
	r.env.mu.Lock()
	defer r.env.mu.Unlock()
	return r.env.lines[docID], nil
}

func (r *memSaleRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Sale], error) {
	r.env.mu.Lock()
	defer r.env.mu.Unlock()
	result := domain.ListResult[*Sale]{}
	for _, doc := range r.env.docs {
		result.Items = append(result.Items, doc)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

// --- numerator ---

type fakeNumerator struct{ counter atomic.Int64 }

func (n *fakeNumerator) GetNextNumber(_ context.Context, cfg numerator.Config, _ time.Time) (string, error) {
	return fmt.Sprintf("%s-2026-%05d", cfg.Prefix, n.counter.Add(1)), nil
}

// --- harness ---

func newTestService(env *memEnv) *Service {
	txm := &memTxManager{env: env}
	led := ledger.NewService(&memLedgerRepo{env: env})
	engine := posting.NewEngine(txm, led)
	return NewService(&memSaleRepo{env: env}, engine, &fakeNumerator{})
}

func (e *memEnv) addProduct(qty types.Quantity) id.ID {
	productID := id.New()
	e.locks[productID] = &sync.Mutex{}
	e.onHand[productID] = qty
	return productID
}

func TestCommit(t *testing.T) {
	env := newMemEnv()
	svc := newTestService(env)
	p1 := env.addProduct(20)
	p2 := env.addProduct(5)

	doc := NewSale(id.New(), id.New())
	doc.AddLine(p1, 5, types.MustMoney("10.00"))
	doc.AddLine(p2, 2, types.MustMoney("3.50"))

	committed, err := svc.Commit(context.Background(), doc)
	require.NoError(t, err)

	assert.True(t, committed.Total.Equal(types.MustMoney("57.00")), "got %s", committed.Total)
	assert.True(t, strings.HasPrefix(committed.Number, "SAL-"))
	require.Len(t, committed.Lines, 2)
	assert.True(t, committed.Lines[0].Subtotal.Equal(types.MustMoney("50.00")))

	assert.Equal(t, types.Quantity(15), env.onHand[p1])
	assert.Equal(t, types.Quantity(3), env.onHand[p2])

	require.Len(t, env.movements, 2)
	assert.Equal(t, doc.ID, env.movements[0].RecorderID)
	assert.Equal(t, DocumentType, env.movements[0].RecorderType)
	assert.Equal(t, entity.DirectionDecrease, env.movements[0].Direction)
}

func TestCommit_InsufficientStockRollsBackEverything(t *testing.T) {
	env := newMemEnv()
	svc := newTestService(env)
	p1 := env.addProduct(20)
	p2 := env.addProduct(3)

	doc := NewSale(id.New(), id.New())
	doc.AddLine(p1, 5, types.MustMoney("10.00"))
	doc.AddLine(p2, 5, types.MustMoney("2.00"))

	_, err := svc.Commit(context.Background(), doc)

	require.Error(t, err)
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.CodeInsufficientStock, appErr.Code)
	assert.Equal(t, types.Quantity(5), appErr.Details["requested"])
	assert.Equal(t, types.Quantity(3), appErr.Details["available"])

	// first line's decrease was rolled back, nothing persisted
	assert.Equal(t, types.Quantity(20), env.onHand[p1])
	assert.Equal(t, types.Quantity(3), env.onHand[p2])
	assert.Empty(t, env.docs)
	assert.Empty(t, env.movements)
}

func TestCommit_EmptyLines(t *testing.T) {
	env := newMemEnv()
	svc := newTestService(env)

	doc := NewSale(id.New(), id.New())
	_, err := svc.Commit(context.Background(), doc)

	assert.True(t, apperror.IsValidation(err))
}

func TestCommit_UnknownProduct(t *testing.T) {
	env := newMemEnv()
	svc := newTestService(env)

	doc := NewSale(id.New(), id.New())
	doc.AddLine(id.New(), 1, types.MustMoney("1.00"))

	_, err := svc.Commit(context.Background(), doc)
	assert.True(t, apperror.IsNotFound(err))
}

// Two concurrent sales of 6 against a balance of 10: the row lock
// serializes them, so exactly one commits and the balance lands at 4.
func TestCommit_ConcurrentSalesNeverOversell(t *testing.T) {
	env := newMemEnv()
	svc := newTestService(env)
	productID := env.addProduct(10)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc := NewSale(id.New(), id.New())
			doc.AddLine(productID, 6, types.MustMoney("1.00"))
			_, errs[i] = svc.Commit(context.Background(), doc)
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.True(t, apperror.IsInsufficientStock(err))
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactly one of the two sales must fail")
	assert.Equal(t, types.Quantity(4), env.onHand[productID])
	assert.Len(t, env.docs, 1)
	assert.Len(t, env.movements, 1)
}
