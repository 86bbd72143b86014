package numerator

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

// mockQuerier simulates the sys_sequences UPSERT behaviour.
type mockQuerier struct {
	mu   sync.Mutex
	vals map[string]int64
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.vals == nil {
		m.vals = make(map[string]int64)
	}
	key, _ := args[0].(string)
	m.vals[key]++
	return &mockRow{val: m.vals[key]}
}

func TestGetNextNumber_Sequential(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("TEST")
	period := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TEST-2026-00001" {
		t.Errorf("expected TEST-2026-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "TEST-2026-00002" {
		t.Errorf("expected TEST-2026-00002, got %s", num)
	}
}

func TestGetNextNumber_ResetPeriodKeys(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()

	cfg := DefaultConfig("PUR")
	cfg.ResetPeriod = "month"
	cfg.IncludeYear = false

	march := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	// Separate months use separate sequences.
	if num, _ := svc.GetNextNumber(ctx, cfg, march); num != "PUR-00001" {
		t.Errorf("march first number: got %s", num)
	}
	if num, _ := svc.GetNextNumber(ctx, cfg, april); num != "PUR-00001" {
		t.Errorf("april first number: got %s", num)
	}
	if num, _ := svc.GetNextNumber(ctx, cfg, march); num != "PUR-00002" {
		t.Errorf("march second number: got %s", num)
	}
}

func TestGetNextNumber_Concurrent(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("CNC")
	period := time.Now()

	const workers = 20
	var wg sync.WaitGroup
	seen := sync.Map{}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := svc.GetNextNumber(ctx, cfg, period)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			if _, dup := seen.LoadOrStore(num, true); dup {
				t.Errorf("duplicate number generated: %s", num)
			}
		}()
	}
	wg.Wait()
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"PUR-2026-00042", 42},
		{"SAL-00007", 7},
		{"garbage", -1},
		{"PUR-", -1},
		{"PUR-2026-xx", -1},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseNumber(tt.in); got != tt.want {
				t.Errorf("ParseNumber(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatNumber_PadWidth(t *testing.T) {
	svc := New(&mockQuerier{})
	cfg := Config{Prefix: "X", IncludeYear: false, PadWidth: 3}
	got := svc.formatNumber(cfg, time.Now(), 12)
	if got != "X-012" {
		t.Errorf("expected X-012, got %s", got)
	}

	// Zero pad width falls back to the default of 5.
	cfg.PadWidth = 0
	got = svc.formatNumber(cfg, time.Now(), 12)
	if want := fmt.Sprintf("X-%05d", 12); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
