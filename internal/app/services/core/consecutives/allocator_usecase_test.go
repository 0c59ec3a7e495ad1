package consecutives

import (
	"context"
	"fmt"
	"pathsys-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConsecutiveRepository struct {
	counters map[string]int
}

func newFakeConsecutiveRepository() *fakeConsecutiveRepository {
	return &fakeConsecutiveRepository{counters: map[string]int{}}
}

func (f *fakeConsecutiveRepository) Next(ctx context.Context, kind string, year int) (int, error) {
	key := fmt.Sprintf("%s/%d", kind, year)
	f.counters[key]++
	return f.counters[key], nil
}

func (f *fakeConsecutiveRepository) Peek(ctx context.Context, kind string, year int) (int, error) {
	return f.counters[fmt.Sprintf("%s/%d", kind, year)] + 1, nil
}

func TestFormatCode(t *testing.T) {
	t.Run("Case Code Is Zero Padded To Five", func(t *testing.T) {
		assert.Equal(t, "2026-00001", FormatCode(constvars.CounterKindCase, 2026, 1))
		assert.Equal(t, "2026-12345", FormatCode(constvars.CounterKindCase, 2026, 12345))
	})

	t.Run("Approval Code Carries AP Prefix", func(t *testing.T) {
		assert.Equal(t, "AP-2026-007", FormatCode(constvars.CounterKindApproval, 2026, 7))
	})

	t.Run("Ticket Code Carries T Prefix", func(t *testing.T) {
		assert.Equal(t, "T-2026-042", FormatCode(constvars.CounterKindTicket, 2026, 42))
	})
}

func TestAllocatorUsecase(t *testing.T) {
	ctx := context.Background()

	t.Run("NextCode Mints Monotonic Codes", func(t *testing.T) {
		allocator := NewAllocatorUsecase(newFakeConsecutiveRepository())

		first, err := allocator.NextCode(ctx, constvars.CounterKindCase, 2026)
		assert.NoError(t, err)
		second, err := allocator.NextCode(ctx, constvars.CounterKindCase, 2026)
		assert.NoError(t, err)

		assert.Equal(t, "2026-00001", first)
		assert.Equal(t, "2026-00002", second)
	})

	t.Run("PeekCode Does Not Mint", func(t *testing.T) {
		allocator := NewAllocatorUsecase(newFakeConsecutiveRepository())

		peeked, err := allocator.PeekCode(ctx, constvars.CounterKindCase, 2026)
		assert.NoError(t, err)
		assert.Equal(t, "2026-00001", peeked)

		// A second peek sees the same number.
		again, err := allocator.PeekCode(ctx, constvars.CounterKindCase, 2026)
		assert.NoError(t, err)
		assert.Equal(t, peeked, again)
	})

	t.Run("Kinds Count Independently", func(t *testing.T) {
		allocator := NewAllocatorUsecase(newFakeConsecutiveRepository())

		caseCode, err := allocator.NextCode(ctx, constvars.CounterKindCase, 2026)
		assert.NoError(t, err)
		approvalCode, err := allocator.NextCode(ctx, constvars.CounterKindApproval, 2026)
		assert.NoError(t, err)

		assert.Equal(t, "2026-00001", caseCode)
		assert.Equal(t, "AP-2026-001", approvalCode)
	})
}
