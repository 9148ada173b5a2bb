package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trackroomhq/trackroom/internal/studio/domain"
)

func TestInvoiceTotals(t *testing.T) {
	t.Parallel()

	inv := domain.Invoice{
		TaxRateBps: 1000, // 10%
		Lines: []domain.InvoiceLine{
			{Description: "Tracking, Room A", Quantity: 4, UnitCents: 8000},
			{Description: "Mixing", Quantity: 2, UnitCents: 12000},
		},
	}

	subtotal, tax, total := inv.Totals()
	require.Equal(t, int64(56000), subtotal)
	require.Equal(t, int64(5600), tax)
	require.Equal(t, int64(61600), total)
}

func TestInvoiceTotalsRounding(t *testing.T) {
	t.Parallel()

	// 8.25% of $0.99 is 8.1675 cents; rounds to 8.
	inv := domain.Invoice{
		TaxRateBps: 825,
		Lines:      []domain.InvoiceLine{{Quantity: 1, UnitCents: 99}},
	}
	_, tax, total := inv.Totals()
	require.Equal(t, int64(8), tax)
	require.Equal(t, int64(107), total)

	// 10% of $0.15 is exactly 1.5 cents; half rounds up.
	inv = domain.Invoice{
		TaxRateBps: 1000,
		Lines:      []domain.InvoiceLine{{Quantity: 1, UnitCents: 15}},
	}
	_, tax, _ = inv.Totals()
	require.Equal(t, int64(2), tax)
}

func TestInvoiceTotalsEmpty(t *testing.T) {
	t.Parallel()

	subtotal, tax, total := domain.Invoice{TaxRateBps: 1000}.Totals()
	require.Zero(t, subtotal)
	require.Zero(t, tax)
	require.Zero(t, total)
}

func TestInvoiceStatusTransitions(t *testing.T) {
	t.Parallel()

	allowed := map[domain.InvoiceStatus][]domain.InvoiceStatus{
		domain.InvoiceDraft: {domain.InvoiceSent, domain.InvoiceVoid},
		domain.InvoiceSent:  {domain.InvoicePaid, domain.InvoiceVoid},
		domain.InvoicePaid:  {},
		domain.InvoiceVoid:  {},
	}

	all := []domain.InvoiceStatus{
		domain.InvoiceDraft, domain.InvoiceSent, domain.InvoicePaid, domain.InvoiceVoid,
	}

	for from, nexts := range allowed {
		ok := map[domain.InvoiceStatus]bool{}
		for _, n := range nexts {
			ok[n] = true
		}
		for _, to := range all {
			require.Equal(t, ok[to], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestSessionOverlaps(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := domain.Session{StartsAt: base, EndsAt: base.Add(2 * time.Hour)}

	require.True(t, s.Overlaps(base.Add(time.Hour), base.Add(3*time.Hour)))
	require.True(t, s.Overlaps(base.Add(-time.Hour), base.Add(time.Hour)))
	require.True(t, s.Overlaps(base.Add(30*time.Minute), base.Add(time.Hour)))

	// Touching intervals do not overlap; the range is half-open.
	require.False(t, s.Overlaps(base.Add(2*time.Hour), base.Add(3*time.Hour)))
	require.False(t, s.Overlaps(base.Add(-time.Hour), base))
}
