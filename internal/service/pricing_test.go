package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBill(t *testing.T) {
	tests := []struct {
		name                     string
		subtotal, rate, discount float64
		wantTax, wantTotal       float64
		wantErr                  bool
	}{
		{name: "default rate", subtotal: 100, rate: 10, discount: 0, wantTax: 10, wantTotal: 110},
		{name: "discount applied after tax", subtotal: 250, rate: 5, discount: 20, wantTax: 12.5, wantTotal: 242.5},
		{name: "tax rounds to cents", subtotal: 33.33, rate: 10, discount: 0, wantTax: 3.33, wantTotal: 36.66},
		{name: "zero rate", subtotal: 42, rate: 0, discount: 2, wantTax: 0, wantTotal: 40},
		{name: "negative rate", subtotal: 100, rate: -1, wantErr: true},
		{name: "negative discount", subtotal: 100, rate: 10, discount: -5, wantErr: true},
		{name: "discount larger than amount", subtotal: 10, rate: 10, discount: 50, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBill(tt.subtotal, tt.rate, tt.discount)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantTax, got.Tax, 1e-9)
			assert.InDelta(t, tt.wantTotal, got.Total, 1e-9)
			assert.InDelta(t, got.Subtotal+got.Tax-got.Discount, got.Total, 0.005)
		})
	}
}

func TestBillNumberer_NeverRepeats(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	b := &BillNumberer{now: func() time.Time { return fixed }}

	assert.Equal(t, "BILL-1700000000000", b.Next())
	assert.Equal(t, "BILL-1700000000001", b.Next())
	assert.Equal(t, "BILL-1700000000002", b.Next())
}

func TestBillNumberer_FollowsClock(t *testing.T) {
	b := NewBillNumberer()
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		n := b.Next()
		require.False(t, seen[n], n)
		seen[n] = true
	}
}

func TestParseReservationDate(t *testing.T) {
	want := time.Date(2026, 5, 1, 19, 30, 0, 0, time.Local).UTC()

	for _, in := range []string{"2026-05-01T19:30", "2026-05-01 19:30:00", "2026-05-01T19:30:00"} {
		got, err := ParseReservationDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	got, err := ParseReservationDate("2026-05-01T19:30:00Z")
	require.NoError(t, err)
	assert.True(t, time.Date(2026, 5, 1, 19, 30, 0, 0, time.UTC).Equal(got))

	_, err = ParseReservationDate("next friday")
	require.ErrorIs(t, err, ErrValidation)
}

func TestStartOfDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
	got := startOfDay(now)
	assert.True(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local).Equal(got))
	assert.Equal(t, time.UTC, got.Location())
}
