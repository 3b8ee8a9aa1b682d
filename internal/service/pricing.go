package service

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// round2 rounds a money amount to cents, halves away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type BillAmounts struct {
	Subtotal float64
	Tax      float64
	Discount float64
	Total    float64
}

// ComputeBill derives tax and total from an order subtotal, a tax rate in
// percent and an absolute discount.
func ComputeBill(subtotal, taxRate, discount float64) (BillAmounts, error) {
	if taxRate < 0 {
		return BillAmounts{}, invalid("tax_rate must be >= 0")
	}
	if discount < 0 {
		return BillAmounts{}, invalid("discount must be >= 0")
	}

	subtotal = round2(subtotal)
	discount = round2(discount)
	tax := round2(subtotal * taxRate / 100)
	total := round2(subtotal + tax - discount)
	if total < 0 {
		return BillAmounts{}, invalid("discount exceeds bill amount")
	}

	return BillAmounts{Subtotal: subtotal, Tax: tax, Discount: discount, Total: total}, nil
}

// BillNumberer hands out BILL-<unix millis> numbers. Numbers never repeat
// within a process even when two bills are created in the same millisecond.
type BillNumberer struct {
	last atomic.Int64
	now  func() time.Time
}

func NewBillNumberer() *BillNumberer {
	return &BillNumberer{now: time.Now}
}

func (b *BillNumberer) Next() string {
	for {
		last := b.last.Load()
		ms := b.now().UnixMilli()
		if ms <= last {
			ms = last + 1
		}
		if b.last.CompareAndSwap(last, ms) {
			return fmt.Sprintf("BILL-%d", ms)
		}
	}
}
