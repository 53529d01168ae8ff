package services

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	"perfume-store/models"
	"perfume-store/repositories"
)

type fakeCoupons struct {
	discountPercent float64
	err             error
}

func (f fakeCoupons) ValidateCoupon(ctx context.Context, code string) (models.Coupon, error) {
	if f.err != nil {
		return models.Coupon{}, f.err
	}
	return models.Coupon{Code: code, DiscountPercent: f.discountPercent}, nil
}

type fakeQuoter struct {
	mu    sync.Mutex
	calls []string
	price float64
	err   error

	// When set, each call signals entered and then waits for release.
	entered chan struct{}
	release chan struct{}
}

func (q *fakeQuoter) QuoteShipping(ctx context.Context, postcode, method string, cartTotal float64) (float64, error) {
	q.mu.Lock()
	q.calls = append(q.calls, postcode)
	q.mu.Unlock()

	if q.entered != nil {
		q.entered <- struct{}{}
	}
	if q.release != nil {
		<-q.release
	}
	return q.price, q.err
}

func (q *fakeQuoter) postcodes() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]string, len(q.calls))
	copy(out, q.calls)
	return out
}

func newTestCart(t *testing.T, inputs ...models.CartLineInput) *CartStore {
	t.Helper()
	ctx := context.Background()
	store := NewCartStore(ctx, "checkout-test", repositories.NewMemoryCartRepository())
	for _, in := range inputs {
		store.AddItem(ctx, in)
	}
	return store
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached before deadline")
}

func TestQuoteIsIdempotent(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 60))
	composer := NewQuoteComposer(cart, fakeCoupons{discountPercent: 10}, &fakeQuoter{price: 5}, QuoteSettings{})

	if _, err := composer.ApplyCoupon(context.Background(), "WELCOME10"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}

	first := composer.Quote()
	second := composer.Quote()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recomputing with identical inputs changed the quote:\n%+v\n%+v", first, second)
	}
}

func TestApplyCouponReplacesNotStacks(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 100))
	composer := NewQuoteComposer(cart, fakeCoupons{discountPercent: 10}, &fakeQuoter{}, QuoteSettings{})
	ctx := context.Background()

	if _, err := composer.ApplyCoupon(ctx, "FIRST"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	if _, err := composer.ApplyCoupon(ctx, "SECOND"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}

	quote := composer.Quote()
	if quote.DiscountAmount != 10 {
		t.Fatalf("a second coupon must replace the first, expected discount 10, got %v", quote.DiscountAmount)
	}
	if coupon := composer.Coupon(); coupon == nil || coupon.Code != "SECOND" {
		t.Fatalf("expected coupon SECOND applied, got %+v", coupon)
	}
}

func TestApplyCouponFailureKeepsPriorCoupon(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 100))
	composer := NewQuoteComposer(cart, fakeCoupons{discountPercent: 15}, &fakeQuoter{}, QuoteSettings{})
	ctx := context.Background()

	if _, err := composer.ApplyCoupon(ctx, "GOOD"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}

	composer.coupons = fakeCoupons{err: errors.New("invalid code")}
	if _, err := composer.ApplyCoupon(ctx, "BAD"); err == nil {
		t.Fatal("expected validation error")
	}

	if coupon := composer.Coupon(); coupon == nil || coupon.Code != "GOOD" {
		t.Fatalf("failed validation must leave the prior coupon applied, got %+v", coupon)
	}
}

func TestRemoveCouponClearsDiscount(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 100))
	composer := NewQuoteComposer(cart, fakeCoupons{discountPercent: 10}, &fakeQuoter{}, QuoteSettings{})

	if _, err := composer.ApplyCoupon(context.Background(), "WELCOME10"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	composer.RemoveCoupon()

	quote := composer.Quote()
	if quote.DiscountAmount != 0 || quote.DiscountPercent != 0 {
		t.Fatalf("expected no discount after removal, got %+v", quote)
	}
}

func TestDebouncedEditSupersedesInFlightQuote(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 60))
	quoter := &fakeQuoter{price: 4.5}
	composer := NewQuoteComposer(cart, fakeCoupons{}, quoter, QuoteSettings{Debounce: 20 * time.Millisecond})

	composer.SetShipping("SW1", "standard")
	composer.SetShipping("SW1A 1AA", "standard")

	waitFor(t, 2*time.Second, func() bool { return !composer.Quote().Calculating })

	calls := quoter.postcodes()
	if len(calls) != 1 {
		t.Fatalf("expected the first edit to be superseded before firing, got calls %v", calls)
	}
	if calls[0] != "SW1A 1AA" {
		t.Fatalf("expected quote for the latest postcode, got %q", calls[0])
	}

	quote := composer.Quote()
	if quote.ShippingCost == nil || *quote.ShippingCost != 4.5 {
		t.Fatalf("expected shipping cost 4.5, got %+v", quote.ShippingCost)
	}
}

func TestShippingFailureFallsBackToFixedPrice(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 60))
	quoter := &fakeQuoter{err: errors.New("pricing service down")}
	composer := NewQuoteComposer(cart, fakeCoupons{}, quoter, QuoteSettings{
		Debounce:              10 * time.Millisecond,
		FallbackShippingPrice: 5,
	})

	composer.SetShipping("SW1A 1AA", "standard")
	waitFor(t, 2*time.Second, func() bool { return !composer.Quote().Calculating })

	quote := composer.Quote()
	if quote.ShippingCost == nil || *quote.ShippingCost != 5 {
		t.Fatalf("expected fallback shipping cost 5, got %+v", quote.ShippingCost)
	}
	if !quote.CanSubmitPayment {
		t.Fatal("fallback-resolved shipping must not block payment")
	}
}

func TestShortPostcodeSkipsQuoteAndAllowsPayment(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 60))
	quoter := &fakeQuoter{price: 5}
	composer := NewQuoteComposer(cart, fakeCoupons{}, quoter, QuoteSettings{Debounce: 10 * time.Millisecond})

	composer.SetShipping("SW", "standard")
	time.Sleep(50 * time.Millisecond)

	if got := quoter.postcodes(); len(got) != 0 {
		t.Fatalf("short postcode must not trigger a quote, got calls %v", got)
	}
	quote := composer.Quote()
	if quote.Calculating {
		t.Fatal("short postcode must not enter calculating")
	}
	if quote.ShippingCost != nil {
		t.Fatalf("expected no shipping cost, got %v", *quote.ShippingCost)
	}
	if !quote.CanSubmitPayment {
		t.Fatal("payment stays allowed while the postcode is too short to quote")
	}
}

func TestPaymentBlockedWhileCalculating(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 60))
	composer := NewQuoteComposer(cart, fakeCoupons{}, &fakeQuoter{price: 5}, QuoteSettings{Debounce: time.Hour})

	composer.SetShipping("SW1A 1AA", "standard")

	if composer.CanSubmitPayment() {
		t.Fatal("payment must be blocked while a quote is outstanding")
	}
	if !composer.Quote().Calculating {
		t.Fatal("expected calculating state after a quotable postcode edit")
	}
}

func TestCloseDiscardsLateQuote(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 60))
	quoter := &fakeQuoter{
		price:   5,
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	composer := NewQuoteComposer(cart, fakeCoupons{}, quoter, QuoteSettings{Debounce: 5 * time.Millisecond})

	composer.SetShipping("SW1A 1AA", "standard")
	<-quoter.entered

	composer.Close()
	close(quoter.release)
	time.Sleep(50 * time.Millisecond)

	if cost := composer.Quote().ShippingCost; cost != nil {
		t.Fatalf("late response after close must be discarded, got cost %v", *cost)
	}
}

func TestQuoteTotals(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 50, 60))
	composer := NewQuoteComposer(cart, fakeCoupons{discountPercent: 10}, &fakeQuoter{price: 5}, QuoteSettings{
		Debounce: 5 * time.Millisecond,
	})

	if _, err := composer.ApplyCoupon(context.Background(), "WELCOME10"); err != nil {
		t.Fatalf("apply coupon: %v", err)
	}
	composer.SetShipping("SW1A 1AA", "standard")
	waitFor(t, 2*time.Second, func() bool { return !composer.Quote().Calculating })

	quote := composer.Quote()
	if quote.Subtotal != 60 {
		t.Fatalf("expected subtotal 60, got %v", quote.Subtotal)
	}
	if quote.DiscountAmount != 6 {
		t.Fatalf("expected discount 6, got %v", quote.DiscountAmount)
	}
	if quote.ShippingCost == nil || *quote.ShippingCost != 5 {
		t.Fatalf("expected shipping 5, got %+v", quote.ShippingCost)
	}
	if quote.GrandTotal != 59 {
		t.Fatalf("expected grand total 59, got %v", quote.GrandTotal)
	}
	if quote.FreeShippingRemaining != 0 {
		t.Fatalf("expected no free-shipping gap above the threshold, got %v", quote.FreeShippingRemaining)
	}
}

func TestFreeShippingRemainingClampsAtZero(t *testing.T) {
	cart := newTestCart(t, testInput("p1", 10, 30))
	composer := NewQuoteComposer(cart, fakeCoupons{}, &fakeQuoter{}, QuoteSettings{FreeShippingThreshold: 50})

	if got := composer.Quote().FreeShippingRemaining; got != 20 {
		t.Fatalf("expected 20 remaining to free shipping, got %v", got)
	}

	cart.AddItem(context.Background(), testInput("p2", 50, 120))
	if got := composer.Quote().FreeShippingRemaining; got != 0 {
		t.Fatalf("expected remaining clamped at 0, got %v", got)
	}
}

func TestCheckoutManagerDiscard(t *testing.T) {
	cart := newTestCart(t)
	manager := NewCheckoutManager(fakeCoupons{}, &fakeQuoter{}, QuoteSettings{})

	a := manager.Get("s1", cart)
	if manager.Get("s1", cart) != a {
		t.Fatal("same session must share one composer")
	}

	manager.Discard("s1")
	if manager.Get("s1", cart) == a {
		t.Fatal("discard must drop the composer so the next checkout starts fresh")
	}

	a.mu.Lock()
	closed := a.closed
	a.mu.Unlock()
	if !closed {
		t.Fatal("discard must close the dropped composer")
	}
}
