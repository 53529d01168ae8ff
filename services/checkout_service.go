package services

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"perfume-store/models"
)

// CouponValidator and ShippingQuoter are the remote collaborators the quote
// composer depends on.
type CouponValidator interface {
	ValidateCoupon(ctx context.Context, code string) (models.Coupon, error)
}

type ShippingQuoter interface {
	QuoteShipping(ctx context.Context, postcode, method string, cartTotal float64) (float64, error)
}

// QuoteSettings carries the tunables the composer needs. Zero values fall
// back to the behavior of the original storefront.
type QuoteSettings struct {
	Debounce              time.Duration
	FallbackShippingPrice float64
	FreeShippingThreshold float64
	MinPostcodeLength     int
}

func (s QuoteSettings) withDefaults() QuoteSettings {
	if s.Debounce <= 0 {
		s.Debounce = 500 * time.Millisecond
	}
	if s.FallbackShippingPrice <= 0 {
		s.FallbackShippingPrice = 5
	}
	if s.FreeShippingThreshold <= 0 {
		s.FreeShippingThreshold = 50
	}
	if s.MinPostcodeLength <= 0 {
		s.MinPostcodeLength = 3
	}
	return s
}

// QuoteComposer combines the cart subtotal, an optionally applied coupon and
// an asynchronously fetched shipping cost into the checkout quote.
//
// Shipping quote lifecycle: Idle -> Calculating on a postcode edit
// (debounced, timer reset per edit) -> Resolved on success or
// FallbackResolved on remote failure; another edit returns to Calculating.
// Every path ends in a numeric shipping cost — there is no terminal failure
// state that blocks checkout.
//
// A monotonically increasing sequence token guards against racing responses:
// a quote that comes back for a superseded postcode is discarded, so a stale
// price can never win over a fresher one.
type QuoteComposer struct {
	cart     *CartStore
	coupons  CouponValidator
	shipping ShippingQuoter
	settings QuoteSettings

	mu           sync.Mutex
	coupon       *models.Coupon
	postcode     string
	method       string
	shippingCost *float64
	calculating  bool
	seq          uint64
	timer        *time.Timer
	closed       bool
}

func NewQuoteComposer(cart *CartStore, coupons CouponValidator, shipping ShippingQuoter, settings QuoteSettings) *QuoteComposer {
	return &QuoteComposer{
		cart:     cart,
		coupons:  coupons,
		shipping: shipping,
		settings: settings.withDefaults(),
		method:   "standard",
	}
}

// ApplyCoupon validates the code upstream. Success replaces any applied
// coupon; failure leaves prior state untouched and returns the error for the
// caller to surface.
func (c *QuoteComposer) ApplyCoupon(ctx context.Context, code string) (models.Coupon, error) {
	coupon, err := c.coupons.ValidateCoupon(ctx, code)
	if err != nil {
		return models.Coupon{}, err
	}

	c.mu.Lock()
	c.coupon = &coupon
	c.mu.Unlock()
	return coupon, nil
}

func (c *QuoteComposer) RemoveCoupon() {
	c.mu.Lock()
	c.coupon = nil
	c.mu.Unlock()
}

func (c *QuoteComposer) Coupon() *models.Coupon {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.coupon == nil {
		return nil
	}
	coupon := *c.coupon
	return &coupon
}

// SetShipping records the postcode and method and schedules a debounced
// shipping quote. Each edit resets the debounce timer and invalidates any
// in-flight request.
func (c *QuoteComposer) SetShipping(postcode, method string) {
	postcode = strings.TrimSpace(postcode)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.postcode = postcode
	if method != "" {
		c.method = method
	}

	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	if len(postcode) < c.settings.MinPostcodeLength {
		// Nothing worth quoting yet; payment stays allowed per the gate.
		c.calculating = false
		c.shippingCost = nil
		return
	}

	c.calculating = true
	c.shippingCost = nil
	seq := c.seq
	c.timer = time.AfterFunc(c.settings.Debounce, func() {
		c.fetchQuote(seq)
	})
}

func (c *QuoteComposer) fetchQuote(seq uint64) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	postcode := c.postcode
	method := c.method
	total := c.discountedSubtotalLocked()
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	price, err := c.shipping.QuoteShipping(ctx, postcode, method, total)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || seq != c.seq {
		// Superseded by a newer edit or the checkout was left; discard.
		return
	}
	if err != nil {
		log.Printf("shipping quote for %q failed, using fallback price: %v", postcode, err)
		price = c.settings.FallbackShippingPrice
	}
	price = models.Round2(price)
	c.shippingCost = &price
	c.calculating = false
}

// Quote recomputes the breakdown from current inputs. Pure with respect to
// composer state: identical inputs produce an identical quote.
func (c *QuoteComposer) Quote() models.Quote {
	subtotal := models.Round2(c.cart.Subtotal())

	c.mu.Lock()
	defer c.mu.Unlock()

	var discountPercent float64
	if c.coupon != nil {
		discountPercent = c.coupon.DiscountPercent
	}
	discountAmount := models.Round2(subtotal * discountPercent / 100)

	var shippingCost *float64
	grand := subtotal - discountAmount
	if c.shippingCost != nil {
		cost := *c.shippingCost
		shippingCost = &cost
		grand += cost
	}

	remaining := models.Round2(c.settings.FreeShippingThreshold - subtotal)
	if remaining < 0 {
		remaining = 0
	}

	return models.Quote{
		Subtotal:              subtotal,
		DiscountPercent:       discountPercent,
		DiscountAmount:        discountAmount,
		ShippingCost:          shippingCost,
		GrandTotal:            models.Round2(grand),
		FreeShippingRemaining: remaining,
		Calculating:           c.calculating,
		CanSubmitPayment:      c.canSubmitLocked(),
	}
}

// CanSubmitPayment gates the pay action: never while a quote for a
// non-trivial postcode is outstanding.
func (c *QuoteComposer) CanSubmitPayment() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *QuoteComposer) canSubmitLocked() bool {
	if c.calculating {
		return false
	}
	return len(c.postcode) < c.settings.MinPostcodeLength || c.shippingCost != nil
}

func (c *QuoteComposer) ShippingMethod() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.method
}

// Close cancels any pending or in-flight quote. A late response after Close
// never mutates state; leaving the checkout must not resurrect a discarded
// quote.
func (c *QuoteComposer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *QuoteComposer) discountedSubtotalLocked() float64 {
	subtotal := models.Round2(c.cart.Subtotal())
	if c.coupon != nil {
		subtotal -= models.Round2(subtotal * c.coupon.DiscountPercent / 100)
	}
	return models.Round2(subtotal)
}

// CheckoutManager keeps one composer per session for the lifetime of the
// checkout flow.
type CheckoutManager struct {
	mu        sync.Mutex
	coupons   CouponValidator
	shipping  ShippingQuoter
	settings  QuoteSettings
	composers map[string]*QuoteComposer
}

func NewCheckoutManager(coupons CouponValidator, shipping ShippingQuoter, settings QuoteSettings) *CheckoutManager {
	return &CheckoutManager{
		coupons:   coupons,
		shipping:  shipping,
		settings:  settings,
		composers: make(map[string]*QuoteComposer),
	}
}

func (m *CheckoutManager) Get(sessionID string, cart *CartStore) *QuoteComposer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.composers[sessionID]; ok {
		return c
	}
	c := NewQuoteComposer(cart, m.coupons, m.shipping, m.settings)
	m.composers[sessionID] = c
	return c
}

// Discard closes and drops the session's composer, e.g. after a successful
// payment hand-off or when the checkout is abandoned.
func (m *CheckoutManager) Discard(sessionID string) {
	m.mu.Lock()
	c, ok := m.composers[sessionID]
	if ok {
		delete(m.composers, sessionID)
	}
	m.mu.Unlock()

	if ok {
		c.Close()
	}
}
