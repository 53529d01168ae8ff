package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"perfume-store/middleware"
	"perfume-store/models"
	"perfume-store/services"
	"perfume-store/upstream"
)

type CheckoutController struct {
	API       *upstream.Client
	Carts     *services.CartManager
	Checkouts *services.CheckoutManager
	Sessions  *services.SessionService
	Notifier  *services.NotificationCenter
	Email     *models.EmailService
}

func (ctrl *CheckoutController) composer(c *gin.Context) *services.QuoteComposer {
	sid := middleware.SessionID(c)
	cart := ctrl.Carts.Get(c.Request.Context(), sid)
	return ctrl.Checkouts.Get(sid, cart)
}

// @Summary Get checkout quote
// @Description Current subtotal/discount/shipping breakdown and the pay gate
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/quote [get]
func (ctrl *CheckoutController) GetQuote(c *gin.Context) {
	quote := ctrl.composer(c).Quote()
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Quote computed", Data: quote})
}

// @Summary Apply coupon
// @Description Validate a promo code upstream; success replaces any applied coupon
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.ApplyCouponRequest true "Coupon code"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Router /checkout/coupon [post]
func (ctrl *CheckoutController) ApplyCoupon(c *gin.Context) {
	var req models.ApplyCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	sid := middleware.SessionID(c)
	coupon, err := ctrl.composer(c).ApplyCoupon(c.Request.Context(), req.Code)
	if err != nil {
		// Prior coupon state is untouched on any failure.
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: apiErr.Message})
			return
		}
		ctrl.Notifier.Notify(sid, "Could not validate coupon, please try again", services.NotifyError)
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Message: "Coupon service unavailable"})
		return
	}

	ctrl.Notifier.Notify(sid, "Coupon applied", services.NotifySuccess)
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Coupon applied", Data: coupon})
}

// @Summary Remove coupon
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout/coupon [delete]
func (ctrl *CheckoutController) RemoveCoupon(c *gin.Context) {
	ctrl.composer(c).RemoveCoupon()
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Coupon removed"})
}

// @Summary Update shipping details
// @Description Record postcode/method edits; shipping requote is debounced and the latest edit wins
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.ShippingUpdateRequest true "Postcode and method"
// @Success 200 {object} models.Response
// @Router /checkout/shipping [patch]
func (ctrl *CheckoutController) UpdateShipping(c *gin.Context) {
	var req models.ShippingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request"})
		return
	}

	composer := ctrl.composer(c)
	composer.SetShipping(req.Postcode, req.Method)

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Shipping updated", Data: composer.Quote()})
}

// @Summary Submit payment
// @Description Hand the cart, address and coupon off to the payment processor and return the redirect URL
// @Tags Checkout
// @Accept json
// @Produce json
// @Param request body models.PayRequest true "Shipping details"
// @Success 200 {object} models.Response
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /checkout/pay [post]
func (ctrl *CheckoutController) Pay(c *gin.Context) {
	var req models.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid shipping details"})
		return
	}

	sid := middleware.SessionID(c)
	cart := ctrl.Carts.Get(c.Request.Context(), sid)
	if cart.Len() == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Your cart is empty"})
		return
	}

	composer := ctrl.Checkouts.Get(sid, cart)
	if !composer.CanSubmitPayment() {
		c.JSON(http.StatusConflict, models.ErrorResponse{Message: "Shipping quote is still being calculated"})
		return
	}

	method := req.ShippingMethod
	if method == "" {
		method = composer.ShippingMethod()
	}

	checkoutReq := models.CheckoutSessionRequest{
		CartItems:      cart.Snapshot(),
		ShippingInfo:   req.ShippingInfo,
		ShippingMethod: method,
	}
	var token string
	if session := ctrl.Sessions.Current(c.Request.Context(), sid); session != nil {
		token = session.Token
		checkoutReq.UserID = session.UserID
	}
	if coupon := composer.Coupon(); coupon != nil {
		checkoutReq.CouponCode = coupon.Code
	}

	quote := composer.Quote()

	url, err := ctrl.API.CreateCheckoutSession(c.Request.Context(), token, checkoutReq)
	if err != nil {
		handleUpstreamError(c, ctrl.Sessions, ctrl.Notifier, err)
		return
	}

	// Payment is handed off; the local reservation is released.
	cart.Clear(c.Request.Context())
	ctrl.Checkouts.Discard(sid)
	ctrl.Notifier.Notify(sid, "Redirecting to payment...", services.NotifySuccess)

	if ctrl.Email != nil {
		email := req.ShippingInfo.Email
		ref := orderReference(sid)
		go func() {
			if err := ctrl.Email.SendOrderConfirmationEmail(email, ref, quote.GrandTotal); err != nil {
				log.Printf("order confirmation email failed: %v", err)
			}
		}()
	}

	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout session created", Data: gin.H{"url": url}})
}

// orderReference derives the short confirmation-email reference from the
// session id. The id comes from a client-supplied cookie, so its length is
// not guaranteed.
func orderReference(sid string) string {
	if len(sid) > 8 {
		return sid[:8]
	}
	return sid
}

// @Summary Leave checkout
// @Description Cancel any pending shipping or coupon work for this session
// @Tags Checkout
// @Produce json
// @Success 200 {object} models.Response
// @Router /checkout [delete]
func (ctrl *CheckoutController) LeaveCheckout(c *gin.Context) {
	ctrl.Checkouts.Discard(middleware.SessionID(c))
	c.JSON(http.StatusOK, models.Response{Success: true, Message: "Checkout state discarded"})
}
