package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"perfume-store/models"
	"perfume-store/repositories"
	"perfume-store/services"
	"perfume-store/upstream"
)

func TestOrderReference(t *testing.T) {
	cases := []struct {
		sid  string
		want string
	}{
		{"0f8fad5b-d9cb-469f-a165-70867728950e", "0f8fad5b"},
		{"ab", "ab"},
		{"12345678", "12345678"},
		{"", ""},
	}
	for _, c := range cases {
		if got := orderReference(c.sid); got != c.want {
			t.Fatalf("orderReference(%q): expected %q, got %q", c.sid, c.want, got)
		}
	}
}

func TestPayToleratesShortSessionCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("SMTP_HOST", "localhost")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "noreply")
	t.Setenv("SMTP_PASS", "secret")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url":"https://pay.example/session/123"}`))
	}))
	defer srv.Close()

	api := upstream.NewClient(srv.URL)
	carts := services.NewCartManager(repositories.NewMemoryCartRepository())
	email, err := models.NewEmailService()
	if err != nil {
		t.Fatalf("email service: %v", err)
	}
	ctrl := &CheckoutController{
		API:       api,
		Carts:     carts,
		Checkouts: services.NewCheckoutManager(api, api, services.QuoteSettings{}),
		Sessions:  services.NewSessionService(repositories.NewMemorySessionRepository()),
		Notifier:  services.NewNotificationCenter(time.Hour),
		Email:     email,
	}

	// The session cookie is client-supplied and accepted verbatim, so the id
	// can be any non-empty string, including one shorter than the email
	// reference prefix.
	sid := "ab"
	ctx := context.Background()
	carts.Get(ctx, sid).AddItem(ctx, models.CartLineInput{
		ProductID: "p1",
		Name:      "Noir Absolu",
		Size:      10,
		UnitPrice: 45,
	})

	router := gin.New()
	router.POST("/checkout/pay", func(c *gin.Context) {
		c.Set("session_id", sid)
		ctrl.Pay(c)
	})

	body := `{"shippingInfo":{"name":"Ada","email":"ada@example.com","address":"1 Rue","city":"London","postcode":"SW1A 1AA","country":"UK"}}`
	req := httptest.NewRequest(http.MethodPost, "/checkout/pay", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The confirmation email runs on its own goroutine; give it a moment so a
	// bad reference derivation would surface before the test exits.
	time.Sleep(50 * time.Millisecond)

	if carts.Get(ctx, sid).Len() != 0 {
		t.Fatal("cart must be cleared after the payment hand-off")
	}
}
