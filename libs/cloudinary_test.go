package libs

import "testing"

func TestExtractPublicID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1700000000/products/product_123.jpg", "products/product_123"},
		{"https://res.cloudinary.com/demo/image/upload/products/product_123.png", "products/product_123"},
		{"https://res.cloudinary.com/demo/image/upload/v1700000000/products/product_123.jpg?w=400", "products/product_123"},
		{"https://cdn.example.com/static/bottle.jpg", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := ExtractPublicID(c.url); got != c.want {
			t.Fatalf("ExtractPublicID(%q): expected %q, got %q", c.url, c.want, got)
		}
	}
}
