package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Phone X", "phone-x"},
		{"  Gaming Laptop Pro 15\"  ", "gaming-laptop-pro-15"},
		{"USB-C Cable (2m)", "usb-c-cable-2m"},
		{"---", ""},
		{"Café & Co", "caf-co"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestComputeDiscount(t *testing.T) {
	cases := []struct {
		price         float64
		originalPrice float64
		stored        int
		want          int
	}{
		{800, 1000, 0, 20},
		{750, 1000, 0, 25},
		{666, 999, 0, 33},
		{1000, 0, 15, 15},  // no original price, stored value kept
		{0, 1000, 15, 15},  // free item, stored value kept
		{1000, 1000, 0, 0}, // no markdown
	}
	for _, tc := range cases {
		if got := ComputeDiscount(tc.price, tc.originalPrice, tc.stored); got != tc.want {
			t.Errorf("ComputeDiscount(%v, %v, %d) = %d, want %d",
				tc.price, tc.originalPrice, tc.stored, got, tc.want)
		}
	}
}

func TestRoundRating(t *testing.T) {
	cases := []struct {
		avg  float64
		want float64
	}{
		{4.0, 4.0},
		{4.25, 4.3},
		{4.04, 4.0},
		{3.6666666, 3.7},
	}
	for _, tc := range cases {
		if got := RoundRating(tc.avg); got != tc.want {
			t.Errorf("RoundRating(%v) = %v, want %v", tc.avg, got, tc.want)
		}
	}
}
