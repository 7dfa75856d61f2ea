package services

import (
	"math"
	"regexp"
	"strings"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrim    = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL-safe lowercase-hyphenated identifier from a display
// name. "Phone X" becomes "phone-x".
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalid.ReplaceAllString(slug, "-")
	slug = slugTrim.ReplaceAllString(slug, "")
	return slug
}

// ComputeDiscount returns the discount percentage when both prices are
// positive; otherwise it returns the previously stored value unchanged.
func ComputeDiscount(price, originalPrice float64, stored int) int {
	if price > 0 && originalPrice > 0 {
		return int(math.Round((originalPrice - price) / originalPrice * 100))
	}
	return stored
}

// RoundRating rounds an average rating to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
