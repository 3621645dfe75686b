package validation

import (
	"regexp"
	"strings"
)

const (
	// MaxProductLength bounds the product description fed to the pipeline.
	MaxProductLength = 200

	// DefaultProduct stands in when the caller sends an empty description.
	DefaultProduct = "your product"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// emailPattern is a shape check, not full RFC validation.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// NormalizeProduct trims and collapses whitespace in a product description,
// truncates it to MaxProductLength, and substitutes DefaultProduct when the
// result is empty. An empty description is tolerated, never an error.
func NormalizeProduct(product string) string {
	product = whitespacePattern.ReplaceAllString(strings.TrimSpace(product), " ")
	if product == "" {
		return DefaultProduct
	}
	if len(product) > MaxProductLength {
		product = product[:MaxProductLength]
	}
	return product
}

// ValidateEmail checks that a string looks like an email address.
func ValidateEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	return emailPattern.MatchString(email)
}
