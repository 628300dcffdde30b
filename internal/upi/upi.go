// Package upi builds UPI deep links for the storefront's pay-by-app flow.
package upi

import (
	"fmt"
	"net/url"
)

// PaymentLink renders a upi://pay deep link. Amount is formatted with two
// decimals and the currency is always INR.
func PaymentLink(payeeAddress, payeeName string, amount float64) string {
	q := url.Values{}
	q.Set("pa", payeeAddress)
	q.Set("pn", payeeName)
	q.Set("am", fmt.Sprintf("%.2f", amount))
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode()
}
