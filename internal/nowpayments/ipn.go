package nowpayments

import (
	"crypto/hmac"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
)

// SigHeader carries the IPN signature.
const SigHeader = "x-nowpayments-sig"

// testProbeSig is what the NOWPayments dashboard sends when the merchant
// clicks "test IPN". It carries no payment and must be acknowledged without
// touching any order.
const testProbeSig = "test_signature"

// IPN is the notification payload. payment_id is numeric on the payment
// flow; order_id is the merchant reference echoed back.
type IPN struct {
	PaymentID     PaymentRef `json:"payment_id"`
	OrderID       string     `json:"order_id"`
	PaymentStatus string     `json:"payment_status"`
}

// ParseIPN decodes an already-verified notification body.
func ParseIPN(body []byte) (IPN, error) {
	var n IPN
	err := json.Unmarshal(body, &n)
	return n, err
}

// SignIPN computes the hex HMAC-SHA512 of body under secret. Exported so
// tests and tooling can produce valid notifications.
func SignIPN(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyIPN checks sig against the HMAC of the raw, untouched body bytes.
// The body must never be re-serialized before this call: JSON key order and
// whitespace are not stable, and a re-encode silently breaks the MAC.
func VerifyIPN(secret string, body []byte, sig string) bool {
	if sig == "" {
		return false
	}
	want := SignIPN(secret, body)
	return subtle.ConstantTimeCompare([]byte(want), []byte(sig)) == 1
}

// IsTestProbe reports whether the request is the dashboard's test ping.
func IsTestProbe(sig string) bool { return sig == testProbeSig }
