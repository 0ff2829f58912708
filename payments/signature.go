package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// expectedSignature is HMAC-SHA256(secret, orderID + "|" + paymentID),
// hex-encoded, which is the scheme the gateway signs its callbacks with.
func expectedSignature(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature compares the client-submitted signature against the
// recomputed one in constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := expectedSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// VerifySubscriptionSignature uses the same scheme over
// paymentID + "|" + subscriptionID.
func VerifySubscriptionSignature(secret, paymentID, subscriptionID, signature string) bool {
	return VerifySignature(secret, paymentID, subscriptionID, signature)
}
