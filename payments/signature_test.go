package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func hexHMAC(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAcceptsValid(t *testing.T) {
	secret := "test_secret"
	sig := hexHMAC(secret, "order_1|pay_1")
	if !VerifySignature(secret, "order_1", "pay_1", sig) {
		t.Fatalf("expected signature to verify")
	}
}

func TestVerifySignatureRejectsTampered(t *testing.T) {
	secret := "test_secret"
	valid := hexHMAC(secret, "order_1|pay_1")

	cases := []struct {
		name              string
		orderID, payID    string
		signature, secret string
	}{
		{"wrong signature", "order_1", "pay_1", hexHMAC(secret, "order_1|pay_2"), secret},
		{"wrong order id", "order_2", "pay_1", valid, secret},
		{"wrong payment id", "order_1", "pay_2", valid, secret},
		{"wrong secret", "order_1", "pay_1", valid, "other_secret"},
		{"empty signature", "order_1", "pay_1", "", secret},
		{"truncated signature", "order_1", "pay_1", valid[:len(valid)-2], secret},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if VerifySignature(tc.secret, tc.orderID, tc.payID, tc.signature) {
				t.Errorf("expected signature to be rejected")
			}
		})
	}
}

func TestVerifySubscriptionSignature(t *testing.T) {
	secret := "sub_secret"
	sig := hexHMAC(secret, "pay_9|sub_9")
	if !VerifySubscriptionSignature(secret, "pay_9", "sub_9", sig) {
		t.Fatalf("expected subscription signature to verify")
	}
	if VerifySubscriptionSignature(secret, "sub_9", "pay_9", sig) {
		t.Fatalf("operand order must matter")
	}
}
