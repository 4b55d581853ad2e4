package nowpayments

import "testing"

const secret = "super-secret"

func TestVerifyIPNValid(t *testing.T) {
	body := []byte(`{"payment_id":5077125706,"order_id":"luckyjet-1","payment_status":"finished"}`)
	sig := SignIPN(secret, body)
	if !VerifyIPN(secret, body, sig) {
		t.Fatalf("valid signature rejected")
	}
}

func TestVerifyIPNTamperedBody(t *testing.T) {
	body := []byte(`{"payment_id":5077125706,"payment_status":"finished"}`)
	sig := SignIPN(secret, body)

	tampered := make([]byte, len(body))
	copy(tampered, body)
	tampered[len(tampered)-3] ^= 0x01 // one byte off
	if VerifyIPN(secret, tampered, sig) {
		t.Fatalf("tampered body accepted")
	}
}

func TestVerifyIPNReserializedBodyFails(t *testing.T) {
	// same JSON value, different key order: must not verify, the MAC is
	// over the exact byte sequence
	body := []byte(`{"payment_id":1,"payment_status":"finished"}`)
	reordered := []byte(`{"payment_status":"finished","payment_id":1}`)
	sig := SignIPN(secret, body)
	if VerifyIPN(secret, reordered, sig) {
		t.Fatalf("re-serialized body accepted")
	}
}

func TestVerifyIPNWrongSecret(t *testing.T) {
	body := []byte(`{}`)
	sig := SignIPN("other-secret", body)
	if VerifyIPN(secret, body, sig) {
		t.Fatalf("signature under wrong secret accepted")
	}
}

func TestVerifyIPNMissingSignature(t *testing.T) {
	if VerifyIPN(secret, []byte(`{}`), "") {
		t.Fatalf("empty signature accepted")
	}
}

func TestIsTestProbe(t *testing.T) {
	if !IsTestProbe("test_signature") {
		t.Fatalf("dashboard probe not recognized")
	}
	if IsTestProbe(SignIPN(secret, []byte("x"))) {
		t.Fatalf("real signature treated as probe")
	}
}

func TestParseIPNNumericAndStringIDs(t *testing.T) {
	n, err := ParseIPN([]byte(`{"payment_id":5077125706,"order_id":"luckyjet-1","payment_status":"confirmed"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if n.PaymentID.String() != "5077125706" || n.OrderID != "luckyjet-1" || n.PaymentStatus != "confirmed" {
		t.Fatalf("unexpected ipn: %+v", n)
	}

	n, err = ParseIPN([]byte(`{"payment_id":"p1","payment_status":"finished"}`))
	if err != nil {
		t.Fatalf("parse string id: %v", err)
	}
	if n.PaymentID.String() != "p1" {
		t.Fatalf("string payment_id mangled: %q", n.PaymentID.String())
	}
}
