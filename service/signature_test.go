package service

import (
	"fmt"
	"testing"
	"time"
)

const testSecret = "whsec_test_secret"

func signedHeader(payload, secret string, ts time.Time) string {
	timestamp := fmt.Sprintf("%d", ts.Unix())
	return fmt.Sprintf("t=%s,v1=%s", timestamp, ComputeSignature(payload, timestamp, secret))
}

func TestParseSignatureHeader(t *testing.T) {
	ts, sigs := ParseSignatureHeader("t=1614556800,v1=abc,v1=def,v0=ignored")
	if ts != "1614556800" {
		t.Fatalf("unexpected timestamp: %s", ts)
	}
	if len(sigs) != 2 || sigs[0] != "abc" || sigs[1] != "def" {
		t.Fatalf("unexpected signatures: %v", sigs)
	}
}

func TestParseSignatureHeaderMissing(t *testing.T) {
	ts, sigs := ParseSignatureHeader("")
	if ts != "" || sigs != nil {
		t.Fatalf("expected empty result, got %q %v", ts, sigs)
	}
}

func TestContainsValidSignature(t *testing.T) {
	payload := `{"created": 1614556800}`
	now := time.Now()
	timestamp := fmt.Sprintf("%d", now.Unix())
	good := ComputeSignature(payload, timestamp, testSecret)

	if !ContainsValidSignature(payload, timestamp, []string{good}, testSecret) {
		t.Fatal("valid signature rejected")
	}
	// Any one match among several candidates is sufficient.
	if !ContainsValidSignature(payload, timestamp, []string{"deadbeef", good, "cafebabe"}, testSecret) {
		t.Fatal("valid signature among candidates rejected")
	}
}

func TestContainsValidSignatureAltered(t *testing.T) {
	payload := `{"created": 1614556800}`
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	good := ComputeSignature(payload, timestamp, testSecret)

	if ContainsValidSignature(payload+" ", timestamp, []string{good}, testSecret) {
		t.Fatal("altered payload accepted")
	}
	if ContainsValidSignature(payload, "1614556800", []string{good}, testSecret) {
		t.Fatal("altered timestamp accepted")
	}
	if ContainsValidSignature(payload, timestamp, []string{good}, "other_secret") {
		t.Fatal("altered secret accepted")
	}
	if ContainsValidSignature(payload, timestamp, nil, testSecret) {
		t.Fatal("empty signature list accepted")
	}
}

func TestTimestampWithinTolerance(t *testing.T) {
	now := time.Unix(1700000000, 0)

	cases := []struct {
		name      string
		timestamp string
		want      bool
	}{
		{"current", fmt.Sprintf("%d", now.Unix()), true},
		{"four minutes old", fmt.Sprintf("%d", now.Add(-4*time.Minute).Unix()), true},
		{"six minutes old", fmt.Sprintf("%d", now.Add(-6*time.Minute).Unix()), false},
		{"six minutes ahead", fmt.Sprintf("%d", now.Add(6*time.Minute).Unix()), false},
		{"not a number", "yesterday", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		if got := TimestampWithinTolerance(tc.timestamp, now); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestStaleTimestampRejectedDespiteValidHMAC(t *testing.T) {
	payload := `{"created": 1614556800}`
	stale := time.Now().Add(-10 * time.Minute)
	timestamp := fmt.Sprintf("%d", stale.Unix())
	sig := ComputeSignature(payload, timestamp, testSecret)

	if !ContainsValidSignature(payload, timestamp, []string{sig}, testSecret) {
		t.Fatal("HMAC itself should verify")
	}
	if TimestampWithinTolerance(timestamp, time.Now()) {
		t.Fatal("stale timestamp accepted")
	}
}
