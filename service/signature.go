package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"
)

// SignatureTolerance bounds how far a webhook timestamp may sit from
// the current time, in either direction.
const SignatureTolerance = 5 * time.Minute

// ParseSignatureHeader splits a `t=<unix-ts>,v1=<hex>[,v1=<hex>...]`
// header into its timestamp and signature candidates. A missing or
// malformed header yields an empty timestamp.
func ParseSignatureHeader(header string) (timestamp string, signatures []string) {
	if header == "" {
		return "", nil
	}
	for _, element := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(element, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "t":
			timestamp = strings.TrimSpace(v)
		case "v1":
			// All valid signatures arrive as v1=<signature>.
			signatures = append(signatures, strings.TrimSpace(v))
		}
	}
	return timestamp, signatures
}

// TimestampWithinTolerance reports whether the signed timestamp is
// within SignatureTolerance of now. Future timestamps are rejected the
// same as stale ones.
func TimestampWithinTolerance(timestamp string, now time.Time) bool {
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}
	diff := now.Sub(time.Unix(ts, 0))
	if diff < 0 {
		diff = -diff
	}
	return diff < SignatureTolerance
}

// ComputeSignature returns the hex HMAC-SHA256 of "{timestamp}.{payload}".
func ComputeSignature(payload, timestamp, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + "." + payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// ContainsValidSignature checks the payload against every provided
// signature candidate in constant time; any match is sufficient.
func ContainsValidSignature(payload, timestamp string, signatures []string, secret string) bool {
	expected := ComputeSignature(payload, timestamp, secret)
	valid := false
	for _, sig := range signatures {
		if hmac.Equal([]byte(sig), []byte(expected)) {
			valid = true
		}
	}
	return valid
}
