package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix leaves room for a future algorithm migration.
const (
	DomainEvaluation = "peano/evaluation/v1"
	DomainValue      = "peano/value/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ValueDigest identifies a value by its kind and canonical text.
// Equal values of the same kind share a digest regardless of which
// unreduced representative produced them.
func ValueDigest(kind, canonicalText string) (string, error) {
	canonical, err := MarshalCanonical(Object{
		"kind":  String(kind),
		"value": String(canonicalText),
	})
	if err != nil {
		return "", fmt.Errorf("ValueDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainValue, canonical), nil
}

// EvaluationID computes the content-addressed ID of one evaluation.
// It covers the run, the logical position, the input and the outcome, so
// replaying the same expression in the same slot reproduces the same ID.
func EvaluationID(runID string, seq int64, expression, digest, errorCode string) (string, error) {
	canonical, err := MarshalCanonical(Object{
		"run_id":     String(runID),
		"seq":        Int(seq),
		"expression": String(expression),
		"digest":     String(digest),
		"error_code": String(errorCode),
	})
	if err != nil {
		return "", fmt.Errorf("EvaluationID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainEvaluation, canonical), nil
}

// MustValueDigest is like ValueDigest but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustValueDigest(kind, canonicalText string) string {
	d, err := ValueDigest(kind, canonicalText)
	if err != nil {
		panic(err)
	}
	return d
}

// MustEvaluationID is like EvaluationID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustEvaluationID(runID string, seq int64, expression, digest, errorCode string) string {
	id, err := EvaluationID(runID, seq, expression, digest, errorCode)
	if err != nil {
		panic(err)
	}
	return id
}
