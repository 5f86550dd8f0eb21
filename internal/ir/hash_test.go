package ir

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte(`{"kind":"natural","value":"3"}`)
	h1 := hashWithDomain(DomainValue, data)
	h2 := hashWithDomain(DomainEvaluation, data)
	assert.NotEqual(t, h1, h2)
	assert.Len(t, h1, 64)

	_, err := hex.DecodeString(h1)
	require.NoError(t, err)
}

func TestValueDigestDeterministic(t *testing.T) {
	d1, err := ValueDigest("rational", "1/2")
	require.NoError(t, err)
	d2, err := ValueDigest("rational", "1/2")
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)
}

func TestValueDigestDistinguishesInputs(t *testing.T) {
	base := MustValueDigest("natural", "3")

	tests := []struct {
		name  string
		kind  string
		value string
	}{
		{"different value", "natural", "4"},
		{"different kind", "integer", "3"},
		{"swapped fields", "3", "natural"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, MustValueDigest(tt.kind, tt.value))
		})
	}
}

func TestEvaluationIDDeterministic(t *testing.T) {
	digest := MustValueDigest("natural", "7")
	id1, err := EvaluationID("run-1", 1, "3 + 4", digest, "")
	require.NoError(t, err)
	id2, err := EvaluationID("run-1", 1, "3 + 4", digest, "")
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, 64)
}

func TestEvaluationIDDistinguishesInputs(t *testing.T) {
	digest := MustValueDigest("natural", "7")
	base := MustEvaluationID("run-1", 1, "3 + 4", digest, "")

	tests := []struct {
		name      string
		runID     string
		seq       int64
		expr      string
		digest    string
		errorCode string
	}{
		{"different run", "run-2", 1, "3 + 4", digest, ""},
		{"different seq", "run-1", 2, "3 + 4", digest, ""},
		{"different expression", "run-1", 1, "4 + 3", digest, ""},
		{"different digest", "run-1", 1, "3 + 4", MustValueDigest("natural", "8"), ""},
		{"error outcome", "run-1", 1, "3 + 4", "", "UNDERFLOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := MustEvaluationID(tt.runID, tt.seq, tt.expr, tt.digest, tt.errorCode)
			assert.NotEqual(t, base, id)
		})
	}
}

func TestEvaluationIDNFCExpression(t *testing.T) {
	// Expressions are NFC-normalized, so composed and decomposed forms of
	// the same text share an ID.
	a := MustEvaluationID("run-1", 1, "caf\u00e9", "", "SYNTAX_ERROR")
	b := MustEvaluationID("run-1", 1, "cafe\u0301", "", "SYNTAX_ERROR")
	assert.Equal(t, a, b)
}

func TestEvaluationFailed(t *testing.T) {
	assert.False(t, Evaluation{Digest: "abc"}.Failed())
	assert.True(t, Evaluation{ErrorCode: "DIVISION_BY_ZERO"}.Failed())
}
