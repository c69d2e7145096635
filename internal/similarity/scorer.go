// Package similarity scores text-pair similarity and clusters near-duplicate
// listings under a configurable threshold.
package similarity

import (
	"context"
	"strings"
	"unicode"
)

// Scorer computes pairwise text similarity in [0, 1]. Implementations must be
// symmetric and score identical non-empty texts as 1.
type Scorer interface {
	Score(ctx context.Context, a, b string) (float64, error)
	Name() string
}

// TokenSet scores texts by Jaccard overlap of their case-insensitive
// whitespace tokens. It has no external dependencies and serves as the
// always-available fallback backend.
type TokenSet struct{}

// Name implements Scorer.
func (TokenSet) Name() string { return "token-set" }

// Score implements Scorer. Either input being empty scores 0.
func (TokenSet) Score(_ context.Context, a, b string) (float64, error) {
	tokensA := tokenize(a)
	tokensB := tokenize(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0, nil
	}

	intersection := 0
	union := len(tokensA)
	for tok := range tokensB {
		if _, ok := tokensA[tok]; ok {
			intersection++
		} else {
			union++
		}
	}
	return float64(intersection) / float64(union), nil
}

func tokenize(text string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, field := range strings.Fields(strings.ToLower(text)) {
		field = strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if field == "" {
			continue
		}
		tokens[normalizeToken(field)] = struct{}{}
	}
	return tokens
}

// normalizeToken strips common inflectional suffixes so rephrased listings
// ("need a logo designed" vs "logo design needed") still overlap on their
// content words.
func normalizeToken(tok string) string {
	switch {
	case len(tok) > 5 && strings.HasSuffix(tok, "ing"):
		return tok[:len(tok)-3]
	case len(tok) > 4 && strings.HasSuffix(tok, "ed"):
		return tok[:len(tok)-2]
	case len(tok) > 3 && strings.HasSuffix(tok, "s") && !strings.HasSuffix(tok, "ss"):
		return tok[:len(tok)-1]
	default:
		return tok
	}
}
