package domain

import "unicode/utf8"

// charsPerToken is the rough characters-per-token ratio used for estimates
const charsPerToken = 4

// EstimateTokens estimates the token count of a note from its field values.
// Each field contributes len/4 rounded down. A note without fields has no
// estimate, which is different from an estimate of zero.
func EstimateTokens(fields []Field) *int64 {
	if len(fields) == 0 {
		return nil
	}
	var total int64
	for _, f := range fields {
		total += int64(utf8.RuneCountInString(f.Value) / charsPerToken)
	}
	return &total
}
