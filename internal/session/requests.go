package session

import (
	"strings"

	"tasterover/internal/flow"
)

// Validation messages shown before any request is made.
const (
	MsgEmptyPostcode    = "Please enter a postcode"
	MsgEmptyIngredients = "Please add at least one ingredient"
)

// validatePostcode trims the postcode. Format checks are left to the backend.
func validatePostcode(postcode string) (string, error) {
	postcode = strings.TrimSpace(postcode)
	if postcode == "" {
		return "", flow.Invalid(MsgEmptyPostcode)
	}
	return postcode, nil
}

// validateIngredients trims each line and drops the blank ones.
func validateIngredients(lines []string) ([]string, error) {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return nil, flow.Invalid(MsgEmptyIngredients)
	}
	return out, nil
}

// SplitLines splits free text on line breaks.
func SplitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
