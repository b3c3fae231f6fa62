package parser

import "strings"

// containsAnyFold reports whether s contains any of terms, ignoring case, and
// returns the first term found.
func containsAnyFold(s string, terms []string) (bool, string) {
	lower := strings.ToLower(s)
	for _, term := range terms {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return true, term
		}
	}
	return false, ""
}

func hasAnyPrefixFold(s string, prefixes []string) bool {
	lower := strings.ToLower(s)
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(lower, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func equalsAnyFold(s string, terms []string) bool {
	for _, t := range terms {
		if strings.EqualFold(s, t) {
			return true
		}
	}
	return false
}

// appendUnique appends s unless already present.
func appendUnique(list []string, s string) []string {
	for _, item := range list {
		if item == s {
			return list
		}
	}
	return append(list, s)
}
