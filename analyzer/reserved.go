package analyzer

import "strings"

// reserved is the fixed keyword set spec.md §4.5.1 requires identifier
// validation to reject against: the source language's own keywords plus
// the Go keywords.
// The specification defers the exact list to a glossary entry that does
// not enumerate it; this is the fixed set this implementation commits
// to (see DESIGN.md).
var reserved = buildReserved()

func buildReserved() map[string]bool {
	words := []string{
		// Language keywords.
		"for", "in", "while", "repeat", "until", "if", "else", "then",
		"true", "false", "target", "print", "reject", "return", "break",
		"continue", "void", "int", "real", "vector", "row_vector",
		"matrix", "array", "ordered", "positive_ordered", "simplex",
		"unit_vector", "cholesky_factor_corr", "cholesky_factor_cov",
		"corr_matrix", "cov_matrix", "lower", "upper", "offset", "multiplier",
		"functions", "data", "transformed", "parameters", "quantities",
		"generated", "model",
		// Go keywords.
		"func", "package", "import", "var", "const", "type", "struct",
		"interface", "chan", "go", "defer", "select", "switch", "case",
		"default", "fallthrough", "goto", "range", "map", "iota",
	}
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// isReservedName reports whether name is a keyword.
func isReservedName(name string) bool {
	return reserved[name]
}

// hasDoubleUnderscoreSuffix reports whether name ends with "__", the
// suffix reserved for operator symbol names in the catalog.
func hasDoubleUnderscoreSuffix(name string) bool {
	return strings.HasSuffix(name, "__")
}

// distributionSuffixes lists the suffixes recognized by CondDistApp and
// Tilde as naming a distribution.
var distributionSuffixes = []string{
	"_lpmf", "_lpdf", "_lcdf", "_lccdf", "_cdf_log", "_ccdf_log", "_log",
}

// hasDistributionSuffix reports whether name ends with one of the
// suffixes above.
func hasDistributionSuffix(name string) bool {
	for _, suf := range distributionSuffixes {
		if strings.HasSuffix(name, suf) {
			return true
		}
	}
	return false
}

// freshnessVariants implements the literal suffix mapping of spec.md
// §4.5.3: given a name ending in one of the governed suffixes, returns
// every sibling name (with the suffix swapped for each of its listed
// variants) that check_fresh must also test. multiply_log and
// binomial_coefficient_log are exempt and always return nil.
func freshnessVariants(name string) []string {
	if name == "multiply_log" || name == "binomial_coefficient_log" {
		return nil
	}
	type rule struct {
		suffix   string
		variants []string
	}
	rules := []rule{
		{"_lpmf", []string{"_lpdf", "_log"}},
		{"_lpdf", []string{"_lpmf", "_log"}},
		{"_lcdf", []string{"_cdf_log"}},
		{"_lccdf", []string{"_ccdf_log"}},
		{"_cdf_log", []string{"_lcdf"}},
		{"_ccdf_log", []string{"_lccdf"}},
		{"_log", []string{"_lpmf", "_lpdf"}},
	}
	for _, r := range rules {
		if !strings.HasSuffix(name, r.suffix) {
			continue
		}
		stem := strings.TrimSuffix(name, r.suffix)
		variants := make([]string, len(r.variants))
		for i, v := range r.variants {
			variants[i] = stem + v
		}
		return variants
	}
	return nil
}

// suffixGoverned reports whether name is governed by one of the special
// suffixes of the glossary's "Suffix-governed function" entry.
func suffixGoverned(name, suffix string) bool {
	return strings.HasSuffix(name, suffix)
}
