package barg

import (
	"regexp"
	"strings"
)

// Numeric grammars per the GLOSSARY. Underscores are thousands separators
// permitted only in the fixed 3-digit grouping shown; they're stripped
// after validation, never during it.
var (
	reLooksNumeric = regexp.MustCompile(`^-?[0-9_.]*$`)
	reIntGrouped   = regexp.MustCompile(`^-?[0-9]{1,3}(_[0-9]{3})*$`)
	reIntPlain     = regexp.MustCompile(`^-?[0-9]*$`)
	reFloatGrouped = regexp.MustCompile(`^-?[0-9]{1,3}(_[0-9]{3})+\.[0-9]+$`)
	reFloatPlain   = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

func matchesInt(s string) bool {
	return reIntGrouped.MatchString(s) || reIntPlain.MatchString(s)
}

func matchesFloat(s string) bool {
	return reFloatGrouped.MatchString(s) || reFloatPlain.MatchString(s)
}

// validateNumeric checks value against the numeric grammar for ty (Int,
// Float, or Num = Int|Float), and returns the value with thousands-separator
// underscores stripped. kind is KindTypeMismatch when value is empty or
// holds any character besides digits, '_', '.', and a leading '-', or
// KindUnknownFormat when it holds only those characters but fails the exact
// grammar (bad grouping, more than one dot, ...).
func validateNumeric(value string, ty ValueType) (cleaned string, kind ErrorKind, ok bool) {
	if value == "" || !reLooksNumeric.MatchString(value) {
		return "", KindTypeMismatch, false
	}

	var matched bool
	switch ty {
	case TypeInt:
		matched = matchesInt(value)
	case TypeFloat:
		matched = matchesFloat(value)
	default: // TypeNum
		matched = matchesInt(value) || matchesFloat(value)
	}

	if !matched {
		return "", KindUnknownFormat, false
	}

	return strings.ReplaceAll(value, "_", ""), "", true
}
