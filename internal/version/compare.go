// Package version orders app version identifiers.
//
// Servers usually report a monotonically increasing build-number string
// ("230"), while display versions are dotted semver-ish strings ("2.5.1").
// Compare accepts either and always produces a definite ordering.
package version

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Ordering describes how the target version orders relative to the current one.
type Ordering int

const (
	// Older means the target orders before the current version.
	Older Ordering = -1
	// Equal means the two versions order the same.
	Equal Ordering = 0
	// Newer means the target orders after the current version.
	Newer Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Older:
		return "older"
	case Newer:
		return "newer"
	default:
		return "equal"
	}
}

// Compare reports how target orders relative to current.
//
// Both inputs are tried as semver (after "v"-prefix normalization), then as
// dotted numeric tuples with missing trailing components treated as 0, and
// finally fall back to a numeric-aware lexicographic comparison. Malformed
// input never produces an error; an empty string orders before any non-empty
// string.
func Compare(current, target string) Ordering {
	if current == target {
		return Equal
	}
	if current == "" {
		return Newer
	}
	if target == "" {
		return Older
	}

	cv, tv := ensureVPrefix(current), ensureVPrefix(target)
	if plainSemver(cv) && plainSemver(tv) {
		return Ordering(semver.Compare(tv, cv))
	}

	if c, ok := parseDotted(current); ok {
		if t, ok := parseDotted(target); ok {
			return compareTuples(c, t)
		}
	}

	return naturalCompare(current, target)
}

// IsNewer reports whether target orders strictly after current.
func IsNewer(current, target string) bool {
	return Compare(current, target) == Newer
}

// ensureVPrefix normalizes a version string for semver comparison.
func ensureVPrefix(v string) string {
	if len(v) > 0 && v[0] != 'v' {
		return "v" + v
	}
	return v
}

// plainSemver reports whether v is valid semver with no pre-release or build
// suffix. Suffixed strings skip the semver path: semver orders pre-release
// identifiers ASCII-lexically ("rc10" before "rc9"), while suffixes here must
// get the numeric-aware natural ordering.
func plainSemver(v string) bool {
	return semver.IsValid(v) && semver.Prerelease(v) == "" && semver.Build(v) == ""
}

// parseDotted parses "2.5.1" into [2 5 1]. Returns false unless every
// segment is a plain digit run: Atoi's sign syntax ("+2") must not take the
// dotted path.
func parseDotted(s string) ([]int, bool) {
	parts := strings.Split(s, ".")
	nums := make([]int, 0, len(parts))
	for _, p := range parts {
		if !allDigits(p) {
			return nil, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, false
		}
		nums = append(nums, n)
	}
	return nums, true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// compareTuples compares component-wise, padding the shorter tuple with zeros.
func compareTuples(current, target []int) Ordering {
	n := len(current)
	if len(target) > n {
		n = len(target)
	}
	for i := 0; i < n; i++ {
		c, t := 0, 0
		if i < len(current) {
			c = current[i]
		}
		if i < len(target) {
			t = target[i]
		}
		switch {
		case t > c:
			return Newer
		case t < c:
			return Older
		}
	}
	return Equal
}

// naturalCompare is a numeric-aware lexicographic comparison: runs of digits
// compare as numbers, everything else compares as text. "rc9" < "rc10".
func naturalCompare(current, target string) Ordering {
	for current != "" && target != "" {
		cRun, cDigits := nextRun(current)
		tRun, tDigits := nextRun(target)

		var cmp int
		if cDigits && tDigits {
			cmp = compareNumericRuns(cRun, tRun)
		} else {
			cmp = strings.Compare(cRun, tRun)
		}
		if cmp < 0 {
			return Newer
		}
		if cmp > 0 {
			return Older
		}

		current = current[len(cRun):]
		target = target[len(tRun):]
	}
	switch {
	case target != "":
		return Newer
	case current != "":
		return Older
	default:
		return Equal
	}
}

// nextRun returns the leading run of digits or non-digits.
func nextRun(s string) (run string, digits bool) {
	digits = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], digits
}

// compareNumericRuns compares two digit runs as numbers without parsing,
// so arbitrarily long build numbers cannot overflow.
func compareNumericRuns(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
