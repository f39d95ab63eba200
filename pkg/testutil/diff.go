package testutil

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pmezard/go-difflib/difflib"
)

var spewConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisableCapacities:       true,
	DisablePointerAddresses: true,
	SortKeys:                true,
}

// Dump returns a stable, human-readable rendering of v, suitable for including in test failure
// messages.
func Dump(v interface{}) string {
	return spewConfig.Sdump(v)
}

// AssertEqualText compares two multi-line strings, and on mismatch reports a unified diff rather
// than the two (possibly long) strings side by side.
func AssertEqualText(t *testing.T, exp, act string) bool {
	t.Helper()
	if exp == act {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(exp),
		B:        difflib.SplitLines(act),
		FromFile: "Expected",
		FromDate: "",
		ToFile:   "Actual",
		ToDate:   "",
		Context:  1,
	})
	t.Errorf("Text diff:\n%s", diff)
	return false
}

// AssertEqualValues is like AssertEqualText, but compares the Dump of two values.
func AssertEqualValues(t *testing.T, exp, act interface{}) bool {
	t.Helper()
	return AssertEqualText(t, Dump(exp), Dump(act))
}
