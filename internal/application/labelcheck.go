package application

import (
	"fmt"
	"io"
	"slices"
)

// BlockedNotice is printed when a pull request carries the blocking label.
const BlockedNotice = "Stopping merge, blocking label detected."

// IsBlocked reports whether blockingLabel appears in labels. Matching is
// exact and case-sensitive.
func IsBlocked(blockingLabel string, labels []string) bool {
	return slices.Contains(labels, blockingLabel)
}

// CheckBlockingLabel runs IsBlocked and writes BlockedNotice to out when the
// label is present.
func CheckBlockingLabel(out io.Writer, blockingLabel string, labels []string) bool {
	if !IsBlocked(blockingLabel, labels) {
		return false
	}
	fmt.Fprintln(out, BlockedNotice)
	return true
}
