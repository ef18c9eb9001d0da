package extract

import "strings"

// Decompose splits a packed value such as "FwVer:1.2.3 HwVer:A1" with
// prefix "FwVer:" and separator " HwVer:" into ("1.2.3", "A1"). A missing
// prefix is tolerated, a missing separator leaves after empty.
func Decompose(value, prefix, separator string) (before, after string) {
	value = strings.TrimPrefix(value, prefix)
	before, after, _ = strings.Cut(value, separator)
	return before, after
}
