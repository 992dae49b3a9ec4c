package lyrics

import "sort"

// Locate returns the index of the line active at positionMs: the last line
// whose timestamp is less than or equal to the position. It returns -1 when
// lines is empty or the position precedes the first line.
//
// lines must be sorted by timestamp, as returned by Parse, and positionMs
// must not be negative. Locate does not check either precondition outside
// debug builds (see the versedebug build tag); violating them gives an
// undefined result. Lookup is a binary search, so results do not depend on
// the order positions are queried in.
func Locate(lines []Line, positionMs int) int {
	if debugChecks {
		assertLocatable(lines, positionMs)
	}
	return sort.Search(len(lines), func(i int) bool {
		return lines[i].TimestampMs > positionMs
	}) - 1
}
