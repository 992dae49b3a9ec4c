//go:build versedebug

package lyrics

import "fmt"

const debugChecks = true

func assertLocatable(lines []Line, positionMs int) {
	if positionMs < 0 {
		panic(fmt.Sprintf("lyrics: Locate called with negative position %d", positionMs))
	}
	if err := Validate(lines); err != nil {
		panic("lyrics: Locate called with " + err.Error())
	}
}
