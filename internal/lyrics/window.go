package lyrics

// Window returns the half-open index range [start, end) covering active,
// up to before earlier lines and up to after later lines, clipped to the
// sequence. An active index of -1 (nothing active yet) yields the window at
// the top of the sequence, showing the upcoming lines.
func Window(lines []Line, active, before, after int) (start, end int) {
	n := len(lines)
	if n == 0 {
		return 0, 0
	}
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}
	if active < 0 {
		return 0, min(n, after)
	}
	if active >= n {
		active = n - 1
	}
	start = max(0, active-before)
	end = min(n, active+after+1)
	return start, end
}
