package lyrics

import (
	"math/rand"
	"sort"
	"testing"
)

func TestLocate(t *testing.T) {
	lines := Parse("[00:00] Line A\n[00:15.5] Line B", ModePlayback)

	tests := []struct {
		name     string
		position int
		want     int
	}{
		{"start", 0, 0},
		{"between lines", 10000, 0},
		{"just before second", 15499, 0},
		{"exact boundary", 15500, 1},
		{"past the end", 99999, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Locate(lines, tt.position); got != tt.want {
				t.Errorf("Locate(%d) = %d, want %d", tt.position, got, tt.want)
			}
		})
	}
}

func TestLocateDegenerate(t *testing.T) {
	if got := Locate(nil, 5000); got != -1 {
		t.Errorf("Locate(nil) = %d, want -1", got)
	}
	if got := Locate(Parse("", ModePlayback), 0); got != -1 {
		t.Errorf("Locate(empty) = %d, want -1", got)
	}

	single := []Line{{TimestampMs: 3000, Text: "only", Explicit: true}}
	if got := Locate(single, 2999); got != -1 {
		t.Errorf("Locate(single, 2999) = %d, want -1", got)
	}
	for _, pos := range []int{3000, 3001, 1 << 30} {
		if got := Locate(single, pos); got != 0 {
			t.Errorf("Locate(single, %d) = %d, want 0", pos, got)
		}
	}
}

func TestLocateBeforeFirstLine(t *testing.T) {
	lines := Parse("[00:12] late start\n[00:20] next", ModePlayback)
	if got := Locate(lines, 11999); got != -1 {
		t.Errorf("Locate(11999) = %d, want -1", got)
	}
	if got := Locate(lines, 12000); got != 0 {
		t.Errorf("Locate(12000) = %d, want 0", got)
	}
}

func TestLocateTiesPickLast(t *testing.T) {
	lines := []Line{
		{TimestampMs: 1000, Text: "a"},
		{TimestampMs: 2000, Text: "b1"},
		{TimestampMs: 2000, Text: "b2"},
		{TimestampMs: 3000, Text: "c"},
	}
	if got := Locate(lines, 2000); got != 2 {
		t.Errorf("Locate(2000) = %d, want 2", got)
	}
	if got := Locate(lines, 2999); got != 2 {
		t.Errorf("Locate(2999) = %d, want 2", got)
	}
}

func TestLocateBoundaries(t *testing.T) {
	lines := Parse("[00:01] a\n[00:02.5] b\n[00:04] c\nd\n[01:00] e", ModePlayback)
	for i, l := range lines {
		if got := Locate(lines, l.TimestampMs); got != i {
			t.Errorf("Locate(lines[%d].TimestampMs=%d) = %d, want %d", i, l.TimestampMs, got, i)
		}
	}
}

func TestLocateCoverage(t *testing.T) {
	lines := Parse("[00:03] a\n[00:07] b\n[00:07.5] c\n[00:20] d", ModePlayback)
	first := lines[0].TimestampMs

	for pos := 0; pos < 25000; pos += 250 {
		got := Locate(lines, pos)
		if pos < first {
			if got != -1 {
				t.Errorf("Locate(%d) = %d, want -1", pos, got)
			}
			continue
		}
		if got < 0 || got >= len(lines) {
			t.Fatalf("Locate(%d) = %d, out of range", pos, got)
		}
		if lines[got].TimestampMs > pos {
			t.Errorf("Locate(%d) = %d whose timestamp %d is after the position", pos, got, lines[got].TimestampMs)
		}
		if got+1 < len(lines) && lines[got+1].TimestampMs <= pos {
			t.Errorf("Locate(%d) = %d but line %d also started by then", pos, got, got+1)
		}
	}
}

func TestLocateSeekIndependence(t *testing.T) {
	lines := Parse("[00:00] a\n[00:02] b\n[00:05] c\n[00:08] d", ModePlayback)
	positions := []int{5000, 1000, 9000, 0, 4999, 8000, 2000}

	want := make(map[int]int, len(positions))
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for _, pos := range sorted {
		want[pos] = Locate(lines, pos)
	}

	r := rand.New(rand.NewSource(7))
	for round := 0; round < 5; round++ {
		r.Shuffle(len(positions), func(i, j int) {
			positions[i], positions[j] = positions[j], positions[i]
		})
		for _, pos := range positions {
			if got := Locate(lines, pos); got != want[pos] {
				t.Errorf("round %d: Locate(%d) = %d, want %d", round, pos, got, want[pos])
			}
		}
	}
}

func TestLocateEmptyScenario(t *testing.T) {
	lines := Parse("", ModePlayback)
	if len(lines) != 0 {
		t.Fatalf("Parse(\"\") len = %d, want 0", len(lines))
	}
	for _, pos := range []int{0, 1, 123456} {
		if got := Locate(lines, pos); got != -1 {
			t.Errorf("Locate([], %d) = %d, want -1", pos, got)
		}
	}
}

func BenchmarkLocate(b *testing.B) {
	lines := make([]Line, 500)
	for i := range lines {
		lines[i] = Line{TimestampMs: i * 2500, Explicit: true}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Locate(lines, (i*7919)%(500*2500))
	}
}
