package drums

import (
	"math"
	"time"

	"github.com/tabletop/arcade/internal/audio"
)

// SampleSource looks up the sound of a pad.
type SampleSource interface {
	Sample(pad string) (audio.Sample, bool)
}

// Mixdown renders events onto a silent timeline at rate samples per second.
// Offsets are taken relative to the earliest event. The timeline lasts until
// the latest offset plus tail, extended if a sample would ring past it.
// Overlapping samples, including repeats of the same pad, are summed; the
// result is not clipped. Event order does not matter.
func Mixdown(events []Event, src SampleSource, rate int, tail time.Duration) []int {
	if len(events) == 0 || rate <= 0 {
		return nil
	}

	first, last := events[0].Offset, events[0].Offset
	for _, e := range events[1:] {
		first = min(first, e.Offset)
		last = max(last, e.Offset)
	}

	length := toSamples(last-first+tail, rate)
	for _, e := range events {
		if s, ok := src.Sample(e.Pad); ok {
			length = max(length, toSamples(e.Offset-first, rate)+len(s.Data))
		}
	}

	out := make([]int, length)
	for _, e := range events {
		s, ok := src.Sample(e.Pad)
		if !ok {
			continue
		}
		at := toSamples(e.Offset-first, rate)
		for i, v := range s.Data {
			out[at+i] += v
		}
	}
	return out
}

// Duration returns the playing time of a mixdown.
func Duration(mix []int, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	return time.Duration(len(mix)) * time.Second / time.Duration(rate)
}

// clip limits mixed values to the 16-bit range.
func clip(mix []int) []int {
	out := make([]int, len(mix))
	for i, v := range mix {
		out[i] = max(math.MinInt16, min(math.MaxInt16, v))
	}
	return out
}

func toSamples(d time.Duration, rate int) int {
	return int(int64(d) * int64(rate) / int64(time.Second))
}
