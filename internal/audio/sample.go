package audio

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Sample is a mono clip of signed 16-bit values at Rate samples per second.
type Sample struct {
	Rate int
	Data []int
}

// Duration returns the playing time of the sample.
func (s Sample) Duration() time.Duration {
	if s.Rate <= 0 {
		return 0
	}
	return time.Duration(len(s.Data)) * time.Second / time.Duration(s.Rate)
}

// ErrInvalidWAV is returned for files that are not RIFF/WAVE PCM.
var ErrInvalidWAV = errors.New("audio: not a valid wav file")

// LoadWAV decodes a PCM WAV file, mixes it down to mono and converts it to
// 16-bit values at the given rate.
func LoadWAV(path string, rate int) (Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sample{}, fmt.Errorf("audio: failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Sample{}, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Sample{}, fmt.Errorf("audio: failed to decode %s: %w", path, err)
	}

	channels := 1
	srcRate := int(dec.SampleRate)
	if buf.Format != nil {
		if buf.Format.NumChannels > 0 {
			channels = buf.Format.NumChannels
		}
		if buf.Format.SampleRate > 0 {
			srcRate = buf.Format.SampleRate
		}
	}

	bitDepth := int(dec.BitDepth)
	if buf.SourceBitDepth > 0 {
		bitDepth = buf.SourceBitDepth
	}

	mono := downmix(buf.Data, channels, bitDepth)
	return Sample{Rate: rate, Data: resample(mono, srcRate, rate)}, nil
}

// downmix averages interleaved channels and scales to 16-bit.
func downmix(data []int, channels, bitDepth int) []int {
	frames := len(data) / channels
	out := make([]int, frames)
	for i := 0; i < frames; i++ {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += data[i*channels+c]
		}
		out[i] = scaleTo16(sum/channels, bitDepth)
	}
	return out
}

func scaleTo16(v, bitDepth int) int {
	switch {
	case bitDepth == 8:
		// 8-bit PCM is unsigned
		return (v - 128) << 8
	case bitDepth > 16:
		return v >> (bitDepth - 16)
	default:
		return v
	}
}

// resample converts between rates with linear interpolation.
func resample(data []int, from, to int) []int {
	if from <= 0 || to <= 0 || from == to || len(data) == 0 {
		return data
	}
	n := int(int64(len(data)) * int64(to) / int64(from))
	out := make([]int, n)
	ratio := float64(from) / float64(to)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j+1 >= len(data) {
			out[i] = data[len(data)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = int(float64(data[j])*(1-frac) + float64(data[j+1])*frac)
	}
	return out
}

// Tone synthesizes a decaying sine hit.
func Tone(hz float64, d time.Duration, rate int) Sample {
	n := int(d.Seconds() * float64(rate))
	data := make([]int, n)
	for i := range data {
		t := float64(i) / float64(rate)
		env := math.Exp(-t * 12)
		data[i] = int(math.Sin(2*math.Pi*hz*t) * env * 0.6 * math.MaxInt16)
	}
	return Sample{Rate: rate, Data: data}
}

// Noise synthesizes a decaying white-noise burst. The same seed always yields
// the same samples.
func Noise(d time.Duration, rate int, seed int64) Sample {
	rng := rand.New(rand.NewSource(seed))
	n := int(d.Seconds() * float64(rate))
	data := make([]int, n)
	for i := range data {
		t := float64(i) / float64(rate)
		env := math.Exp(-t * 18)
		data[i] = int((rng.Float64()*2 - 1) * env * 0.5 * math.MaxInt16)
	}
	return Sample{Rate: rate, Data: data}
}

// Bank holds samples by identifier. It is filled once at startup and read
// concurrently afterwards.
type Bank struct {
	mu      sync.RWMutex
	rate    int
	samples map[string]Sample
}

// NewBank creates an empty bank whose samples all play at rate.
func NewBank(rate int) *Bank {
	return &Bank{
		rate:    rate,
		samples: make(map[string]Sample),
	}
}

// Rate returns the bank sample rate.
func (b *Bank) Rate() int {
	return b.rate
}

// Add stores a sample under id, replacing any previous one.
func (b *Bank) Add(id string, s Sample) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples[id] = s
}

// Load reads a WAV file into the bank. When the file cannot be used the
// fallback sample is stored instead and the load error is returned, so the
// caller can warn and carry on.
func (b *Bank) Load(id, path string, fallback Sample) error {
	s, err := LoadWAV(path, b.rate)
	if err != nil {
		b.Add(id, fallback)
		return err
	}
	b.Add(id, s)
	return nil
}

// Get returns the sample stored under id.
func (b *Bank) Get(id string) (Sample, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s, ok := b.samples[id]
	return s, ok
}

// WriteWAV encodes 16-bit mono data as a PCM WAV file at path.
func WriteWAV(path string, data []int, rate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: failed to create %s: %w", path, err)
	}

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("audio: failed to encode %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("audio: failed to finish %s: %w", path, err)
	}
	return f.Close()
}
