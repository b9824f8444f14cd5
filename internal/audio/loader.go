package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-audio/wav"

	"github.com/ethanKlein/trippy-sequencer/internal/engine"
)

// LoadWAVDir scans dir for *.wav files and decodes them into bank
// slots in filename order, rows first, then arcade slots. Decoding
// runs off the control path: LoadWAVDir returns after the scan, and
// each slot fills in as its file finishes. Triggers on slots that have
// not filled yet remain silent no-ops.
func LoadWAVDir(b *Bank, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read sample directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".wav") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .wav files in %s", dir)
	}
	sort.Strings(paths)
	if len(paths) > engine.NumSlots {
		paths = paths[:engine.NumSlots]
	}

	for slot, path := range paths {
		go func(slot int, path string) {
			buf, err := DecodeWAV(path)
			if err != nil {
				// A bad file just leaves its slot empty.
				return
			}
			b.SetSlot(slot, buf)
		}(slot, path)
	}
	return nil
}

// DecodeWAV reads one file into a mono buffer at the device rate.
// Stereo files are averaged down; other rates are linearly resampled.
func DecodeWAV(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s is not a valid WAV file", path)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	numCh := pcm.Format.NumChannels
	if numCh < 1 {
		numCh = 1
	}
	frames := len(pcm.Data) / numCh
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for ch := 0; ch < numCh; ch++ {
			sum += float64(pcm.Data[i*numCh+ch]) / scale
		}
		mono[i] = sum / float64(numCh)
	}

	if pcm.Format.SampleRate != SampleRate && pcm.Format.SampleRate > 0 {
		mono = resample(mono, pcm.Format.SampleRate, SampleRate)
	}

	return &Buffer{Data: mono}, nil
}

// resample converts between rates with linear interpolation. Good
// enough for drum one-shots.
func resample(in []float64, from, to int) []float64 {
	if len(in) == 0 {
		return in
	}
	ratio := float64(from) / float64(to)
	n := int(float64(len(in)) / ratio)
	out := make([]float64, n)
	for i := range out {
		pos := float64(i) * ratio
		j := int(pos)
		if j >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := pos - float64(j)
		out[i] = in[j]*(1-frac) + in[j+1]*frac
	}
	return out
}
