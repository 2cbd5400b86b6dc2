package tones

import (
	"encoding/binary"
	"math"
)

// Synthesis parameters. 8-bit mono at 8 kHz keeps the generated files around
// 16 KiB, which is plenty for an alarm tone.
const (
	sampleRate  = 8000
	clipSeconds = 2
	amplitude   = 0.8
)

// toneSpec describes how a built-in tone sounds.
type toneSpec struct {
	// freq is the base frequency in Hz.
	freq float64
	// square selects a square wave instead of a sine.
	square bool
	// pulses is the number of sound bursts across the clip, each followed by
	// an equally long silence.
	pulses int
	// decay applies an exponential fade to each burst.
	decay bool
}

// builtinSpecs maps built-in tone names to their sound characteristics.
//
//nolint:gochecknoglobals // Shared read-only catalog.
var builtinSpecs = map[string]toneSpec{
	Beep:   {freq: 880, square: true, pulses: 4},
	Bell:   {freq: 660, pulses: 1, decay: true},
	Chime:  {freq: 523.25, pulses: 3, decay: true},
	Buzzer: {freq: 150, square: true, pulses: 2},
}

// synthesize renders the PCM samples for a tone spec as unsigned 8-bit mono.
func synthesize(spec toneSpec) []byte {
	total := sampleRate * clipSeconds
	burst := total / (spec.pulses * 2)
	samples := make([]byte, total)

	for i := range samples {
		// Odd slots are the silences between bursts.
		if (i/burst)%2 == 1 {
			samples[i] = 128
			continue
		}

		value := math.Sin(2 * math.Pi * spec.freq * float64(i) / sampleRate)
		if spec.square {
			if value >= 0 {
				value = 1
			} else {
				value = -1
			}
		}

		gain := amplitude
		if spec.decay {
			gain *= math.Exp(-4 * float64(i%burst) / float64(burst))
		}

		samples[i] = byte(128 + value*gain*127)
	}

	return samples
}

// wavFile wraps raw unsigned 8-bit mono PCM samples in a RIFF/WAVE container.
func wavFile(samples []byte) []byte {
	le := binary.LittleEndian

	out := make([]byte, 0, 44+len(samples))
	out = append(out, "RIFF"...)
	out = le.AppendUint32(out, uint32(36+len(samples)))
	out = append(out, "WAVE"...)

	// Format chunk: PCM, mono, 8 bits per sample.
	out = append(out, "fmt "...)
	out = le.AppendUint32(out, 16)
	out = le.AppendUint16(out, 1)
	out = le.AppendUint16(out, 1)
	out = le.AppendUint32(out, sampleRate)
	out = le.AppendUint32(out, sampleRate)
	out = le.AppendUint16(out, 1)
	out = le.AppendUint16(out, 8)

	out = append(out, "data"...)
	out = le.AppendUint32(out, uint32(len(samples)))
	out = append(out, samples...)

	return out
}
