// SPDX-License-Identifier: EPL-2.0

package sndmix

import (
	"fmt"
	"math"
	"strconv"
)

// Semitone offsets from A within one octave, for the natural notes.
var noteSteps = map[byte]int{
	'C': -9,
	'D': -7,
	'E': -5,
	'F': -4,
	'G': -2,
	'A': 0,
	'B': 2,
}

// NoteFrequency resolves a note name to its equal-temperament frequency in
// Hz, tuned to A4 = 440. Names are a letter C..G or A..B, an optional
// accidental ("#" or "s" for sharp, "b" or "f" for flat) and an optional
// octave number; the octave defaults to 4. "A" is 440, "C4" middle C,
// "Bb3" a B flat one octave below.
func NoteFrequency(name string) (float64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownNote)
	}

	letter := name[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	steps, ok := noteSteps[letter]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}

	rest := name[1:]
	if rest != "" {
		switch rest[0] {
		case '#', 's':
			steps++
			rest = rest[1:]
		case 'b', 'f':
			steps--
			rest = rest[1:]
		}
	}

	octave := 4
	if rest != "" {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
		}
		octave = n
	}

	return 440 * math.Pow(2, float64(steps)/12) * math.Pow(2, float64(octave-4)), nil
}
