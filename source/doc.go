// SPDX-License-Identifier: EPL-2.0

// Package source implements the playable sound variants: synthesized tones,
// in-memory sample arrays and decoded files.
//
// Every variant embeds the same transport state machine (not started,
// playing, paused, stopped, finished) and satisfies the mixer's block
// contract. Loop repeats are generated seamlessly inside NextBlock, so a
// short block always means the sound is spent and the mixer may drop it.
package source
