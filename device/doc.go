// SPDX-License-Identifier: EPL-2.0

// Package device defines the contract between the mixer and the audio output
// driver.
//
// The mixer never talks to a sound card directly. It asks a Driver for an
// output Stream with a fixed (sampleRate, channels, blockSize) format and
// hands over a Callback; from then on the driver owns the timing and invokes
// the callback on its own real-time thread, once per hardware block.
//
// The portaudio subpackage provides the hardware implementation. Tests use
// the fake driver from internal/audiotest, which lets them invoke callbacks
// synchronously.
package device
