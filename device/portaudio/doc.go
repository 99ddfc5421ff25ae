// SPDX-License-Identifier: EPL-2.0

// Package portaudio implements the device.Driver contract on top of
// github.com/gordonklaus/portaudio.
package portaudio
