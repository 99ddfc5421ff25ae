// SPDX-License-Identifier: EPL-2.0

package source

// Status tracks a sound through its transport lifecycle.
type Status int

const (
	// NotStarted means the sound was created but never played.
	NotStarted Status = iota
	// Playing means the sound is contributing samples to its stream.
	Playing
	// Paused means the sound holds its cursor and emits silence.
	Paused
	// Stopped means playback was cancelled and the cursor reset.
	Stopped
	// Finished means the material and all requested loops ran out.
	Finished
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}
