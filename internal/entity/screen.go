package entity

type ToastKind string

const (
	// ToastInfo replays the outcome message when a finished game is tapped.
	ToastInfo ToastKind = "info"
	// ToastAlert reports a rejected move.
	ToastAlert ToastKind = "alert"
)

// Toast - a short-lived message shown by the notification surface.
type Toast struct {
	Kind ToastKind `json:"kind"`
	Text string    `json:"text"`
}

// Cue - a sound effect the audio collaborator should play.
type Cue string

const (
	CueWin  Cue = "win"
	CueDraw Cue = "draw"
)
