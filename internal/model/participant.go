package model

import "time"

// Participant is an active chat occupant.
type Participant struct {
	Name     string    `json:"name"`
	LastSeen time.Time `json:"lastSeen"`
}
