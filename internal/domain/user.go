package domain

import "time"

// UserState is the single user's mutable engine state.
// Exactly one UserState exists per process; access is serialized by the
// caller. Recent is a bounded window ordered oldest→newest — it never
// grows past the configured retention size, so every rule that walks it
// stays O(window).
type UserState struct {
	CurrentEnergy  float64    `json:"current_energy"`
	Recent         []Behavior `json:"recent"`
	BeginnerPeriod bool       `json:"beginner_period"`
	LastActivity   time.Time  `json:"last_activity"` // zero = no activity yet
	FirstUse       time.Time  `json:"first_use"`     // zero = never used
}

// AppendRecent adds a scored behavior to the window, dropping the oldest
// entries beyond the retention size.
func (u *UserState) AppendRecent(b Behavior, window int) {
	u.Recent = append(u.Recent, b)
	if window > 0 && len(u.Recent) > window {
		u.Recent = u.Recent[len(u.Recent)-window:]
	}
}

// LastBehavior returns the most recent behavior and true, or false when
// the window is empty.
func (u *UserState) LastBehavior() (Behavior, bool) {
	if len(u.Recent) == 0 {
		return Behavior{}, false
	}
	return u.Recent[len(u.Recent)-1], true
}

// SameNameCount counts window entries sharing a behavior name.
// Unnamed behaviors never match.
func (u *UserState) SameNameCount(name string) int {
	if name == "" {
		return 0
	}
	n := 0
	for _, b := range u.Recent {
		if b.Name == name {
			n++
		}
	}
	return n
}

// RecoveryCount counts window entries in the recovery family.
func (u *UserState) RecoveryCount() int {
	n := 0
	for _, b := range u.Recent {
		if b.Level.IsRecovery() {
			n++
		}
	}
	return n
}
