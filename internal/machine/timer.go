package machine

// Tick decrements the delay and sound timers, neither goes below zero.
// The host calls it at its timer rate, conventionally 60 times per second.
func (m *Machine) Tick() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// DelayTimer returns the value of the delay timer.
func (m *Machine) DelayTimer() byte {
	return m.delayTimer
}

// SoundTimer returns the value of the sound timer.
func (m *Machine) SoundTimer() byte {
	return m.soundTimer
}

// SoundActive returns whether a tone should be playing.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}
