package machine

// PressKey marks the key as pressed. Invalid keys are ignored.
func (m *Machine) PressKey(key int) {
	if key >= 0 && key < KeyCount {
		m.keys[key] = true
	}
}

// ReleaseKey marks the key as released. Invalid keys are ignored.
func (m *Machine) ReleaseKey(key int) {
	if key >= 0 && key < KeyCount {
		m.keys[key] = false
	}
}

// SetKeys replaces the state of all keys.
func (m *Machine) SetKeys(keys [KeyCount]bool) {
	m.keys = keys
}

// KeyPressed returns whether the key is pressed, false for invalid keys.
func (m *Machine) KeyPressed(key int) bool {
	if key < 0 || key >= KeyCount {
		return false
	}
	return m.keys[key]
}

// Keys returns the state of all keys.
func (m *Machine) Keys() [KeyCount]bool {
	return m.keys
}
