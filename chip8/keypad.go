package chip8

const KeyCount = 16

// Keypad latches the state of the hex keys 0x0-0xF. Hosts either set the
// whole state before each cycle or report individual presses and releases.
type Keypad struct {
	down [KeyCount]bool
}

func (k *Keypad) Press(key uint8) {
	if key < KeyCount {
		k.down[key] = true
	}
}

func (k *Keypad) Release(key uint8) {
	if key < KeyCount {
		k.down[key] = false
	}
}

func (k *Keypad) Set(keys [KeyCount]bool) {
	k.down = keys
}

func (k *Keypad) IsDown(key uint8) bool {
	return key < KeyCount && k.down[key]
}

func (k *Keypad) State() [KeyCount]bool {
	return k.down
}

func (k *Keypad) reset() {
	k.down = [KeyCount]bool{}
}

func (k *Keypad) lowestPressed() (uint8, bool) {
	for i, v := range k.down {
		if v {
			return uint8(i), true
		}
	}
	return 0, false
}
