package game

import "context"

// enterName collects initials with the encoder: the position modulo the
// alphabet picks the letter of the current slot and a button click
// confirms it. The encoder restarts at the first letter for every slot.
func (m *Machine) enterName(ctx context.Context) (string, error) {
	letters := []rune(m.opts.Letters)
	name := make([]rune, m.opts.NameLength)
	for i := range name {
		name[i] = letters[0]
	}

	m.enc.SetPosition(0)
	if err := m.waitButton(ctx, false); err != nil {
		return "", err
	}
	m.clock.Sleep(m.opts.NameDebounce)

	idx, slot := 0, 0
	m.dev.Display.Render(nameEntryFrame(name, slot))

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		m.enc.Update()
		if n := m.enc.Index(len(letters)); n != idx {
			idx = n
			name[slot] = letters[idx]
			m.dev.Display.Render(nameEntryFrame(name, slot))
		}

		if m.dev.Button.Pressed() {
			m.clock.Sleep(m.opts.NameDebounce)
			if err := m.waitButton(ctx, false); err != nil {
				return "", err
			}
			m.clock.Sleep(m.opts.Debounce)

			slot++
			if slot >= len(name) {
				return string(name), nil
			}
			m.enc.SetPosition(0)
			idx = 0
			m.dev.Display.Render(nameEntryFrame(name, slot))
		}

		m.clock.Sleep(m.opts.Tick)
	}
}
