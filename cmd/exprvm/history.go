package main

import (
	"fmt"

	"atomicgo.dev/keyboard"
	"atomicgo.dev/keyboard/keys"
)

// historyReader returns a line reader that puts the terminal into raw mode
// and recalls previous entries from r.history on the up/down arrow keys,
// matching the history recall spec.md §6 asks of the REPL's line editor.
// Ctrl-C and Ctrl-D return ok=false (treated as EOF by the caller); if raw
// keyboard handling itself errors, that error is returned to the caller.
func (r *repl) historyReader() func() (string, bool, error) {
	return func() (string, bool, error) {
		var (
			buf    []rune
			cursor = len(r.history)
			eof    bool
		)

		redraw := func() {
			fmt.Fprint(r.w.out, "\r> "+string(buf)+"\x1b[K")
		}

		err := keyboard.Listen(func(key keys.Key) (bool, error) {
			switch key.Code {
			case keys.Enter:
				fmt.Fprintln(r.w.out)
				return true, nil

			case keys.CtrlC, keys.CtrlD:
				eof = true
				return true, nil

			case keys.Backspace:
				if len(buf) > 0 {
					buf = buf[:len(buf)-1]
					redraw()
				}

			case keys.Up:
				if cursor > 0 {
					cursor--
					buf = []rune(r.history[cursor])
					redraw()
				}

			case keys.Down:
				if cursor < len(r.history)-1 {
					cursor++
					buf = []rune(r.history[cursor])
					redraw()
				} else {
					cursor = len(r.history)
					buf = nil
					redraw()
				}

			case keys.RuneKey:
				buf = append(buf, key.Runes...)
				redraw()
			}
			return false, nil
		})
		if err != nil {
			return "", false, err
		}
		if eof {
			return "", false, nil
		}
		return string(buf), true, nil
	}
}
