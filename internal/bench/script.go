package bench

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/qntx/fifo"
)

// ErrSyntax is wrapped by every script parse failure.
var ErrSyntax = errors.New("script syntax error")

// ParseScript reads one stimulus entry per line:
//
//	push V      write V
//	pop         read
//	pushpop V   write V and read in the same cycle
//	reset       reset
//	idle [N]    N cycles with no request (default 1)
//
// Blank lines and text after '#' are ignored.
func ParseScript(r io.Reader) ([]fifo.Input[int], error) {
	var inputs []fifo.Input[int]

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text, _, _ := strings.Cut(sc.Text(), "#")
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		cmd, args := strings.ToLower(fields[0]), fields[1:]
		switch cmd {
		case "push", "pushpop":
			if len(args) != 1 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: %s takes one value", line, cmd)
			}
			v, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, errors.Wrapf(ErrSyntax, "line %d: bad value %q", line, args[0])
			}
			inputs = append(inputs, fifo.Input[int]{Write: true, Data: v, Read: cmd == "pushpop"})
		case "pop", "reset":
			if len(args) != 0 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: %s takes no arguments", line, cmd)
			}
			inputs = append(inputs, fifo.Input[int]{Read: cmd == "pop", Reset: cmd == "reset"})
		case "idle":
			n := 1
			if len(args) > 1 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: idle takes at most one count", line)
			}
			if len(args) == 1 {
				var err error
				if n, err = strconv.Atoi(args[0]); err != nil || n < 1 {
					return nil, errors.Wrapf(ErrSyntax, "line %d: bad idle count %q", line, args[0])
				}
			}
			for range n {
				inputs = append(inputs, fifo.Input[int]{})
			}
		default:
			return nil, errors.Wrapf(ErrSyntax, "line %d: unknown command %q", line, fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	return inputs, nil
}
