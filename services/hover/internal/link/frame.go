package link

import (
	"strconv"

	"github.com/google/shlex"

	"hovercraft-go/errcode"
	"hovercraft-go/services/hover/internal/input"
)

// Op is the frame type, the first token of a line.
type Op byte

const (
	OpNone       Op = 0   // blank or comment
	OpConnect    Op = 'C' // C <id> [class]
	OpDisconnect Op = 'D' // D <id>
	OpSample     Op = 'S' // S <id> <axisX> <brake> <buttons>
)

// Frame is one parsed line from the coprocessor.
type Frame struct {
	Op     Op
	ID     input.SourceID
	Class  input.Class
	Sample input.Sample
}

// ParseFrame decodes one line. Integers accept 0x/0o/0b prefixes.
func ParseFrame(line string) (Frame, error) {
	toks, err := shlex.Split(line)
	if err != nil {
		return Frame{}, errcode.Wrap(errcode.InvalidFrame, "split", err)
	}
	if len(toks) == 0 {
		return Frame{Op: OpNone}, nil
	}
	if len(toks[0]) != 1 {
		return Frame{}, errcode.InvalidFrame
	}
	f := Frame{Op: Op(toks[0][0])}
	switch f.Op {
	case OpConnect:
		if len(toks) < 2 || len(toks) > 3 {
			return Frame{}, errcode.InvalidFrame
		}
		cls := ""
		if len(toks) == 3 {
			cls = toks[2]
		}
		c, ok := input.ParseClass(cls)
		if !ok {
			return Frame{}, errcode.InvalidFrame
		}
		f.Class = c
	case OpDisconnect:
		if len(toks) != 2 {
			return Frame{}, errcode.InvalidFrame
		}
	case OpSample:
		if len(toks) != 5 {
			return Frame{}, errcode.InvalidFrame
		}
		ax, err1 := strconv.ParseInt(toks[2], 0, 32)
		br, err2 := strconv.ParseInt(toks[3], 0, 32)
		bt, err3 := strconv.ParseUint(toks[4], 0, 16)
		if err1 != nil || err2 != nil || err3 != nil {
			return Frame{}, errcode.InvalidFrame
		}
		f.Sample = input.Sample{AxisX: int(ax), Brake: int(br), Buttons: uint16(bt)}
	default:
		return Frame{}, errcode.InvalidFrame
	}
	id, err := strconv.ParseUint(toks[1], 0, 32)
	if err != nil {
		return Frame{}, errcode.InvalidFrame
	}
	f.ID = input.SourceID(id)
	return f, nil
}
