package link

import (
	"context"
	"sync/atomic"
	"time"
)

// Port is a byte stream from the coprocessor. Satisfied by uartx.UART on the
// Pico; host builds adapt a serial port or a file.
type Port interface {
	RecvSomeContext(ctx context.Context, buf []byte) (int, error)
}

// ReaderCfg bounds the line reader.
type ReaderCfg struct {
	MaxLine int // clamp 16..256; longer lines are discarded
	Queue   int // lines buffered between reader and Poll
}

// Reader splits a Port into LF-terminated lines on its own goroutine and hands
// them to the control loop through a bounded channel. CR is ignored. A line
// longer than MaxLine is discarded whole, never passed on as a prefix.
type Reader struct {
	port    Port
	max     int
	lines   chan string
	dropped atomic.Uint32
	long    atomic.Uint32
}

func NewReader(port Port, cfg ReaderCfg) *Reader {
	max := cfg.MaxLine
	if max < 16 {
		max = 16
	}
	if max > 256 {
		max = 256
	}
	q := cfg.Queue
	if q <= 0 {
		q = 32
	}
	return &Reader{port: port, max: max, lines: make(chan string, q)}
}

// Lines is the receive side consumed by Link.Poll.
func (r *Reader) Lines() <-chan string { return r.lines }

// Dropped counts lines discarded because the queue was full.
func (r *Reader) Dropped() uint32 { return r.dropped.Load() }

// Overlong counts lines discarded for exceeding MaxLine.
func (r *Reader) Overlong() uint32 { return r.long.Load() }

// Run reads until ctx is done or the port reports an error other than a
// bounded-wait timeout. Intended to run on its own goroutine.
func (r *Reader) Run(ctx context.Context) error {
	buf := make([]byte, r.max)
	line := make([]byte, 0, r.max)
	overflow := false
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		// Bound the blocking wait to assist shutdown.
		rctx, rcancel := context.WithTimeout(ctx, 250*time.Millisecond)
		n, err := r.port.RecvSomeContext(rctx, buf)
		rcancel()
		for i := 0; i < n; i++ {
			switch b := buf[i]; b {
			case '\n':
				if overflow {
					r.long.Add(1)
				} else {
					r.push(string(line))
				}
				line = line[:0]
				overflow = false
			case '\r':
			default:
				if len(line) < r.max {
					line = append(line, b)
				} else {
					overflow = true
				}
			}
		}
		if err != nil && err != context.DeadlineExceeded {
			if overflow {
				r.long.Add(1)
			} else if len(line) > 0 {
				r.push(string(line))
			}
			return err
		}
	}
}

func (r *Reader) push(s string) {
	select {
	case r.lines <- s:
	default:
		// drop if the control loop is behind
		r.dropped.Add(1)
	}
}
