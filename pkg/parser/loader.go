package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// readProgressShare is the part of the progress range spent reading;
// the rest is reported once parsing has finished.
const readProgressShare = 90.0

const readChunkSize = 64 * 1024

// Notifier receives load progress.
// Progress is called with non-decreasing percentages in [0,100].
// Complete is called exactly once, after the last Progress call.
type Notifier interface {
	Progress(percent float64)
	Complete()
}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are ignored.
type NotifierFuncs struct {
	OnProgress func(percent float64)
	OnComplete func()
}

// Progress implements Notifier.
func (n NotifierFuncs) Progress(percent float64) {
	if n.OnProgress != nil {
		n.OnProgress(percent)
	}
}

// Complete implements Notifier.
func (n NotifierFuncs) Complete() {
	if n.OnComplete != nil {
		n.OnComplete()
	}
}

// progressTracker enforces the Notifier contract.
type progressTracker struct {
	n    Notifier
	last float64
}

func (t *progressTracker) report(percent float64) {
	if t.n == nil {
		return
	}
	percent = min(max(percent, 0), 100)
	if percent < t.last {
		return
	}
	t.last = percent
	t.n.Progress(percent)
}

// LoadFile reads and parses the export at path.
func LoadFile(path string, p *Parser, n Notifier) (*Snapshot, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		if n != nil {
			n.Complete()
		}
		return nil, fmt.Errorf("opening export %s: %w", path, err)
	}
	defer f.Close()

	var size int64
	if info, err := f.Stat(); err == nil {
		size = info.Size()
	}

	snap, err := Load(f, size, p, n)
	if err != nil {
		return nil, fmt.Errorf("loading export %s: %w", path, err)
	}
	return snap, nil
}

// Load reads r to the end and parses it in one pass.
// size is the expected byte count; when it is not positive no read progress is reported.
// No snapshot is returned unless the whole input was read.
func Load(r io.Reader, size int64, p *Parser, n Notifier) (*Snapshot, error) {
	tracker := &progressTracker{n: n}
	if n != nil {
		defer n.Complete()
	}
	if p == nil {
		p = New()
	}

	var buf bytes.Buffer
	if size > 0 {
		buf.Grow(int(size))
	}

	chunk := make([]byte, readChunkSize)
	var read int64
	for {
		k, err := r.Read(chunk)
		if k > 0 {
			buf.Write(chunk[:k])
			read += int64(k)
			if size > 0 {
				tracker.report(min(float64(read)/float64(size), 1) * readProgressShare)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
	}

	snap := p.Parse(buf.String())
	tracker.report(100)
	return snap, nil
}
