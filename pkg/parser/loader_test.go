package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingNotifier struct {
	progress  []float64
	completes int
	// progressAfterComplete counts Progress calls made after Complete.
	progressAfterComplete int
}

func (n *recordingNotifier) Progress(percent float64) {
	if n.completes > 0 {
		n.progressAfterComplete++
	}
	n.progress = append(n.progress, percent)
}

func (n *recordingNotifier) Complete() {
	n.completes++
}

func checkNotifierContract(t *testing.T, n *recordingNotifier) {
	t.Helper()
	if n.completes != 1 {
		t.Errorf("Complete() called %d times, want 1", n.completes)
	}
	if n.progressAfterComplete != 0 {
		t.Errorf("Progress() called %d times after Complete()", n.progressAfterComplete)
	}
	last := 0.0
	for _, p := range n.progress {
		if p < 0 || p > 100 {
			t.Errorf("progress %v out of range", p)
		}
		if p < last {
			t.Errorf("progress decreased from %v to %v", last, p)
		}
		last = p
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chat.txt")

	var b strings.Builder
	for i := 0; i < 5000; i++ {
		b.WriteString("01/01/2024, 09:00 - Alice: a fairly ordinary line of chat text\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}

	n := &recordingNotifier{}
	snap, err := LoadFile(path, New(), n)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if snap.Len() != 5000 {
		t.Errorf("Len() = %d, want 5000", snap.Len())
	}
	checkNotifierContract(t, n)

	if len(n.progress) < 2 {
		t.Fatalf("got %d progress reports, want read progress plus completion", len(n.progress))
	}
	if got := n.progress[len(n.progress)-1]; got != 100 {
		t.Errorf("final progress = %v, want 100", got)
	}
	if got := n.progress[len(n.progress)-2]; got != readProgressShare {
		t.Errorf("progress after reading = %v, want %v", got, readProgressShare)
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	n := &recordingNotifier{}
	_, err := LoadFile("/nonexistent/chat.txt", New(), n)
	if err == nil {
		t.Fatal("LoadFile() expected error for missing file")
	}
	if n.completes != 1 {
		t.Errorf("Complete() called %d times, want 1", n.completes)
	}
}

func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	n := &recordingNotifier{}
	snap, err := LoadFile(path, New(), n)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if snap.Len() != 0 {
		t.Errorf("Len() = %d, want 0", snap.Len())
	}
	checkNotifierContract(t, n)
}

func TestLoad_UnknownSize(t *testing.T) {
	n := &recordingNotifier{}
	snap, err := Load(strings.NewReader("01/01/2024, 09:00 - Alice: hi\n"), 0, nil, n)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.Len() != 1 {
		t.Errorf("Len() = %d, want 1", snap.Len())
	}
	if len(n.progress) != 1 || n.progress[0] != 100 {
		t.Errorf("progress = %v, want [100]", n.progress)
	}
	checkNotifierContract(t, n)
}

func TestLoad_SizeUnderestimated(t *testing.T) {
	n := &recordingNotifier{}
	_, err := Load(strings.NewReader(strings.Repeat("x\n", 100)), 10, New(), n)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	checkNotifierContract(t, n)
	for _, p := range n.progress[:len(n.progress)-1] {
		if p > readProgressShare {
			t.Errorf("read progress %v exceeds %v", p, readProgressShare)
		}
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestLoad_ReadError(t *testing.T) {
	n := &recordingNotifier{}
	snap, err := Load(failingReader{}, 100, New(), n)
	if err == nil {
		t.Fatal("Load() expected error")
	}
	if snap != nil {
		t.Error("Load() must not expose a partial snapshot")
	}
	checkNotifierContract(t, n)
}

func TestLoad_NilNotifier(t *testing.T) {
	snap, err := Load(strings.NewReader("01/01/2024, 09:00 - Alice: hi\n"), 30, New(), nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if snap.Len() != 1 {
		t.Errorf("Len() = %d, want 1", snap.Len())
	}
}

func TestNotifierFuncs(t *testing.T) {
	var got []float64
	done := false
	n := NotifierFuncs{
		OnProgress: func(p float64) { got = append(got, p) },
		OnComplete: func() { done = true },
	}

	if _, err := Load(strings.NewReader("hello\n"), 6, New(), n); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !done {
		t.Error("OnComplete not called")
	}
	if len(got) == 0 || got[len(got)-1] != 100 {
		t.Errorf("progress = %v, want to end at 100", got)
	}

	// Nil fields are ignored.
	NotifierFuncs{}.Progress(50)
	NotifierFuncs{}.Complete()
}
