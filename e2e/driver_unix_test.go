//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/creack/pty"
)

const ringSize = 1 << 20 // 1 MiB of scrollback
var binPath = "valu_e2e"

// Key constants for better readability
const (
	KeyEnter = "\r"
	KeyEsc   = "\x1b"
	KeyCtrlC = "\x03"
	KeyTab   = "\t"
	KeyRight = "\x1b[C"
	KeyLeft  = "\x1b[D"
	KeySpace = " "
	KeyQuit  = "q"
)

// ANSI escape sequence regex for normalization - covers CSI, OSC, charset, keypad modes
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?<]*[ -/]*[@-~])|` + // CSI sequences
		`(?:\x1b\][^\x07]*\x07)|` + // OSC sequences
		`(?:\x1b[\(\)][A-Za-z])|` + // charset sequences
		`(?:\x1b=|\x1b>)|` + // keypad mode sequences
		`\r`, // carriage returns
)

// TUITestFramework drives the dashboard binary through a PTY
type TUITestFramework struct {
	t    *testing.T
	pty  *os.File
	tty  *os.File
	cmd  *exec.Cmd
	home string

	// Ring buffer for continuous output capture
	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// NewTUITest creates a framework with an isolated home directory
func NewTUITest(t *testing.T) *TUITestFramework {
	tf := &TUITestFramework{
		t:    t,
		home: t.TempDir(),
		buf:  make([]byte, ringSize),
	}
	t.Cleanup(tf.Cleanup)
	return tf
}

// StatePath is where the app keeps its state during the test
func (tf *TUITestFramework) StatePath() string {
	return filepath.Join(tf.home, "state.json")
}

// StartApp launches valu with args in a 120x40 PTY
func (tf *TUITestFramework) StartApp(args ...string) error {
	base := []string{
		"--config", filepath.Join(tf.home, "config.toml"),
		"--state", tf.StatePath(),
		"--log-file", filepath.Join(tf.home, "valu.log"),
	}
	tf.cmd = exec.Command(binPath, append(base, args...)...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"LANG=C.UTF-8",
		"HOME="+tf.home,
		"XDG_CONFIG_HOME="+filepath.Join(tf.home, ".config"),
	)

	ptyFile, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	tf.pty = ptyFile
	tf.tty = tty
	tf.cmd.Stdout = tty
	tf.cmd.Stdin = tty
	tf.cmd.Stderr = tty

	ws := struct {
		Row uint16
		Col uint16
		X   uint16
		Y   uint16
	}{40, 120, 0, 0}
	syscall.Syscall(syscall.SYS_IOCTL, ptyFile.Fd(), uintptr(syscall.TIOCSWINSZ), uintptr(unsafe.Pointer(&ws)))

	if err := tf.cmd.Start(); err != nil {
		ptyFile.Close()
		tty.Close()
		return fmt.Errorf("failed to start command: %w", err)
	}

	tf.startReader()
	return nil
}

func (tf *TUITestFramework) startReader() {
	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := tf.pty.Read(buf)
			if n > 0 {
				tf.mu.Lock()
				for i := 0; i < n; i++ {
					tf.buf[tf.head] = buf[i]
					tf.head = (tf.head + 1) % ringSize
					if tf.head == 0 {
						tf.full = true
					}
				}
				tf.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
}

// SendKeys writes raw keystrokes to the application
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

// Ready waits for the first dashboard frame
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.SeePlain("Total Value")
}

// SeePlain waits for text to appear in the normalized output
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		return strings.Contains(ansiRe.ReplaceAllString(s, ""), text)
	}, 3*time.Second)
}

// Quit sends q
func (tf *TUITestFramework) Quit() error {
	tf.t.Helper()
	return tf.SendKeys(KeyQuit)
}

// WaitExit waits for the process to exit
func (tf *TUITestFramework) WaitExit(timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()
	select {
	case err := <-done:
		tf.cmd = nil
		return err
	case <-time.After(timeout):
		return fmt.Errorf("app did not exit within %s", timeout)
	}
}

// WaitFor polls the output until pred holds or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(tf.Snapshot()) {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Snapshot returns the current contents of the ring buffer
func (tf *TUITestFramework) Snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	if !tf.full {
		return string(tf.buf[:tf.head])
	}
	out := make([]byte, ringSize)
	copy(out, tf.buf[tf.head:])
	copy(out[ringSize-tf.head:], tf.buf[:tf.head])
	return string(out)
}

// Reset forgets captured output so later waits only see new frames
func (tf *TUITestFramework) Reset() {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	tf.head = 0
	tf.full = false
}

// SnapshotPlain returns the output with ANSI sequences removed
func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.Snapshot(), "")
}

// DumpTail logs the last n bytes of normalized output
func (tf *TUITestFramework) DumpTail(n int) {
	s := tf.SnapshotPlain()
	if len(s) > n {
		s = s[len(s)-n:]
	}
	tf.t.Logf("--- tail ---\n%s", s)
}

// Cleanup closes the PTY and terminates the application
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.tty != nil {
		_ = tf.tty.Close()
		tf.tty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
}
