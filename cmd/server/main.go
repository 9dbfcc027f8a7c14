// warren-server exposes the level browser over SSH so generated layouts
// can be inspected from any terminal. Build:
//
//	go build -o warren-server ./cmd/server
//
// Usage:
//
//	./warren-server [--port 2222] [--key server_host_key] [--schedule path]
//
// Connect:
//
//	ssh -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	xssh "golang.org/x/crypto/ssh"

	"warren/assets"
	"warren/internal/level"
	"warren/internal/logger"
	"warren/internal/schedule"
	internalssh "warren/internal/ssh"
	"warren/internal/view"
)

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (auto-generated if absent)")
	width := flag.Int("width", 60, "Level width in tiles")
	height := flag.Int("height", 30, "Level height in tiles")
	seed := flag.Int64("seed", 0, "Base seed (0 = time-derived)")
	schedulePath := flag.String("schedule", "", "Path to a YAML progression schedule")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	sched := loadSchedule(*schedulePath)

	signer := loadOrCreateHostKey(*keyFile)

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", *port),
		Handler: func(s gossh.Session) {
			handleSession(s, *seed, *width, *height, sched)
		},
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication — this is an inspection tool, not a
		// production surface. Add gossh.PublicKeyAuth for real deployments.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Log.WithField("port", *port).Info("warren SSH server listening")
	logger.Log.Fatal(srv.ListenAndServe())
}

func loadSchedule(path string) *schedule.Schedule {
	if path == "" {
		return assets.DefaultSchedule()
	}
	sched, err := schedule.LoadFile(path, assets.DefaultSchedule())
	if err != nil {
		logger.Log.WithField("path", path).WithError(err).
			Warn("schedule file unusable, using default progression")
	}
	return sched
}

// termMu protects os.Setenv("TERM") around screen creation; tcell reads
// TERM from the process environment while building a terminfo screen.
var termMu sync.Mutex

// handleSession gives each SSH client its own generator and browser. It
// blocks for the duration of the connection.
func handleSession(s gossh.Session, seed int64, width, height int, sched *schedule.Schedule) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "A PTY is required. Connect with: ssh -t -p 2222 <host>")
		return
	}

	term := "xterm-256color"
	for _, env := range s.Environ() {
		if strings.HasPrefix(env, "TERM=") {
			term = env[5:]
			break
		}
	}

	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	defer screen.Fini()

	gen := level.NewGenerator(seed, width, height, sched)
	view.NewBrowser(screen, gen).Run()
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key when the file is absent or unreadable.
func loadOrCreateHostKey(path string) gossh.Signer {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Log.WithField("path", path).Debug("loaded host key")
			return signer
		}
	}

	logger.Log.WithField("path", path).Info("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		logger.Log.Fatalf("generate host key: %v", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		logger.Log.Fatalf("create signer: %v", err)
	}
	// Persist for the next run; failure here is not fatal.
	if pemBlock, err := xssh.MarshalPrivateKey(key, "warren server"); err == nil {
		_ = os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0600)
	}
	return signer
}
