package oauth

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/term"

	"github.com/custodia-labs/sheetmail/internal/logger"
)

// DefaultTimeout bounds how long the flow waits for the user to consent.
const DefaultTimeout = 5 * time.Minute

// LoopbackFlow obtains a token through Google's installed-app consent flow.
// It listens on a loopback port, opens the consent page and exchanges the
// returned code using PKCE.
type LoopbackFlow struct {
	// Out receives the consent URL and prompts. Defaults to os.Stderr.
	Out io.Writer
	// In is read for a pasted code when the browser cannot be opened.
	// Defaults to os.Stdin.
	In io.Reader
	// Open launches the consent URL. Defaults to OpenBrowser.
	Open func(url string) error
	// Interactive reports whether In is a terminal a user can type into.
	// Defaults to checking os.Stdin.
	Interactive func() bool
	// Timeout bounds the wait for consent. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// NewLoopbackFlow returns a flow wired to the process's terminal.
func NewLoopbackFlow() *LoopbackFlow {
	return &LoopbackFlow{}
}

// Consent runs the flow and returns the exchanged token.
// cfg is copied; its RedirectURL is replaced with the loopback address.
func (f *LoopbackFlow) Consent(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	state, err := GenerateState()
	if err != nil {
		return nil, fmt.Errorf("generating state: %w", err)
	}

	server := NewCallbackServer(0, state)
	if err := server.Start(); err != nil {
		return nil, fmt.Errorf("starting callback server: %w", err)
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Debug("stopping callback server: %v", err)
		}
	}()

	conf := *cfg
	conf.RedirectURL = server.RedirectURI()

	verifier := oauth2.GenerateVerifier()
	authURL := conf.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
		oauth2.SetAuthURLParam("prompt", "consent"),
	)

	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	out := f.out()
	fmt.Fprintf(out, "Open this URL to authorise access:\n\n  %s\n\n", authURL)

	if err := f.open(authURL); err != nil {
		logger.Debug("opening browser: %v", err)
		if f.interactive() {
			fmt.Fprint(out, "Could not open a browser. Paste the authorization code: ")
			go f.readPastedCode(readCtx, server)
		}
	}

	code, err := server.WaitForCode(ctx, f.timeout())
	if err != nil {
		return nil, err
	}

	tok, err := conf.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return tok, nil
}

// readPastedCode delivers a code typed on In. It returns when a line is read
// or ctx is done, and a reader with read deadlines is unblocked then. Any
// other reader keeps one read pending until a line arrives or the process
// exits.
func (f *LoopbackFlow) readPastedCode(ctx context.Context, server *CallbackServer) {
	in := f.in()
	lines := make(chan string, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Debug("reading pasted code: %v", err)
			line = ""
		}
		lines <- line
	}()

	select {
	case line := <-lines:
		if code := strings.TrimSpace(line); code != "" {
			server.Deliver(code)
		}
	case <-ctx.Done():
		if d, ok := in.(deadliner); ok {
			if err := d.SetReadDeadline(time.Now()); err != nil {
				logger.Debug("interrupting code prompt: %v", err)
			}
		}
	}
}

// deadliner is implemented by *os.File and net.Conn.
type deadliner interface {
	SetReadDeadline(t time.Time) error
}

func (f *LoopbackFlow) out() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stderr
}

func (f *LoopbackFlow) in() io.Reader {
	if f.In != nil {
		return f.In
	}
	return os.Stdin
}

func (f *LoopbackFlow) open(url string) error {
	if f.Open != nil {
		return f.Open(url)
	}
	return OpenBrowser(url)
}

func (f *LoopbackFlow) interactive() bool {
	if f.Interactive != nil {
		return f.Interactive()
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func (f *LoopbackFlow) timeout() time.Duration {
	if f.Timeout > 0 {
		return f.Timeout
	}
	return DefaultTimeout
}
