package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Ouarghii/evento/internal/client/client"
	"github.com/Ouarghii/evento/internal/client/config"

	gs "github.com/Ouarghii/evento/internal/server/grpc"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// API is the REST surface the console uses.
type API interface {
	Register(ctx context.Context, role, name, email, password string) (*client.Profile, error)
	Login(ctx context.Context, role, email, password string) (*client.Profile, error)
	Profile(ctx context.Context) (*client.Profile, error)
	Logout(ctx context.Context) error
	Contributors(ctx context.Context, status string) ([]*client.Profile, error)
	AcceptContributor(ctx context.Context, id string) (*client.Profile, error)
	DeclineContributor(ctx context.Context, id string) (*client.Profile, error)
	ImageUploadURL(ctx context.Context, contentType string) (*client.Upload, error)
	SetToken(token string)
}

// IdentityService is the gRPC surface the console uses.
type IdentityService interface {
	WhoAmI(ctx context.Context) (*gs.IdentityReply, error)
	Ping(ctx context.Context) error
	SetToken(token string)
	Close() error
}

type SessionStore interface {
	Save(s *client.Session) error
	Load() (*client.Session, error)
	Clear() error
}

type App struct {
	config   *config.Config
	api      API
	identity IdentityService
	sessions SessionStore
	http     *http.Client
	session  *client.Session
	Mode     Mode
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	hc := &http.Client{Timeout: c.RequestTimeout}

	rpc, err := client.NewIdentityClient(c.GRPCAddr)
	if err != nil {
		return nil, err
	}

	return &App{
		config:   c,
		api:      client.NewRESTClient(c.ServerURL, hc),
		identity: rpc,
		sessions: client.NewSessionStore(c.SessionDir),
		http:     hc,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil && a.session.Token != ""
}

// useSession installs s (or clears the token when s is nil) on both
// transports.
func (a *App) useSession(s *client.Session) {
	a.session = s
	token := ""
	if s != nil {
		token = s.Token
	}
	a.api.SetToken(token)
	a.identity.SetToken(token)
}

// restoreSession picks up a token saved by an earlier run.
func (a *App) restoreSession() {
	s, err := a.sessions.Load()
	if err != nil {
		fmt.Fprintln(a.out, "Ignoring saved session:", err)
		return
	}
	if s != nil {
		a.useSession(s)
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.isLoggedIn() {
		s = fmt.Sprintf("%s:%s ", a.session.Role, a.session.Email)
	}
	if a.Mode != "" {
		s += string(a.Mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run restores the saved session, starts the connectivity watcher and
// blocks in the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.identity.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.restoreSession()
	go a.StartOnlineStatusWatcher(ctx, 5*time.Second)

	fmt.Fprintln(a.out, "Welcome to the Evento console (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher probes the gRPC health service every interval
// and flips Mode accordingly.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.probe(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.identity.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
