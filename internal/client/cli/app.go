package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/mybestvenue/internal/client/client"
	"github.com/dmitrijs2005/mybestvenue/internal/client/config"
	"github.com/dmitrijs2005/mybestvenue/internal/client/models"
	"github.com/dmitrijs2005/mybestvenue/internal/client/nav"
	"github.com/dmitrijs2005/mybestvenue/internal/client/services"
	"github.com/dmitrijs2005/mybestvenue/internal/client/session"
	"github.com/dmitrijs2005/mybestvenue/internal/client/storage"
	"github.com/dmitrijs2005/mybestvenue/internal/common"
	"github.com/dmitrijs2005/mybestvenue/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pendingSignup is an account waiting for its OTP.
type pendingSignup struct {
	role   models.Role
	userID string
}

type App struct {
	config      *config.Config
	store       storage.Storage
	sessions    *session.Manager
	shell       *nav.Shell
	authService services.AuthService
	reader      *bufio.Reader
	out         io.Writer

	location string
	pending  *pendingSignup

	mu   sync.Mutex
	mode Mode
}

// NewApp opens session storage, restores the three channels and connects
// the API client. The returned App owns the storage and must be closed.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	loginMode, err := session.ParseLoginMode(c.LoginMode)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, c.Storage())
	if err != nil {
		return nil, fmt.Errorf("open session storage: %w", err)
	}

	sessions := session.NewManager(store,
		session.WithLogger(logger.With("component", "session")),
		session.WithLoginMode(loginMode),
	)
	if err := sessions.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("restore sessions: %w", err)
	}

	apiClient := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout)
	as := services.NewAuthService(apiClient, sessions, logger.With("component", "auth"))

	a := newApp(c, store, sessions, as, logger, bufio.NewReader(os.Stdin), os.Stdout)
	return a, nil
}

func newApp(c *config.Config, store storage.Storage, sessions *session.Manager, as services.AuthService,
	logger logging.Logger, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config:      c,
		store:       store,
		sessions:    sessions,
		shell:       nav.NewShell(sessions, logger.With("component", "nav")),
		authService: as,
		reader:      reader,
		out:         out,
		location:    common.LandingPath,
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	fmt.Fprintln(a.out, "Welcome to MyBestVenue (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

// Close releases the API client and the session storage.
func (a *App) Close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		log.Printf("error closing api client: %v", err)
	}
	if err := a.store.Close(); err != nil {
		log.Printf("error closing session storage: %v", err)
	}
}

func (a *App) isLoggedIn() bool {
	state, _ := a.shell.State()
	return state == nav.StateAuthenticated
}

func (a *App) getStatus() string {
	s := "anonymous"
	if eff := a.sessions.Effective(); eff.IsAuthenticated() {
		s = fmt.Sprintf("%s %s", eff.DisplayName, eff.Role)
	}
	if m := a.Mode(); m != "" {
		s = s + " " + string(m)
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}
