package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"dms-go/internal/api"
	"dms-go/internal/config"
	"dms-go/internal/dms"
	"dms-go/internal/encryption"
	"dms-go/internal/fs"
	"dms-go/internal/model"
	"dms-go/internal/session"
	"dms-go/internal/sink"
	"dms-go/internal/storage"
)

// DMSApp is the application layer between the CLI and the page controllers.
// It constructs all dependencies from config, hands out controllers wired to
// them, and releases the session storage and log file on Close.
type DMSApp struct {
	cfg       *config.Config
	storage   dms.Storage
	encryptor dms.Encryptor
	sessions  *session.Store
	gateway   dms.Gateway
	navigator *Navigator
	sink      dms.Sink
	picker    dms.FilePicker
	clock     dms.Clock
	logger    dms.Logger
	op        *Operation
	logFile   *os.File
}

// NewDMSApp creates a fully wired DMSApp from the given config.
// command identifies the CLI command being run (e.g. "login", "documents upload").
// The caller must call Close when done.
func NewDMSApp(ctx context.Context, cfg *config.Config, command, parameters string) (*DMSApp, error) {
	clock := dms.RealClock{}
	op := NewOperation(command, parameters, clock, dms.UUIDGenerator{})

	slogger, logFile, err := newLogger(cfg.LogDir, cfg.LogLevel, cfg.LogStderr, op.ID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}
	if !enc.IsConfigured() {
		logFile.Close()
		return nil, fmt.Errorf("encryption identity not found at %s: run 'dms config init'", cfg.Encryption.IdentityPath)
	}

	store, err := storage.NewStorageFromConfig(cfg.Storage, enc)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating session storage: %w", err)
	}

	downloads, err := sink.NewSinkFromConfig(ctx, cfg.Downloads)
	if err != nil {
		store.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating download sink: %w", err)
	}

	nav := NewNavigator()
	a := &DMSApp{
		cfg:       cfg,
		storage:   store,
		encryptor: enc,
		sessions:  session.NewStore(store, nav, clock, logger),
		gateway:   api.New(cfg.APIURL, api.WithLogger(logger)),
		navigator: nav,
		sink:      downloads,
		picker:    fs.NewOSFilePicker(cfg.UI.Accept),
		clock:     clock,
		logger:    logger,
		op:        op,
		logFile:   logFile,
	}
	logger.Debug("command started", "command", command, "api_url", cfg.APIURL, "storage", cfg.Storage.Type)
	return a, nil
}

// Deps returns the collaborators shared by every controller.
func (a *DMSApp) Deps() dms.Deps {
	return dms.Deps{
		Sessions:  a.sessions,
		Gateway:   a.gateway,
		Navigator: a.navigator,
		Clock:     a.clock,
		Logger:    a.logger,
		Timing: dms.Timing{
			StatusDelay:       a.cfg.UI.StatusDelay.Duration,
			DeleteStatusDelay: a.cfg.UI.DeleteStatusDelay.Duration,
		},
	}
}

func (a *DMSApp) Home() *dms.HomeController {
	return dms.NewHomeController(a.Deps())
}

func (a *DMSApp) Login() *dms.LoginController {
	return dms.NewLoginController(a.Deps())
}

func (a *DMSApp) Register() *dms.RegisterController {
	return dms.NewRegisterController(a.Deps())
}

func (a *DMSApp) Dashboard() *dms.DashboardController {
	return dms.NewDashboardController(a.Deps(), a.cfg.UI.RecentDocuments)
}

func (a *DMSApp) Documents() *dms.DocumentsController {
	return dms.NewDocumentsController(a.Deps(), a.picker, a.sink, a.cfg.UI.PageSize)
}

func (a *DMSApp) Categories() *dms.CategoriesController {
	return dms.NewCategoriesController(a.Deps())
}

// Navigator returns the navigator every controller reports to.
func (a *DMSApp) Navigator() *Navigator {
	return a.navigator
}

// Whoami fetches the signed-in user's profile from the server and refreshes
// the cached copy. It returns ErrRedirected when there is no session.
func (a *DMSApp) Whoami(ctx context.Context) (*model.User, error) {
	s, ok := a.sessions.RequireOrRedirect(dms.RouteHome)
	if !ok {
		return nil, dms.ErrRedirected
	}
	user, err := a.gateway.Profile(ctx, s.Token)
	if err != nil {
		return nil, err
	}
	if err := a.sessions.Save(model.Session{Token: s.Token, User: *user}); err != nil {
		return nil, fmt.Errorf("refreshing cached profile: %w", err)
	}
	return user, nil
}

// Logout clears the session without mounting a page.
func (a *DMSApp) Logout() error {
	if err := a.sessions.Clear(); err != nil {
		return err
	}
	a.logger.Info("logged out")
	a.navigator.Navigate(dms.RouteHome)
	return nil
}

// Fail records err as the outcome of the command.
func (a *DMSApp) Fail(err error) {
	a.op.Fail(err)
}

// Close logs the outcome of the command and closes all resources.
func (a *DMSApp) Close() error {
	var firstErr error

	if a.op.Failed() {
		a.logger.Warn("command finished", a.op.LogArgs(a.clock.Now())...)
	} else {
		a.logger.Info("command finished", a.op.LogArgs(a.clock.Now())...)
	}

	if err := a.storage.Close(); err != nil {
		firstErr = fmt.Errorf("closing session storage: %w", err)
	}
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing log file: %w", err)
		}
	}
	return firstErr
}

// Navigator records where the controllers asked to go. A terminal has no
// screens to switch, so the CLI reads the last route to decide what to tell
// the user.
type Navigator struct {
	mu     sync.Mutex
	routes []dms.Route
}

var _ dms.Navigator = (*Navigator)(nil)

func NewNavigator() *Navigator {
	return &Navigator{}
}

func (n *Navigator) Navigate(to dms.Route) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, to)
}

// Last returns the most recent navigation, or "" if there was none.
func (n *Navigator) Last() dms.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}
