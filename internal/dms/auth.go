package dms

import (
	"context"
	"sync"

	"dms-go/internal/model"
)

// AuthView is a snapshot of the login or register screen.
type AuthView struct {
	Submitting bool
	Error      string
}

// authForm holds the state shared by the public login and register screens.
type authForm struct {
	deps Deps

	mu         sync.Mutex
	submitting bool
	errText    string
}

func newAuthForm(deps Deps) authForm {
	if deps.Logger == nil {
		deps.Logger = NewNopLogger()
	}
	return authForm{deps: deps}
}

func (f *authForm) View() AuthView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return AuthView{Submitting: f.submitting, Error: f.errText}
}

func (f *authForm) begin() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.submitting {
		return ErrBusy
	}
	f.submitting = true
	f.errText = ""
	return nil
}

func (f *authForm) fail(op string, err error) {
	f.deps.Logger.Warn("authentication failed", "op", op, "error", err)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	f.errText = UserMessage(err, MsgGenericError)
}

// finish stores the session handed back by the server and moves on to the
// dashboard.
func (f *authForm) finish(op string, res *AuthResult) error {
	err := f.deps.Sessions.Save(model.Session{Token: res.AccessToken, User: res.User})
	if err != nil {
		f.fail(op, err)
		return err
	}
	f.mu.Lock()
	f.submitting = false
	f.mu.Unlock()

	f.deps.Logger.Info("signed in", "op", op, "username", res.User.Username, "role", string(res.User.Role))
	f.deps.Navigator.Navigate(RouteDashboard)
	return nil
}

// LoginController submits credentials and stores the resulting session.
type LoginController struct {
	authForm
}

func NewLoginController(deps Deps) *LoginController {
	return &LoginController{authForm: newAuthForm(deps)}
}

// Submit logs in. Username may also be an email address.
func (c *LoginController) Submit(ctx context.Context, creds model.Credentials) error {
	if err := c.begin(); err != nil {
		return err
	}
	res, err := c.deps.Gateway.Login(ctx, creds)
	if err != nil {
		c.fail("Login", err)
		return err
	}
	return c.finish("Login", res)
}

// RegisterController creates an account and stores the resulting session.
type RegisterController struct {
	authForm
}

func NewRegisterController(deps Deps) *RegisterController {
	return &RegisterController{authForm: newAuthForm(deps)}
}

// Submit registers a new account. A confirmation that differs from the
// password is rejected before any request is made.
func (c *RegisterController) Submit(ctx context.Context, reg model.Registration, confirm string) error {
	if reg.Password != confirm {
		err := &ValidationError{Message: MsgPasswordMismatch}
		c.mu.Lock()
		c.errText = err.Message
		c.mu.Unlock()
		return err
	}
	if err := c.begin(); err != nil {
		return err
	}
	res, err := c.deps.Gateway.Register(ctx, reg)
	if err != nil {
		c.fail("Register", err)
		return err
	}
	return c.finish("Register", res)
}

// HomeController is the public landing page.
type HomeController struct {
	deps Deps
}

func NewHomeController(deps Deps) *HomeController {
	return &HomeController{deps: deps}
}

// Mount sends a signed-in user straight to the dashboard and reports
// whether it did.
func (c *HomeController) Mount() bool {
	session, err := c.deps.Sessions.Load()
	if err != nil || session == nil {
		return false
	}
	c.deps.Navigator.Navigate(RouteDashboard)
	return true
}
