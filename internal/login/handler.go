// Package login implements the HTTP method, request object, session, and
// redirect views built around logging a user in.
package login

import (
	"errors"
	"html"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/web-quickstart/pkg/handlers"
	"github.com/JaimeStill/web-quickstart/pkg/middleware"
	"github.com/JaimeStill/web-quickstart/pkg/routes"
	"github.com/JaimeStill/web-quickstart/pkg/session"
	"github.com/JaimeStill/web-quickstart/pkg/web"
)

// Template pages rendered by the login views.
const (
	HelloPage = "hello.html"
	LoginPage = "login.html"
)

const invalidLogin = "Invalid username/password"

// Handler provides the login, session, and redirect views.
type Handler struct {
	auth      *Authenticator
	sessions  *session.Manager
	templates *web.TemplateSet
	urls      *routes.Registry
	limiter   *middleware.Limiter
	logger    *slog.Logger
}

// NewHandler creates a login handler. A nil limiter disables rate limiting
// of login attempts.
func NewHandler(
	auth *Authenticator,
	sessions *session.Manager,
	templates *web.TemplateSet,
	urls *routes.Registry,
	limiter *middleware.Limiter,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		auth:      auth,
		sessions:  sessions,
		templates: templates,
		urls:      urls,
		limiter:   limiter,
		logger:    logger.With("handler", "login"),
	}
}

// Routes returns the login view group.
func (h *Handler) Routes() routes.Group {
	login3 := handlers.Handle(h.Login3)

	return routes.Group{
		Description: "HTTP methods, request data, sessions and redirects",
		Routes: []routes.Route{
			{Name: "login", Method: "GET", Pattern: "/login", Handler: handlers.Handle(h.Login)},
			{Name: "login2", Method: "GET", Pattern: "/login2", Handler: handlers.Handle(h.Login2)},
			{Name: "login2", Method: "POST", Pattern: "/login2", Handler: handlers.Handle(h.Login2)},
			{Name: "login3", Method: "GET", Pattern: "/login3", Handler: login3},
			{Name: "login3", Method: "POST", Pattern: "/login3", Handler: h.rateLimit(login3)},
			{Name: "search", Method: "GET", Pattern: "/search", Handler: handlers.Handle(h.Search)},
			{Name: "redirect", Method: "GET", Pattern: "/redirect", Handler: handlers.Handle(h.Redirect)},
			{Name: "login4", Method: "GET", Pattern: "/login4", Handler: handlers.Handle(h.Login4)},
			{Name: "session", Method: "GET", Pattern: "/session", Handler: handlers.Handle(h.Session)},
			{Name: "logout", Method: "GET", Pattern: "/logout", Handler: handlers.Handle(h.Logout)},
		},
	}
}

// Login is the plain login endpoint.
func (h *Handler) Login(r *http.Request) any {
	return "login"
}

// Login2 shows the login form on GET and logs the user in on POST.
func (h *Handler) Login2(r *http.Request) any {
	if r.Method != http.MethodPost {
		return h.templates.Response(LoginPage, web.Vars{"action": r.URL.Path})
	}

	username, err := handlers.Form(r, "username")
	if err != nil {
		return err
	}
	return "Logged in as " + html.EscapeString(username)
}

// Login3 checks the submitted credentials. Success sets the session cookie;
// failure and GET both render the hello page, with the error as the name on
// failure.
func (h *Handler) Login3(r *http.Request) any {
	if r.Method != http.MethodPost {
		return h.templates.Response(HelloPage, web.Vars{})
	}

	username, err := handlers.Form(r, "username")
	if err != nil {
		return err
	}
	password, err := handlers.Form(r, "password")
	if err != nil {
		return err
	}

	if err := h.auth.Authenticate(username, password); err != nil {
		h.logger.Info("login rejected", "username", username, "client_ip", middleware.ClientIP(r))
		return h.templates.Response(HelloPage, web.Vars{"name": invalidLogin})
	}

	return h.logIn(username)
}

// Search echoes the q query argument, which defaults to empty.
func (h *Handler) Search(r *http.Request) any {
	q := handlers.Arg(r, "q", "")
	if q == "" {
		return "No search term given."
	}
	return "Searching for: " + html.EscapeString(q)
}

// Redirect sends the client to the login4 view.
func (h *Handler) Redirect(r *http.Request) any {
	target, err := h.urls.URLFor("login4", nil)
	if err != nil {
		return err
	}
	return handlers.Redirect(target, http.StatusFound)
}

// Login4 always aborts with 401.
func (h *Handler) Login4(r *http.Request) any {
	return handlers.Abort(http.StatusUnauthorized)
}

// Session reports the user held in the session cookie.
func (h *Handler) Session(r *http.Request) any {
	username, err := h.sessions.Read(r)
	if err != nil {
		if errors.Is(err, session.ErrNoSession) {
			return "You are not logged in"
		}
		return handlers.AbortWith(MapHTTPStatus(err), err)
	}
	return "Logged in as " + html.EscapeString(username)
}

// Logout clears the session and redirects to the session view.
func (h *Handler) Logout(r *http.Request) any {
	target, err := h.urls.URLFor("session", nil)
	if err != nil {
		return err
	}
	resp := handlers.Redirect(target, http.StatusFound)
	resp.SetCookie(h.sessions.Clear())
	return resp
}

func (h *Handler) logIn(username string) any {
	cookie, err := h.sessions.Issue(username)
	if err != nil {
		h.logger.Error("issue session failed", "username", username, "error", err)
		return err
	}

	body := h.templates.Response(HelloPage, web.Vars{"name": username})
	resp, ok := body.(*handlers.Response)
	if !ok {
		return body
	}
	resp.SetCookie(cookie)

	h.logger.Info("user logged in", "username", username)
	return resp
}

func (h *Handler) rateLimit(next http.HandlerFunc) http.HandlerFunc {
	if h.limiter == nil {
		return next
	}
	return middleware.RateLimit(h.limiter)(next).ServeHTTP
}
