package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/internal"
	"github.com/dmitrymomot/blogfront/middlewares"
	"github.com/dmitrymomot/blogfront/pkg/apiclient"
	"github.com/dmitrymomot/blogfront/pkg/form"
	"github.com/dmitrymomot/blogfront/pkg/mutation"
	"github.com/dmitrymomot/blogfront/pkg/toast"
	"github.com/dmitrymomot/blogfront/routes"
	"github.com/dmitrymomot/blogfront/services"
	"github.com/dmitrymomot/blogfront/views"
)

// RegisterRedirectDelay is how long the success message stays before the browser
// moves to the login page.
const RegisterRedirectDelay = 3500 * time.Millisecond

// AuthHandler serves registration, login, logout, password reset and the profile.
type AuthHandler struct {
	users  *services.Users
	signup *mutation.Mutation[services.SignupParams, apiclient.Result]
	limit  []internal.Middleware
}

// NewAuthHandler creates the handler. limit guards the form actions that call the backend.
func NewAuthHandler(users *services.Users, limit ...internal.Middleware) *AuthHandler {
	return &AuthHandler{
		users:  users,
		limit:  limit,
		signup: newSignup(users.Signup),
	}
}

// newSignup notifies the visitor of the registration outcome.
// 201 is a success; any other code reports the server message as an error.
func newSignup(fn mutation.Func[services.SignupParams, apiclient.Result]) *mutation.Mutation[services.SignupParams, apiclient.Result] {
	return mutation.New(fn,
		mutation.OnSuccess(func(ctx context.Context, res apiclient.Result, _ services.SignupParams) {
			if res.Created() {
				toast.Success(ctx, res.Message)
				return
			}
			toast.Error(ctx, res.Message)
		}),
		mutation.OnError[services.SignupParams, apiclient.Result](func(ctx context.Context, err error, _ services.SignupParams) {
			toast.Error(ctx, err.Error())
		}),
	)
}

// Pages returns the GET pages served by this handler.
func (h *AuthHandler) Pages() routes.Pages {
	return routes.Pages{
		routes.PageRegister:       h.showRegister,
		routes.PageLogin:          h.showLogin,
		routes.PageForgotPassword: h.showForgotPassword,
		routes.PageProfile:        h.showProfile,
	}
}

// Routes registers the form actions.
func (h *AuthHandler) Routes(r internal.Router) {
	r.POST(views.RegisterPath, h.register, h.limit...)
	r.POST(views.RegisterValidatePath, h.validateRegister)
	r.POST(views.LoginPath, h.login, h.limit...)
	r.POST(views.LoginValidatePath, h.validateLogin)
	r.POST(views.ForgotPasswordPath, h.forgotPassword, h.limit...)
	r.POST(views.LogoutPath, h.logout)
	r.POST(views.ProfilePath, h.updateProfile, middlewares.RequireAuth(views.LoginPath))
}

// loadForm fills f from the posted body, restoring the touched set.
func loadForm(c internal.Context, f *form.Form) error {
	values, err := c.FormValues()
	if err != nil {
		return internal.ErrBadRequest("Invalid form data", internal.WithError(err))
	}
	f.Load(values, form.ParseTouched(values.Get(forms.TouchedField))...)
	return nil
}

func (h *AuthHandler) showRegister(c internal.Context) error {
	if c.IsAuthenticated() {
		return seeOther(c, "/")
	}
	return render(c, http.StatusOK, views.Register(forms.NewRegistration()))
}

func (h *AuthHandler) validateRegister(c internal.Context) error {
	f := forms.NewRegistration()
	if err := loadForm(c, f); err != nil {
		return err
	}
	if name := c.Header("HX-Trigger-Name"); name != "" {
		f.Touch(name)
	}
	return c.Render(http.StatusOK, views.RegisterFeedback(f))
}

func (h *AuthHandler) register(c internal.Context) error {
	f := forms.NewRegistration()
	if err := loadForm(c, f); err != nil {
		return err
	}

	var state mutation.State[apiclient.Result]
	err := f.Submit(func(v form.Values) error {
		state = h.signup.Do(apiCtx(c), services.SignupParams{
			Username: v.Get(forms.Username),
			Email:    v.Get(forms.Email),
			Password: v.Get(forms.Password),
		})
		return state.Err
	})

	switch {
	case isInvalid(err):
		return fragment(c, http.StatusUnprocessableEntity, views.RegisterForm(f), views.Register(f))
	case err != nil:
		c.LogWarn("registration failed", "error", err)
	case state.Data.Created():
		c.LogInfo("account registered", "email", f.Value(forms.Email))
		done := views.Registered(state.Data.Message, RegisterRedirectDelay)
		return fragment(c, http.StatusOK, done, done)
	}
	return fragment(c, http.StatusOK, views.RegisterForm(f), views.Register(f))
}

func (h *AuthHandler) showLogin(c internal.Context) error {
	if c.IsAuthenticated() {
		return seeOther(c, safeNext(c.Query("next")))
	}
	return render(c, http.StatusOK, views.Login(forms.NewLogin(), c.Query("next")))
}

func (h *AuthHandler) validateLogin(c internal.Context) error {
	f := forms.NewLogin()
	if err := loadForm(c, f); err != nil {
		return err
	}
	if name := c.Header("HX-Trigger-Name"); name != "" {
		f.Touch(name)
	}
	return c.Render(http.StatusOK, views.LoginFeedback(f))
}

func (h *AuthHandler) login(c internal.Context) error {
	f := forms.NewLogin()
	if err := loadForm(c, f); err != nil {
		return err
	}
	next := c.Query("next")

	var id services.Identity
	err := f.Submit(func(v form.Values) error {
		var err error
		id, err = h.users.Login(apiCtx(c), services.LoginParams{
			Email:    v.Get(forms.Email),
			Password: v.Get(forms.Password),
		})
		return err
	})
	switch {
	case isInvalid(err):
		return fragment(c, http.StatusUnprocessableEntity, views.LoginForm(f, next), views.Login(f, next))
	case err != nil:
		toast.Error(c.Context(), err.Error())
		return fragment(c, http.StatusOK, views.LoginForm(f, next), views.Login(f, next))
	}

	if err := c.SignIn(id.Token, id.User.ID, id.User.Name, id.User.Admin); err != nil {
		return internal.ErrInternal("Could not start a session", internal.WithError(err))
	}
	c.LogInfo("signed in", "user_id", id.User.ID)
	toast.Success(c.Context(), "Welcome back, "+id.User.Name+"!")
	return seeOther(c, safeNext(next))
}

// safeNext keeps post-login redirects on this site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	if u, err := url.Parse(next); err != nil || u.Host != "" {
		return "/"
	}
	return next
}

func (h *AuthHandler) logout(c internal.Context) error {
	if err := c.SignOut(); err != nil {
		c.LogWarn("sign out failed", "error", err)
	}
	toast.Success(c.Context(), "You have been signed out.")
	return seeOther(c, "/")
}

func (h *AuthHandler) showForgotPassword(c internal.Context) error {
	return render(c, http.StatusOK, views.ForgotPassword(forms.NewForgotPassword()))
}

func (h *AuthHandler) forgotPassword(c internal.Context) error {
	f := forms.NewForgotPassword()
	if err := loadForm(c, f); err != nil {
		return err
	}
	var res apiclient.Result
	err := f.Submit(func(v form.Values) error {
		var err error
		res, err = h.users.ForgotPassword(apiCtx(c), v.Get(forms.Email))
		if err == nil {
			err = res.Err()
		}
		return err
	})
	switch {
	case isInvalid(err):
		return fragment(c, http.StatusUnprocessableEntity, views.ForgotPasswordForm(f), views.ForgotPassword(f))
	case err != nil:
		toast.Error(c.Context(), err.Error())
		return fragment(c, http.StatusOK, views.ForgotPasswordForm(f), views.ForgotPassword(f))
	}

	msg := res.Message
	if msg == "" {
		msg = "Check your inbox for a reset link."
	}
	toast.Success(c.Context(), msg)
	return seeOther(c, views.LoginPath)
}

func (h *AuthHandler) profileForm(c internal.Context) (services.User, *form.Form, error) {
	u, err := h.users.Profile(apiCtx(c))
	if err != nil {
		return u, nil, backendError(c, err, "Profile")
	}
	f := forms.NewProfile()
	f.Load(url.Values{forms.Name: {u.Name}, forms.Email: {u.Email}})
	return u, f, nil
}

func (h *AuthHandler) showProfile(c internal.Context) error {
	u, f, err := h.profileForm(c)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, views.Profile(u, f))
}

func (h *AuthHandler) updateProfile(c internal.Context) error {
	f := forms.NewProfile()
	if err := loadForm(c, f); err != nil {
		return err
	}
	var u services.User
	err := f.Submit(func(v form.Values) error {
		var err error
		u, err = h.users.UpdateProfile(apiCtx(c), services.ProfileParams{
			Name:     v.Get(forms.Name),
			Email:    v.Get(forms.Email),
			Password: v.Get(forms.Password),
		})
		return err
	})
	switch {
	case isInvalid(err):
		return fragment(c, http.StatusUnprocessableEntity, views.ProfileForm(f), views.Profile(services.User{Name: f.Value(forms.Name), Email: f.Value(forms.Email)}, f))
	case err != nil:
		toast.Error(c.Context(), err.Error())
		return fragment(c, http.StatusOK, views.ProfileForm(f), views.Profile(services.User{Name: f.Value(forms.Name), Email: f.Value(forms.Email)}, f))
	}

	// Keep the header name in sync with the backend.
	if err := c.SignIn(c.Token(), u.ID, u.Name, u.Admin); err != nil {
		c.LogWarn("failed to refresh session", "error", err)
	}
	toast.Success(c.Context(), "Profile updated.")
	return seeOther(c, views.ProfilePath)
}
