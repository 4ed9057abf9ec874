package views

import (
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/pkg/form"
	"github.com/dmitrymomot/blogfront/services"
)

// Auth paths.
const (
	RegisterPath         = "/auth/register"
	RegisterValidatePath = "/auth/register/validate"
	LoginPath            = "/auth/login"
	LoginValidatePath    = "/auth/login/validate"
	ForgotPasswordPath   = "/auth/forgot-password"
	ProfilePath          = "/auth/profile"
	LogoutPath           = "/auth/logout"
)

func registrationForm(f *form.Form) liveForm {
	return liveForm{
		Form:        f,
		ID:          "register-form",
		Action:      RegisterPath,
		ValidateURL: RegisterValidatePath,
		SubmitLabel: "Register",
	}
}

// RegisterForm renders the sign-up <form>.
func RegisterForm(f *form.Form) templ.Component {
	lf := registrationForm(f)
	return lf.Wrap(
		lf.Input(forms.Username, "Username", "text", at("autocomplete", "username")),
		lf.Input(forms.Email, "Email", "email", at("autocomplete", "email")),
		lf.Input(forms.Password, "Password", "password", at("autocomplete", "new-password")),
		lf.Input(forms.ConfirmPassword, "Confirm password", "password", at("autocomplete", "new-password")),
	)
}

// RegisterFeedback answers a sign-up validation request.
func RegisterFeedback(f *form.Form) templ.Component {
	return formFeedback(registrationForm(f))
}

// Register renders the sign-up page content.
func Register(f *form.Form) templ.Component {
	return el("section", []attr{cls("auth")},
		el("h1", nil, text("Create an account")),
		RegisterForm(f),
		el("p", nil, text("Already have an account? "), link(LoginPath, "Sign in")),
	)
}

// Registered replaces the sign-up form once the backend accepted the registration
// and schedules the move to the login page.
func Registered(message string, delay time.Duration) templ.Component {
	return el("div", []attr{at("id", "register-form"), cls("auth-done")},
		el("p", nil, text(message)),
		el("p", nil, text("Redirecting to sign in... "), link(LoginPath, "Continue")),
		NavigateAfter(LoginPath, delay),
	)
}

func loginForm(f *form.Form, next string) liveForm {
	action := LoginPath
	if next != "" {
		action += "?next=" + url.QueryEscape(next)
	}
	return liveForm{
		Form:        f,
		ID:          "login-form",
		Action:      action,
		ValidateURL: LoginValidatePath,
		SubmitLabel: "Sign in",
	}
}

// LoginForm renders the sign-in <form>. next is preserved across the post.
func LoginForm(f *form.Form, next string) templ.Component {
	lf := loginForm(f, next)
	return lf.Wrap(
		lf.Input(forms.Email, "Email", "email", at("autocomplete", "email")),
		lf.Input(forms.Password, "Password", "password", at("autocomplete", "current-password")),
	)
}

// LoginFeedback answers a sign-in validation request.
func LoginFeedback(f *form.Form) templ.Component {
	return formFeedback(loginForm(f, ""))
}

// Login renders the sign-in page content.
func Login(f *form.Form, next string) templ.Component {
	return el("section", []attr{cls("auth")},
		el("h1", nil, text("Sign in")),
		LoginForm(f, next),
		el("p", nil, link(ForgotPasswordPath, "Forgot password?")),
		el("p", nil, text("No account yet? "), link(RegisterPath, "Register")),
	)
}

// ForgotPasswordForm renders the reset request <form>.
func ForgotPasswordForm(f *form.Form) templ.Component {
	lf := liveForm{Form: f, ID: "forgot-form", Action: ForgotPasswordPath, SubmitLabel: "Send reset link"}
	return lf.Wrap(lf.Input(forms.Email, "Email", "email", at("autocomplete", "email")))
}

// ForgotPassword renders the reset request page content.
func ForgotPassword(f *form.Form) templ.Component {
	return el("section", []attr{cls("auth")},
		el("h1", nil, text("Reset your password")),
		ForgotPasswordForm(f),
		el("p", nil, link(LoginPath, "Back to sign in")),
	)
}

// ProfileForm renders the profile <form>.
func ProfileForm(f *form.Form) templ.Component {
	lf := liveForm{Form: f, ID: "profile-form", Action: ProfilePath, SubmitLabel: "Save"}
	return lf.Wrap(
		lf.Input(forms.Name, "Name", "text"),
		lf.Input(forms.Email, "Email", "email"),
		lf.Input(forms.Password, "New password", "password", at("autocomplete", "new-password")),
	)
}

// Profile renders the account page content.
func Profile(u services.User, f *form.Form) templ.Component {
	status := "Unverified"
	if u.Verified {
		status = "Verified"
	}
	return el("section", []attr{cls("profile")},
		el("h1", nil, text("Profile")),
		avatar(u),
		el("p", nil, text(u.Email+" · "+status)),
		ProfileForm(f),
	)
}

func avatar(u services.User) templ.Component {
	if u.Avatar == "" {
		return nil
	}
	return void("img", []attr{cls("avatar"), at("src", u.Avatar), at("alt", u.Name)})
}
