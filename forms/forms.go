package forms

import (
	"strings"

	"github.com/dmitrymomot/blogfront/pkg/form"
	"github.com/dmitrymomot/blogfront/pkg/validator"
)

// TouchedField is the hidden input carrying the touched-field set between partial requests.
const TouchedField = "touched"

// Field names.
const (
	Username        = "username"
	Name            = "name"
	Email           = "email"
	Password        = "password"
	ConfirmPassword = "confirmPassword"
	Title           = "title"
	Caption         = "caption"
	Body            = "body"
	Slug            = "slug"
	Tags            = "tags"
	Categories      = "categories"
	Desc            = "desc"
)

func required(field, msg string) form.RuleFunc {
	return func(v form.Values) validator.Rule {
		return validator.RequiredString(field, v.Get(field)).WithMessage(msg)
	}
}

func minLen(field string, n int, msg string) form.RuleFunc {
	return func(v form.Values) validator.Rule {
		return validator.MinLenString(field, v.Get(field), n).WithMessage(msg)
	}
}

func maxLen(field string, n int, msg string) form.RuleFunc {
	return func(v form.Values) validator.Rule {
		return validator.MaxLenString(field, v.Get(field), n).WithMessage(msg)
	}
}

func email(field string) form.RuleFunc {
	return func(v form.Values) validator.Rule {
		return validator.MatchString(field, v.Get(field), validator.EmailPattern()).WithMessage("Enter a valid email")
	}
}

// optional skips rule when the field is empty.
func optional(field string, rule form.RuleFunc) form.RuleFunc {
	return func(v form.Values) validator.Rule {
		r := rule(v)
		if v.Get(field) == "" {
			r.Check = nil
		}
		return r
	}
}

func equal(field, other, msg string) form.RuleFunc {
	return func(v form.Values) validator.Rule {
		return validator.EqualString(field, v.Get(field), other, v.Get(other)).WithMessage(msg)
	}
}

// NewRegistration returns the sign-up form.
func NewRegistration() *form.Form {
	return form.New(
		form.Field{Name: Username, Rules: []form.RuleFunc{
			required(Username, "Username is required"),
			minLen(Username, 1, "Username length must be at least 1 character"),
		}},
		form.Field{Name: Email, Rules: []form.RuleFunc{
			required(Email, "Email is required"),
			email(Email),
		}},
		form.Field{Name: Password, Rules: []form.RuleFunc{
			required(Password, "Password is required"),
			minLen(Password, 6, "Password length must be at least 6 characters"),
		}},
		form.Field{Name: ConfirmPassword, Rules: []form.RuleFunc{
			required(ConfirmPassword, "Confirm password is required"),
			equal(ConfirmPassword, Password, "Passwords do not match"),
		}},
	)
}

// NewLogin returns the sign-in form.
func NewLogin() *form.Form {
	return form.New(
		form.Field{Name: Email, Rules: []form.RuleFunc{
			required(Email, "Email is required"),
			email(Email),
		}},
		form.Field{Name: Password, Rules: []form.RuleFunc{
			required(Password, "Password is required"),
			minLen(Password, 6, "Password length must be at least 6 characters"),
		}},
	)
}

// NewForgotPassword returns the password reset request form.
func NewForgotPassword() *form.Form {
	return form.New(
		form.Field{Name: Email, Rules: []form.RuleFunc{
			required(Email, "Email is required"),
			email(Email),
		}},
	)
}

// NewProfile returns the profile update form. Password is optional.
func NewProfile() *form.Form {
	return form.New(
		form.Field{Name: Name, Rules: []form.RuleFunc{
			required(Name, "Name is required"),
			maxLen(Name, 64, "Name must not exceed 64 characters"),
		}},
		form.Field{Name: Email, Rules: []form.RuleFunc{
			required(Email, "Email is required"),
			email(Email),
		}},
		form.Field{Name: Password, Rules: []form.RuleFunc{
			optional(Password, minLen(Password, 6, "Password length must be at least 6 characters")),
		}},
	)
}

// NewPost returns the create/edit post form.
func NewPost() *form.Form {
	return form.New(
		form.Field{Name: Title, Rules: []form.RuleFunc{
			required(Title, "Title is required"),
			maxLen(Title, 200, "Title must not exceed 200 characters"),
		}},
		form.Field{Name: Caption, Rules: []form.RuleFunc{
			maxLen(Caption, 300, "Caption must not exceed 300 characters"),
		}},
		form.Field{Name: Slug},
		form.Field{Name: Body, Rules: []form.RuleFunc{
			required(Body, "Post body is required"),
		}},
		form.Field{Name: Tags},
		form.Field{Name: Categories},
	)
}

// NewCategory returns the category form.
func NewCategory() *form.Form {
	return form.New(
		form.Field{Name: Title, Rules: []form.RuleFunc{
			required(Title, "Category title is required"),
			maxLen(Title, 100, "Category title must not exceed 100 characters"),
		}},
	)
}

// NewComment returns the comment form.
func NewComment() *form.Form {
	return form.New(
		form.Field{Name: Desc, Rules: []form.RuleFunc{
			required(Desc, "Comment is required"),
			maxLen(Desc, 2000, "Comment must not exceed 2000 characters"),
		}},
	)
}

// SplitList parses a comma separated input such as tags into trimmed, non-empty items.
func SplitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
