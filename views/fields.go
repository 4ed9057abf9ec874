package views

import (
	"github.com/a-h/templ"

	"github.com/dmitrymomot/blogfront/forms"
	"github.com/dmitrymomot/blogfront/pkg/form"
)

// liveForm describes a form validated on every change.
// ValidateURL receives the whole form and answers with formFeedback.
type liveForm struct {
	Form        *form.Form
	ID          string
	Action      string
	ValidateURL string
	SubmitLabel string
}

func errorID(field string) string { return "err-" + field }

// SubmitID is the id of the form's submit button.
func (lf liveForm) SubmitID() string { return lf.ID + "-submit" }

func (lf liveForm) touchedID() string { return lf.ID + "-touched" }

// Input renders a labelled input with its error slot.
// Password inputs never echo their value.
func (lf liveForm) Input(name, label, typ string, extra ...attr) templ.Component {
	attrs := []attr{
		at("id", lf.ID+"-"+name),
		at("name", name),
		at("type", typ),
		when(typ != "password", at("value", lf.Form.Value(name))),
		when(lf.Form.Error(name) != "", at("aria-invalid", "true")),
		at("aria-describedby", errorID(name)),
	}
	if lf.ValidateURL != "" {
		attrs = append(attrs,
			at("hx-post", lf.ValidateURL),
			at("hx-trigger", "input changed delay:250ms, change"),
			at("hx-include", "closest form"),
			at("hx-swap", "none"),
		)
	}
	attrs = append(attrs, extra...)

	return el("div", []attr{cls("field")},
		el("label", []attr{at("for", lf.ID+"-"+name)}, text(label)),
		void("input", attrs),
		lf.ErrorSlot(name, false),
	)
}

// TextArea renders a labelled textarea with its error slot.
func (lf liveForm) TextArea(name, label string, rows string) templ.Component {
	attrs := []attr{
		at("id", lf.ID+"-"+name),
		at("name", name),
		at("rows", rows),
		at("aria-describedby", errorID(name)),
	}
	if lf.ValidateURL != "" {
		attrs = append(attrs,
			at("hx-post", lf.ValidateURL),
			at("hx-trigger", "input changed delay:250ms, change"),
			at("hx-include", "closest form"),
			at("hx-swap", "none"),
		)
	}
	return el("div", []attr{cls("field")},
		el("label", []attr{at("for", lf.ID+"-"+name)}, text(label)),
		el("textarea", attrs, text(lf.Form.Value(name))),
		lf.ErrorSlot(name, false),
	)
}

// ErrorSlot renders the visible error message of a field.
func (lf liveForm) ErrorSlot(name string, oob bool) templ.Component {
	msg := lf.Form.Error(name)
	return el("p", []attr{
		at("id", errorID(name)),
		cls("field-error"),
		when(msg != "", at("role", "alert")),
		when(oob, at("hx-swap-oob", "true")),
	}, text(msg))
}

// Submit renders the submit button, disabled while the form is invalid.
func (lf liveForm) Submit(oob bool) templ.Component {
	return el("button", []attr{
		at("id", lf.SubmitID()),
		at("type", "submit"),
		flag("disabled", !lf.Form.Valid()),
		when(oob, at("hx-swap-oob", "true")),
	}, text(lf.SubmitLabel))
}

// Touched renders the hidden input carrying the touched-field set.
func (lf liveForm) Touched(oob bool) templ.Component {
	return void("input", []attr{
		at("id", lf.touchedID()),
		at("type", "hidden"),
		at("name", forms.TouchedField),
		at("value", lf.Form.TouchedParam()),
		when(oob, at("hx-swap-oob", "true")),
	})
}

// Wrap renders the <form> element around fields.
func (lf liveForm) Wrap(fields ...templ.Component) templ.Component {
	children := append([]templ.Component{lf.Touched(false)}, fields...)
	children = append(children, lf.Submit(false))
	return el("form", []attr{
		at("id", lf.ID),
		at("method", "post"),
		at("action", lf.Action),
		at("hx-post", lf.Action),
		at("hx-target", "#"+lf.ID),
		at("hx-swap", "outerHTML"),
		flag("novalidate", true),
	}, children...)
}

// formFeedback is the answer to a validation request: every error slot,
// the submit button and the touched set, all swapped out-of-band.
func formFeedback(lf liveForm) templ.Component {
	parts := make([]templ.Component, 0, len(lf.Form.Fields())+2)
	for _, name := range lf.Form.Fields() {
		parts = append(parts, lf.ErrorSlot(name, true))
	}
	parts = append(parts, lf.Submit(true), lf.Touched(true))
	return group(parts...)
}
