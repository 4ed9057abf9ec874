// Package forms declares the page forms of the blog front end.
//
// Each constructor returns a fresh *form.Form with its fields and ordered rules.
// Required rules come first so that an empty field reports the required message
// rather than a length or pattern failure.
//
//	f := forms.NewRegistration()
//	f.Load(r.PostForm, form.ParseTouched(r.PostForm.Get(forms.TouchedField))...)
//	if f.Valid() {
//		// f.Value(forms.Email), f.Value(forms.Password) ...
//	}
package forms
