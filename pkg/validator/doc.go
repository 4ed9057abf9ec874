// Package validator provides functional, composable validation rules.
//
// Rules are plain values built from the field name and the value under test.
// Apply evaluates them in order and collects every failure into ValidationErrors,
// so a caller can decide how many messages to surface per field.
//
// # Basic Usage
//
//	err := validator.Apply(
//		validator.RequiredString("email", form.Email),
//		validator.ValidEmail("email", form.Email),
//		validator.MinLenString("password", form.Password, 6),
//		validator.EqualString("confirmPassword", form.Confirm, form.Password),
//	)
//	if validator.IsValidationError(err) {
//		errs := validator.ExtractValidationErrors(err)
//		fmt.Println(errs.First("email"))
//	}
//
// # Custom Messages
//
// Every rule carries an English default message plus a translation key and values.
// WithMessage replaces the user-facing text without touching the translation data:
//
//	validator.RequiredString("username", v).WithMessage("Username is required")
//
// # Translation
//
// ValidationErrors.Translate rewrites messages in place using any function with the
// signature func(key string, values map[string]any) string.
//
// Standard translation keys:
//
//	validation.required      {field}
//	validation.min_length    {field, min}
//	validation.max_length    {field, max}
//	validation.exact_length  {field, length}
//	validation.pattern       {field}
//	validation.email         {field}
//	validation.equal         {field, other}
//	validation.min           {field, min}
//	validation.max           {field, max}
//	validation.min_items     {field, min}
//	validation.max_items     {field, max}
package validator
