package htmx

import "net/http"

// Response headers.
const (
	HeaderHXLocation = "HX-Location"
	HeaderHXPushURL  = "HX-Push-Url"
	HeaderHXRedirect = "HX-Redirect"
	HeaderHXRefresh  = "HX-Refresh"
	HeaderHXReswap   = "HX-Reswap"
	HeaderHXRetarget = "HX-Retarget"
	HeaderHXTrigger  = "HX-Trigger"
)

// Request headers.
const (
	HeaderHXRequest     = "HX-Request"
	HeaderHXBoosted     = "HX-Boosted"
	HeaderHXCurrentURL  = "HX-Current-URL"
	HeaderHXTarget      = "HX-Target"
	HeaderHXTriggerName = "HX-Trigger-Name"
)

// IsHTMX reports whether the request was issued by htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// IsBoosted reports whether the request comes from an hx-boost link or form.
// Boosted requests swap the whole body and expect a full document.
func IsBoosted(r *http.Request) bool {
	return r.Header.Get(HeaderHXBoosted) == "true"
}

// IsPartial reports whether the client expects a fragment rather than a document.
func IsPartial(r *http.Request) bool {
	return IsHTMX(r) && !IsBoosted(r)
}

// Target returns the id of the element htmx will swap.
func Target(r *http.Request) string {
	return r.Header.Get(HeaderHXTarget)
}

// TriggerName returns the name of the element that fired the request.
func TriggerName(r *http.Request) string {
	return r.Header.Get(HeaderHXTriggerName)
}

// CurrentURL returns the browser URL at request time.
func CurrentURL(r *http.Request) string {
	return r.Header.Get(HeaderHXCurrentURL)
}
