// Package views holds the HTML components of the blog front end.
//
// Components are templ.Component values built with templ.ComponentFunc.
// Page and AdminLayout render full documents; every other component is a fragment
// that handlers send alone to htmx requests. Toasts is the out-of-band toast renderer
// and NavigateAfter performs the delayed client-side navigation after registration.
package views
