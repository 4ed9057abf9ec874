// Package cookie writes plain, signed and encrypted cookies.
//
// A Manager carries the attributes shared by all cookies of the application and,
// once a secret is set, an AES-GCM cipher for sealed values. The cookie name is
// bound to the sealed value, so a sealed value cannot be replayed under another name.
//
//	m, err := cookie.New(cookie.WithSecret(cfg.CookieSecret), cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//
//	_ = m.SetSigned(w, "__sid", sessionID, 30*24*3600)
//	_ = m.SetFlash(w, "toasts", []toast.Toast{...})
//	var ts []toast.Toast
//	err = m.Flash(w, r, "toasts", &ts) // reads and deletes
package cookie
