// Package web composes the public marketing site.
//
// It owns process-level wiring: visitor storage, the visitor cookie codec,
// the pricing client, the optional Google provider, metrics, and the
// middleware chain around the feature modules. Feature behavior lives in
// modules/public and modules/authui.
package web
