// Package timeouts defines shared timeout constants used across the site.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// UpstreamRequest caps one outbound call to the pricing API or an identity
// provider.
const UpstreamRequest = 10 * time.Second

// LoginLatency is the simulated round trip of a local login.
const LoginLatency = 800 * time.Millisecond

// SocialLoginLatency is the simulated round trip of a social login.
const SocialLoginLatency = 1000 * time.Millisecond
