// Package auth provides bearer-token authentication for duckgate.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Yes (identity found), No (credentials
// invalid), or Abstain (can't handle). When every authenticator abstains the
// request is rejected. duckgate runs a single static API key authenticator,
// so a missing or foreign Authorization header is refused.
//
// Auth is implemented as HTTP middleware, keeping it decoupled from the
// completion flow. Only CORS preflight requests skip it; every other method
// and path, the health and metrics endpoints included, needs a valid key.
package auth
