// Package provider defines the interface for chat backends. An adapter
// (e.g., duckchat) owns its backend protocol, including any session
// handshake, and hands the engine reassembled assistant text.
package provider
