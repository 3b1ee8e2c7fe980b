// Package duckchat implements provider.Provider against the DuckDuckGo chat
// service.
//
// Every Complete call performs two sequential requests: a status handshake
// that yields a pair of session tokens, then the chat call carrying those
// tokens. The chat reply is a line-delimited pseudo-event body which is
// reassembled into a single string. Tokens are never cached across calls.
package duckchat
