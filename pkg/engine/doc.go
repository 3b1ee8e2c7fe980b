// Package engine implements the core orchestration logic for duckgate.
// The Engine gates the requested model against the supported set, hands the
// flattened conversation to the provider, and shapes the reassembled reply
// into a chat.completion envelope. When no text could be extracted it
// reports a passthrough of the raw upstream body instead.
package engine
