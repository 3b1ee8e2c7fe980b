// Package api defines the wire types and error taxonomy for the duckgate
// Chat Completions shim.
//
// Request, completion and model types come from github.com/sashabaranov/go-openai
// so that clients of the OpenAI API decode duckgate responses unchanged. This
// package adds the pieces that API does not define: the model list wrapper,
// the route error payload, completion ID generation, and [APIError], the
// structured error written for every failed request.
//
// Error taxonomy:
//   - invalid_api_key (401): missing or unknown bearer token
//   - model_not_found (404): requested model is not in the supported set
//   - invalid_request (400/413): body could not be decoded
//   - upstream_unavailable, upstream_rejected, upstream_rate_limited: the chat
//     upstream failed; these never reuse client error codes
//   - server_error (500): recovered panic
package api
