// Package ai defines the shared, provider-agnostic types used by every chat
// completion backend. Each provider maps [ChatRequest] to its own wire format
// and returns a [ChatResponse], keeping the generation client decoupled from
// provider-specific details.
//
// HTTP failures surface as [*StatusError]; [StatusError.Temporary] tells the
// retry middleware whether a request is worth repeating, and authentication
// failures match [ErrUnauthorized] via errors.Is.
package ai
