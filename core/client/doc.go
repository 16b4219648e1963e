// Package client is the orchestration layer between a raw chat-completion
// provider and the game code that needs structured documents from it.
//
// [Client] implements [Generator] over an [ai.Provider], threading every call
// through a [Middleware] chain (retry, timeout, logging and metrics live in
// the middleware subpackage). [GenerateJSON] and [GenerateAs] run the
// tolerant extraction pipeline from core/extract on the generated text, so a
// caller gets either a valid document or an error matching [ErrRetryPrompt].
package client
