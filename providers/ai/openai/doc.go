// Package openai implements [ai.Provider] for OpenAI-compatible
// /chat/completions endpoints, which most relay services and self-hosted
// gateways also expose.
//
// The main entry point is [New], which reads OPENAI_API_KEY and
// OPENAI_API_BASE_URL from the environment. Use [Provider.WithAPIKey],
// [Provider.WithBaseURL] and [Provider.WithModel] to override these values
// programmatically.
package openai
