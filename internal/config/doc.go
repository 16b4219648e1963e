// Package config loads the tangshi configuration.
//
// Values are layered, lowest priority first: built-in defaults, an optional
// YAML/JSON/TOML config file, a .env file in the working directory, and
// TANGSHI_* environment variables (llm.api_key is TANGSHI_LLM_API_KEY).
// OPENAI_API_KEY and OPENAI_API_BASE_URL are honoured when the TANGSHI_
// variables are unset.
package config
