// Package llm provides a minimal client for OpenAI-compatible chat
// completion endpoints. The translator and chief editor both talk through
// it; retries with exponential backoff are handled here so callers only see
// final outcomes.
package llm
