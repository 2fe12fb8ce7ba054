// Package translator turns transcribed segments into target-language
// segments using an OpenAI-compatible chat model, with an optional chief
// editor pass that polishes the draft translation.
package translator
