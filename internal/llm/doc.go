// Package llm is the client for the OpenRouter chat-completion API and the
// prompts that turn the scraped events table into structured data.
//
// The completion service is inherently best-effort: prompts pin down the
// expected reply shape as tightly as text allows, and replies are validated
// strictly at this boundary. Anything that does not match the expected
// scalar or JSON shape fails the run.
package llm
