// Package models lists the OpenAI speech models an API key can use, so a
// user can pick a --openai-model their account has access to.
package models
