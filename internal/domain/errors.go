// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrNoLLM indicates no language model endpoint is configured.
var ErrNoLLM = errors.New("llm endpoint not configured")
