package envfile

import (
	"encoding/base64"
	"fmt"
)

// Env is an insertion-ordered mapping from variable name to the base64
// encoding of its value. A key set twice keeps its first position and its
// last value.
type Env struct {
	keys      []string
	values    map[string]string
	truncated map[string]bool
}

// NewEnv returns an empty Env.
func NewEnv() *Env {
	return &Env{
		values:    make(map[string]string),
		truncated: make(map[string]bool),
	}
}

// Set stores the base64 encoding of value under key.
func (e *Env) Set(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = base64.StdEncoding.EncodeToString([]byte(value))
	delete(e.truncated, key)
}

func (e *Env) markTruncated(key string) {
	e.truncated[key] = true
}

// Get returns the base64-encoded value stored under key.
func (e *Env) Get(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Decoded returns the raw value stored under key.
func (e *Env) Decoded(key string) (string, error) {
	v, ok := e.values[key]
	if !ok {
		return "", fmt.Errorf("key %q not set", key)
	}
	raw, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return "", fmt.Errorf("decoding %q: %w", key, err)
	}
	return string(raw), nil
}

// Keys returns the keys in the order they first appeared.
func (e *Env) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

func (e *Env) Len() int {
	return len(e.keys)
}

// Truncated returns, in key order, the keys whose final value had extra
// shell words dropped.
func (e *Env) Truncated() []string {
	var out []string
	for _, k := range e.keys {
		if e.truncated[k] {
			out = append(out, k)
		}
	}
	return out
}
