//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools used by this repository:
// - github.com/matryer/moq (go:generate lines in service tests)
// - github.com/pressly/goose/v3/cmd/goose (ad-hoc migration work; cmd/migrate covers up/down/status)
