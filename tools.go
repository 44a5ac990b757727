//go:build tools

// Package tools pins build tool versions in go.mod.
// Run: go run github.com/vektra/mockery/v2 (from the module root) to
// regenerate pkg/transport/mocks.
package tools

import (
	_ "github.com/vektra/mockery/v2"
)
