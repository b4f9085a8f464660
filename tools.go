//go:build tools
// +build tools

package tools

// Pins lint, mock, swagger and benchmark tooling versions in go.mod

import (
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"
	_ "github.com/swaggo/swag/cmd/swag"
	_ "github.com/vektra/mockery/v2"
	_ "golang.org/x/perf/cmd/benchstat"
)
