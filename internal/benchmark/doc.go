// Package benchmark holds cross-package timer benchmarks.
//
//	go test -bench=. ./internal/benchmark
package benchmark
