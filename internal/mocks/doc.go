// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized mock implementations can be reused across test packages. Each
// mock exposes function fields for custom per-test behavior and sensible
// map-backed defaults for the common cases.
package mocks
