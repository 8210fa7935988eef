// Package tests holds shared test doubles (tests/mocks) and the
// container-backed suites under tests/integration, which run with
// `-tags integration`.
package tests
