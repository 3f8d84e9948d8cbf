// Package testsupport provides shared helpers for tests: temp-directory
// configs and synthetic WAV fixtures.
package testsupport
