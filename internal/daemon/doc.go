// Package daemon runs speechtag in watch mode: it holds a single
// instance lock, monitors the input directory for new recordings, and
// feeds the workflow manager's worker pool.
package daemon
