// Package queue persists the processing backlog in SQLite. Each audio
// file is one item moving through pending → processing → a terminal
// state (completed, failed, or review). Workers claim pending items
// atomically, so multiple workers can share one store.
package queue
