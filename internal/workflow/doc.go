// Package workflow drives queue processing: a bounded worker pool claims
// pending items from the store and runs each through the tagging
// pipeline, isolating per-file failures and aggregating a batch summary.
package workflow
