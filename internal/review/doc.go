// Package review aggregates per-tag confidences into the manual-review
// map and the record-level quality flags. It composes thresholds from
// config over already-measured values and never measures anything
// itself.
package review
