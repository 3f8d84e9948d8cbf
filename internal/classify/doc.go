// Package classify maps extracted acoustic features onto discrete tags
// with confidence scores.
//
// Every classifier follows the same shape: fixed boundaries from config
// partition a single driving feature into labels, and confidence grows
// monotonically with distance from the nearest boundary. Indeterminate
// features never fail; they fall through to a pessimistic label at
// minimum confidence so the manual-review map picks them up.
package classify
