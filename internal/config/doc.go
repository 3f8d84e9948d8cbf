// Package config loads, validates, and exposes speechtag configuration.
//
// Configuration is TOML with one section per subsystem. Classifier
// boundaries live here rather than in code so they can be tuned per
// corpus; Validate enforces their monotonic ordering at startup.
package config
