// Package services defines the error taxonomy shared by pipeline stages
// and hosts clients for external collaborators (speech recognition).
package services
