// Package kernel contains shared value objects used across all domain
// aggregates: validated identifiers and geographic coordinates.
//
// Everything in this package is immutable. Zero values are invalid and fail
// validation; instances must be created through the provided constructors.
package kernel
