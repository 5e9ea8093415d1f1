// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the dispatch system. It implements business
// logic that doesn't naturally belong to a single aggregate root.
//
// The package includes:
//   - BufferCalculator: maps the current active-order volume to a buffer timer
//     and a human-readable dispatch scenario
//   - GroupAssigner: places buffered-out orders into geographic delivery groups
//
// Domain services coordinate between aggregates following Domain-Driven Design
// principles.
package services
