// Package kitchenitem contains the OrderItem aggregate: one line of a
// customer order moving through the kitchen pipeline.
//
// Items advance through a strictly linear lifecycle (pending, in prep,
// in oven, ready) and can only be advanced by the operator holding the
// current claim. All transitions are persisted with conditional writes so
// that concurrent kitchen displays racing on the same item have exactly
// one winner.
package kitchenitem
