// Package printjob contains the PrintJob aggregate: one ticket-printing
// request with a frozen snapshot of the item and order data taken at enqueue
// time, so later mutation of the item never changes what gets printed.
//
// Printed and Failed are terminal. Failed jobs are not retried by this core;
// an operator re-queues them explicitly, which creates a fresh job from the
// same snapshot.
package printjob
