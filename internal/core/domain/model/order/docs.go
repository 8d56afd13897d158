// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Status: the lifecycle states and the table of allowed transitions
//   - Order: the aggregate root holding the client, creator, optional partner and the
//     assigned delivery person
//   - Action: the append-only audit entry recorded for every lifecycle event
//
// Key business rules:
//   - pending -> accepted | canceled; accepted -> delivered | canceled | pending (reject)
//   - delivered and canceled are terminal
//   - the delivery person is assigned iff the status is accepted or delivered
//   - only the assigned delivery person may reject an accepted order
//   - every transition is validated before the aggregate is mutated
package order
