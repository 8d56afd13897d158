// Package ports defines the contracts between the application core and the
// infrastructure: repositories bound to a unit of work, the listing cache, push
// notifications and identity resolution.
package ports
