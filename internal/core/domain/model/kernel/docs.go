// Package kernel holds the value objects shared by every aggregate: the UUID
// identifier and the GeoPoint used for a delivery person's last known position.
package kernel
