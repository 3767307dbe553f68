// Package kernel provides the value objects shared by the parcel domain.
//
// The package includes:
//   - UUID: identifiers for parcels, senders and couriers
//   - GeoPoint: a validated latitude/longitude pair with a locale-invariant
//     "<lat>,<lon>" text form
//   - Money: an amount in minor currency units with explicit rounding
//
// All types are immutable values and safe for concurrent use.
package kernel
