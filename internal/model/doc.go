// Package model defines the typed events and identifiers shared across the
// payments engine.
//
// Conventions:
//   - Amounts: fixed-point ticks of 0.0001 (see internal/amount)
//   - IDs: uint16 client ids, uint32 transaction ids
//   - Event.Amount is nil for dispute, resolve and chargeback
package model
