// Package models defines the core domain models for cashlogger.
//
// # Models
//
//   - User: a registered account that owns a ledger
//   - Transaction: one signed ledger line (income positive, loss negative)
//   - EntryType: the Income/Loss flag supplied when a transaction is recorded
//
// # Design Principles
//
// 1. **Plain data**: models carry no behavior beyond small helpers; services own logic
// 2. **Avoid circular references**: relationships are ID fields, not pointers
// 3. **Signed amounts**: the Income/Loss flag is applied once, at creation; after
// that the sign on Transaction.Amount is the single source of truth
package models
