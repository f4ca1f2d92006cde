// Package models defines the core domain models for MergeMoney.
//
// # Models
//
//   - User: Registered account with a global role
//   - Group: Named collection of members sharing expenses
//   - Member: One user's membership in a group (group-scoped role plus settlement status)
//   - Expense: A shared cost with per-member splits
//
// # Design Principles
//
// 1. **Derived state stays derived**: net balances are never stored on a
// model; they are recomputed from the expense set on every read.
//
// 2. **Normalize at the boundary**: legacy payloads sometimes carry members
// as bare email strings. Those are converted to Member values (role
// defaulting to viewer) before any aggregation or settlement logic sees
// them, never inside it.
//
// 3. **Avoid circular references**: models reference each other by ID or
// email strings, never by pointer.
package models
