// Package issues defines the canonical issue model shared by every tracker
// adapter and the reconciliation engine.
//
// Adapters translate tracker-native payloads into CanonicalIssue values. The
// reconciler turns those into LocalRecord values, the persisted form kept in
// the local store. Source specific vocabulary (priority names, issue type
// names, key formats) stays inside the adapters; this package only knows the
// normalized shapes and the rules that make matching across runs possible:
// every issue carries a tracker-key label equal to its SourceKey plus the
// "synced" marker label.
package issues
