// Package lifecycle holds the regulated life of a waste item as static tables:
// which states exist, which transitions are legal, which guard rule applies to a
// target state, how operation quantities are admitted, and which states mark a
// certifiable activity.
//
// Every table is built once at package initialisation and only ever read. Lookups
// return copies so callers cannot mutate the tables.
//
// State groups:
//
//	pre-reception   Generated → CollectionRequested → CollectionConfirmed → InTransit
//	on-site         Received → Inspected → Classified → ... → Certified → Closed
//	transformation  InTransformation → Transformed, Originated
//	exception       Rejected, Observed, Retained, Expired, Cancelled
//
// Transformed, Closed and Cancelled are terminal.
package lifecycle
