// Package user manages Ko-fi user records.
//
// A user is keyed by their verification token and carries a data-retention
// window, the timestamp of their latest "recent" amount query, and a preferred
// display currency. Records are created lazily when the webhook sees an unseen
// token, or explicitly through these endpoints.
//
// # HTTP Endpoints
//
//   - POST   /user/:verification_token : create (optional ?data_retention_days)
//   - GET    /user/:verification_token : lookup
//   - PATCH  /user/:verification_token : update retention / latest request / currency
//   - DELETE /user/:verification_token : delete, cascading to transactions unless
//     ?include_transactions=false
//
// The service also owns the retention sweep: deleting each user's transactions
// older than their retention window. The sweep runs from the CLI, not from an
// in-process scheduler.
package user
