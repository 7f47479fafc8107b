// Package exchange provides currency conversion for amount aggregation.
//
// Donations arrive with whatever currency the donor paid in; the amount
// endpoints report a single total in the user's preferred currency. The
// client asks a primary rate provider first and falls back to a backup
// provider, with a strict timeout on each request so a slow provider cannot
// stall the request path.
package exchange
