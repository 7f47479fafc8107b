// Package kofi ingests Ko-fi webhook events and answers transaction and
// amount queries over the stored donations.
package kofi
