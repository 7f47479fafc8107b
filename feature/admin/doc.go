// Package admin exposes raw table listings behind the admin guard.
package admin
