// Package ident validates and normalizes the two identifier formats that
// appear as URL path segments: user-facing names and IUIDs (32 hex character
// internal unique identifiers). It also generates new IUIDs.
package ident
