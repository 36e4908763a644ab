// Package pagemeta extracts a best-effort title, site name, and description
// from HTML pages. Candidate text is gathered from several document locations
// and meta tags, normalized, and ranked so that missing or malformed markup
// degrades to an empty result instead of an error.
//
// This package contains domain types, interfaces, and the ranking logic,
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// sqlite/, rod/).
package pagemeta
