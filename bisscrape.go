// Package bisscrape extracts roster links and character wishlists from
// "That's My BIS" guild pages that sit behind a cookie-gated login.
//
// This package contains domain types, interfaces and the site-independent
// rules (URL resolution, link filtering, quality tiers) following Ben
// Johnson's Standard Package Layout. Implementations live in subdirectories
// named after their primary dependency (e.g., goquery/, rod/, sqlite/).
package bisscrape
