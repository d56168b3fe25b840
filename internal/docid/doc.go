// Package docid maps caller document ids to dense uint32 indices and back.
//
// Bucket bitmaps and the fingerprint store work on dense indices. The Table
// interns each distinct ID once, in first-seen order, and never forgets it.
package docid
