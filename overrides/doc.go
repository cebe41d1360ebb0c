// Package overrides holds the hand-curated per-route tables: route colors,
// literal headsigns for specific directions, and the headsign pairs that are
// allowed to merge. Lookups that miss the color or merge tables are errors so
// that new feed content is curated instead of guessed.
package overrides
