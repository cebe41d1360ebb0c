/*
Package label normalizes display labels: stop names, trip headsigns and
route names.

Normalization is a fixed sequence of regular-expression stages run on
lower-case text:

 1. case fold, "_" to space
 2. headsigns only: drop "20 " / "20 Thorold - " route prefixes
 3. "&" and "and" unified to "&"
 4. locative words (at, near, opposite, ...) become "/"
 5. "&" becomes "/"
 6. abbreviation points removed
 7. stop-number noise removed, ordinal words to "1st", "2nd", ...
 8. street types abbreviated (Style)
 9. dangling separators trimmed
 10. spacing and capitalization (Style)

The result is stable under repeated normalization:

	n := label.NewNormalizer(nil)
	n.Normalize("St.Davids Rd. & Collier Rd.", label.StopName) // "St Davids Rd / Collier Rd"
	n.NormalizeHeadsign("20 Thorold - Towpath Terminal", "20") // "Towpath Terminal"
*/
package label
