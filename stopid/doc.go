/*
Package stopid assigns permanent integer identifiers to raw feed stops.

The agency regenerates its feed on every release and the raw stop ids carry
release-specific prefixes (STC_F_, STC_S2016_, Sto...). The assigner strips
every prefix form ever seen and classifies what remains:

  - all digits: the number itself
  - a landmark code (DTT, BRU, ...): a fixed id in the 100000 block
  - <locality><digits> (CD12, NOTL7, ...): digits plus the locality offset
  - <street><cross street> (DnklCrlt, PelmGndl, ...): base block plus offset

Anything else is an error. There is no fallback id, because a fallback could
collide with a real stop in a later release.

# Usage

	assigner, err := stopid.NewAssigner(stopid.DefaultTables())
	if err != nil {
	    log.Fatal(err)
	}
	id, err := assigner.Assign(stop.Code, stop.ID, stop.Name)
*/
package stopid
