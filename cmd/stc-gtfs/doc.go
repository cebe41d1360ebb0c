// Command stc-gtfs canonicalizes the St Catharines Transit GTFS feed.
//
//	stc-gtfs generate --input gtfs.zip --output out --format sqlite
//	stc-gtfs stop-id --code 0218
//	stc-gtfs normalize --kind headsign --route 20 "20 Thorold - Towpath Terminal"
//	stc-gtfs colors
package main
