// Package formatter writes a canonical feed to disk.
//
//   - wrapper.go: the Envelope that stamps a run id and generation time
//   - json.go: <prefix>feed.json
//   - sqlite.go: <prefix>feed.db
//   - lock.go: the output directory lock shared by both writers
package formatter
