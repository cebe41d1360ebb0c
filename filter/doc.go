// Package filter decides which raw feed records survive a run.
//
// The St Catharines feed also carries Niagara Region Transit routes and stops
// of neighbouring operators. Route, stop, trip and calendar predicates are
// independent; Apply chains them so that a dropped route takes its trips
// with it, and stops and services only survive when a kept trip uses them.
package filter
