// Package resilience groups the fault-tolerance helpers of the service.
//
// circuitbreaker wraps every database call with a gobreaker so that a
// failing PostgreSQL answers fast. retry is used only at process startup to
// wait for the database and its schema; request paths do not retry.
package resilience
