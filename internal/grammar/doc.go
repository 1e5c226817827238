// Package grammar turns keyboard, territory and language document events into
// committed model entities.
//
// Each document family has a Handler that routes character data to an
// accumulation target selected by the most recent start element, and commits
// associations, translated names and entities when their end elements arrive.
// Run drives a Handler from an xmlstream.Reader.
package grammar
