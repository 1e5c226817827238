// Package model defines the normalized keyboard, territory and language
// entities and the keyed tables that hold them.
package model
