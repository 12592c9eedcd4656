// Package geo holds the input side of the tour engine: the Point entity and
// the planar projections used to turn geographic coordinates into a single
// consistent unit before any distance is computed.
//
// Points are immutable values. Every helper in this package returns fresh
// slices and never writes into the caller's point set.
//
// Coordinates follow the orb convention: X is longitude (or easting), Y is
// latitude (or northing). Planar distances are only meaningful after the set
// has been projected with one of the Projection modes.
package geo
