// Package testdoubles provides spies and fakes for the producer's interfaces: a logger spy,
// a metrics collector spy, and an in-memory Store with error injection.
package testdoubles
