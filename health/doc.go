// Package health reports whether the probing components are working.
//
// The item cache and the quality probe each expose a Checker. An Aggregator
// runs a set of checkers concurrently under one deadline and folds their
// results into a Report, which Handler serves as JSON.
package health
