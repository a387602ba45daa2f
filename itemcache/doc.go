// Package itemcache resolves item identifiers to track records from the host
// player's state.
//
// A Cache fills itself from a bulk Snapshotter first. When an identifier is
// still missing it asks a Prober to make the host load it, then reads the
// snapshot again. NavigationProber is the Prober that does this by navigating
// to the item's page and back.
package itemcache
