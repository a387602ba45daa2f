// Package signal lets a task wait for a named event emitted by the host.
//
// The host adapter feeds events into a Bus with Emit. Await subscribes
// before running its trigger, so an event emitted by the trigger itself is
// never missed.
package signal
