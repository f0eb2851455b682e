// Package netstatus observes network reachability.
//
// A Monitor polls a Prober on a fixed interval and calls its change handler
// with the first observed state and then once per online/offline transition.
// DialProber treats a successful TCP connection to the data endpoint's host
// as "online". Monitors are constructed explicitly and injected; there is no
// process-wide instance.
package netstatus
