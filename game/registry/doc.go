// Package registry owns the mapping from room code to live Room and from
// connection ID to room membership. It creates and destroys rooms, routes
// connections to their room, and generates the 6-character room codes.
//
// The registry holds no game state of its own: both maps are guarded by a
// single RWMutex with O(1) critical sections, and every Room serializes its
// own mutations independently. Rooms never share state with each other.
//
// A room is destroyed the instant its roster becomes empty: there is no
// grace period and no rejoin window. All state is memory-resident for the
// lifetime of the process.
package registry
