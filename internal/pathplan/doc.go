// Package pathplan derives conflict-free Artist/Album/Track destination paths
// from track metadata, using content identity to tell re-imports apart from
// genuine name collisions.
package pathplan
