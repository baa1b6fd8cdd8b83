// Package playlist parses line-oriented playlists (M3U/M3U8) into ordered,
// validated source file paths.
package playlist
