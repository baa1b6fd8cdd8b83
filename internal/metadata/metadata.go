package metadata

// Record holds the normalized tag fields used to place a track in the
// library. Absent fields are empty strings; defaulting happens in the path
// planner, never here.
type Record struct {
	Artist      string `json:"artist"`
	AlbumArtist string `json:"album_artist"`
	Album       string `json:"album"`
	Title       string `json:"title"`
	TrackNumber string `json:"track_number"`
	Year        string `json:"year"`
	Genre       string `json:"genre"`
}

// Empty reports whether no field carries a value.
func (r Record) Empty() bool {
	return r == Record{}
}
