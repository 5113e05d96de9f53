package metadata

// Track is the field set the enrichment APIs can fill in.
type Track struct {
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	Album      string `json:"album"`
	Genre      string `json:"genre"`
	Year       string `json:"year"`
	ArtworkURL string `json:"artwork_url"`
}
