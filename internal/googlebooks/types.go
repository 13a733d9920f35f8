package googlebooks

// Record is the normalized metadata of one matched volume.
type Record struct {
	Authors   string
	Publisher string
	ISBN      string
	CoverURL  string
}

// Identifier types as reported in industryIdentifiers.
const (
	IdentifierISBN13 = "ISBN_13"
	IdentifierISBN10 = "ISBN_10"
)

type searchResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	ImageLinks          *imageLinks          `json:"imageLinks"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}
