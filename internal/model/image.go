package model

// ImageProperties is a read-only snapshot of an image element's rendered
// properties. It is computed fresh on every request and may be inconsistent
// while the image is still loading: FileCreatedDate is empty and FileSize is
// -1 until the browser has the bytes.
type ImageProperties struct {
	Src             string `json:"src"               yaml:"src"`
	FileCreatedDate string `json:"file_created_date" yaml:"file_created_date"`
	FileSize        int    `json:"file_size"         yaml:"file_size"`
	Width           int    `json:"width"             yaml:"width"`
	Height          int    `json:"height"            yaml:"height"`
	Alt             string `json:"alt"               yaml:"alt"`
}
