package sharedTypes

// Collection is a set of images stored under one S3 prefix
type Collection struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Bucket      string `json:"bucket"`
	Folder      string `json:"folder"`
}
