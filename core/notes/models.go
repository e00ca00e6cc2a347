package notes

import "time"

// Note is a study note authored by the active student.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"createdAt"`
	Tags      []string  `json:"tags"`
}

// CatalogNote is a note shared by another student, discoverable in the
// community and friend libraries.
type CatalogNote struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Code    string `json:"code"`
	Content string `json:"content"`
}
