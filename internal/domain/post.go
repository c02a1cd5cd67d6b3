// Package domain contains the core post and contact models shared across the server.
package domain

import "time"

// Post is the API-facing read model. The embedded contact is resolved from the
// contacts service at read time; it is never stored inline.
type Post struct {
	ID      int64     `json:"id" doc:"Post ID"`
	Title   string    `json:"title" doc:"Post title"`
	Content string    `json:"content" doc:"Post content"`
	Tags    []string  `json:"tags" doc:"Tags in insertion order"`
	Contact *Contact  `json:"contact" doc:"Associated contact, if any"`
	Created time.Time `json:"created" doc:"Creation time"`
	Updated time.Time `json:"updated" doc:"Last update time"`
}

// PostRecord is the persisted form of a post. Tags are stored as a JSON blob
// and the contact as a nullable foreign id owned by the contacts service.
type PostRecord struct {
	ID        int64
	Title     string
	Content   string
	TagsJSON  string
	ContactID *int64
	Created   time.Time
	Updated   time.Time
}

// SavePostRequest is the write model for create and full replace. At most one
// of ContactID and Contact is meaningful; when both are set the ContactID
// branch wins and the embedded contact is ignored.
type SavePostRequest struct {
	Title     string   `json:"title,omitempty" validate:"required" doc:"Post title"`
	Content   string   `json:"content,omitempty" validate:"required" doc:"Post content"`
	Tags      []string `json:"tags,omitempty" doc:"Tags in insertion order"`
	ContactID *int64   `json:"contactId,omitempty" doc:"Existing contact to associate by reference"`
	Contact   *Contact `json:"contact,omitempty" doc:"Contact to create (no id) or update (with id)"`
}

// PatchPostRequest is the write model for partial updates. A nil field means
// leave unchanged; a present field, including a present-but-empty one,
// replaces the stored value. A JSON null for tags counts as absent.
type PatchPostRequest struct {
	Title     *string  `json:"title,omitempty" doc:"New title"`
	Content   *string  `json:"content,omitempty" doc:"New content"`
	Tags      []string `json:"tags,omitempty" doc:"Replacement tag list"`
	ContactID *int64   `json:"contactId,omitempty" doc:"Existing contact to associate by reference"`
	Contact   *Contact `json:"contact,omitempty" doc:"Contact to create (no id) or update (with id)"`
}
