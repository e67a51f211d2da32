package records

import "time"

// Note is a timestamped annotation on a study recording.
type Note struct {
	Time int    `json:"time"` // Offset into the recording in seconds
	Data string `json:"data"`
}

type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	File      string    `json:"file"`
	Note      []Note    `json:"note"`
	Tags      []string  `json:"tags"`
	CreatedBy string    `json:"createdBy,omitempty"` // Username of the identity that created it
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update holds the mutable fields of a record.
type Update struct {
	Name string   `json:"name"`
	File string   `json:"file"`
	Note []Note   `json:"note"`
	Tags []string `json:"tags"`
}

func (r Record) clone() Record {
	c := r
	c.Note = append([]Note(nil), r.Note...)
	c.Tags = append([]string(nil), r.Tags...)
	if c.Note == nil {
		c.Note = []Note{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return c
}
