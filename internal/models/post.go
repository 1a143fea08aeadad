package models

// Post is a single feed entry. Posts are kept newest-first; IDs are
// unique within the feed.
type Post struct {
	ID        string   `json:"id"`
	Author    string   `json:"author"`
	Avatar    string   `json:"avatar,omitempty"`
	TimeLabel string   `json:"time,omitempty"`
	Edited    bool     `json:"edited,omitempty"`
	Content   string   `json:"content"`
	Image     *string  `json:"image"`
	Tags      []string `json:"tags,omitempty"`
}

// PostUpdate is a partial post edit keyed by post ID. Nil fields are left
// untouched.
type PostUpdate struct {
	Author    *string   `json:"author"`
	Avatar    *string   `json:"avatar"`
	TimeLabel *string   `json:"time"`
	Edited    *bool     `json:"edited"`
	Content   *string   `json:"content"`
	Image     *string   `json:"image"`
	Tags      *[]string `json:"tags"`
}

// Apply merges the update into p.
func (u *PostUpdate) Apply(p *Post) {
	if u.Author != nil {
		p.Author = *u.Author
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	if u.TimeLabel != nil {
		p.TimeLabel = *u.TimeLabel
	}
	if u.Edited != nil {
		p.Edited = *u.Edited
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Image != nil {
		p.Image = u.Image
	}
	if u.Tags != nil {
		p.Tags = *u.Tags
	}
}
