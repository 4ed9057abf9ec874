package services

import "time"

// User is a backend account.
type User struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	Verified  bool      `json:"verified"`
	Admin     bool      `json:"admin"`
}

// Identity is the authenticated user returned by login.
type Identity struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Category groups posts.
type Category struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
}

// Post is a blog article. Body is markdown.
type Post struct {
	CreatedAt  time.Time  `json:"createdAt"`
	User       User       `json:"user"`
	Slug       string     `json:"slug"`
	Title      string     `json:"title"`
	Caption    string     `json:"caption"`
	Body       string     `json:"body"`
	Photo      string     `json:"photo"`
	Tags       []string   `json:"tags"`
	Categories []Category `json:"categories"`
	Comments   []Comment  `json:"comments,omitempty"`
}

// Comment is a comment on a post. Check is the moderation flag.
type Comment struct {
	CreatedAt   time.Time `json:"createdAt"`
	User        User      `json:"user"`
	Post        *PostRef  `json:"post,omitempty"`
	ReplyOnUser *User     `json:"replyOnUser,omitempty"`
	ID          string    `json:"_id"`
	Desc        string    `json:"desc"`
	Parent      string    `json:"parent,omitempty"`
	Check       bool      `json:"check"`
	Replies     []Comment `json:"replies,omitempty"`
}

// PostRef is the short form of a post embedded in comments.
type PostRef struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}
