package models

import "time"

// Tweet represents a single post as read from the ledger
type Tweet struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"authorID"`
	Content   string    `json:"content"`
	MediaCID  string    `json:"mediaCID"`
	Timestamp time.Time `json:"timestamp"`
}

// Comment represents a reply attached to a parent post
type Comment struct {
	ID          string    `json:"id"`
	PostID      string    `json:"postID"`
	Author      string    `json:"author"`
	Name        string    `json:"name"`
	CommenterID string    `json:"commenterID"`
	Avatar      string    `json:"avatar"`
	Content     string    `json:"content"`
	MediaCID    string    `json:"mediaCID"`
	Timestamp   time.Time `json:"timestamp"`
}

// Repost records who boosted a post and when
type Repost struct {
	PostID         string    `json:"postID"`
	ReposterName   string    `json:"reposterName"`
	ReposterID     string    `json:"reposterID"`
	ReposterAvatar string    `json:"reposterAvatar"`
	Timestamp      time.Time `json:"timestamp"`
}

// Engagement holds the per-post counters and viewer-relative flags
// assembled from the interaction contracts
type Engagement struct {
	PostID      string `json:"postID"`
	Likes       int64  `json:"likes"`
	Comments    int64  `json:"comments"`
	Reposts     int64  `json:"reposts"`
	Liked       bool   `json:"liked"`
	Commented   bool   `json:"commented"`
	Reposted    bool   `json:"reposted"`
	LikesOK     bool   `json:"-"`
	CommentsOK  bool   `json:"-"`
	RepostsOK   bool   `json:"-"`
	LikedOK     bool   `json:"-"`
	CommentedOK bool   `json:"-"`
	RepostedOK  bool   `json:"-"`
}

// Profile is the viewer-facing identity summary
type Profile struct {
	Address string `json:"address"`
	UserID  string `json:"userID"`
	Name    string `json:"name"`
	Avatar  string `json:"avatar"`
}

// MediaKind classifies pinned media by probed MIME type
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
	MediaKindFile  MediaKind = "file"
	MediaKindNone  MediaKind = ""
)
