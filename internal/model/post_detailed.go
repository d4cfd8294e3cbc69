package model

// PostWithTags is the listing shape: the post row plus its resolved tags.
type PostWithTags struct {
	Post *Post  `json:"post"`
	Tags []*Tag `json:"tags"`
}

// PostDetailed is the single-post shape: post, tags, and its comments
// oldest first.
type PostDetailed struct {
	Post     *Post      `json:"post"`
	Tags     []*Tag     `json:"tags"`
	Comments []*Comment `json:"comments"`
}
