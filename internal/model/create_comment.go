package model

type CreateCommentDTO struct {
	PostID  int64  `json:"post_id"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
