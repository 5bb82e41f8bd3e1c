package board

type CreatePostRequest struct {
	Category string `json:"category"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
}

type CreateCommentRequest struct {
	Body string `json:"body" binding:"required"`
}

type ReactionRequest struct {
	Kind string `json:"kind" binding:"required"`
}
