package dto

import (
	"time"

	"feed_backend/internal/feature/posts/domain/entity"
	"feed_backend/internal/shared/pagination"
)

// AuthorView は投稿に添付される著者の公開情報です。
type AuthorView struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// PostView はAPIレスポンスに含める投稿情報です。
type PostView struct {
	ID        uint       `json:"id"`
	Content   string     `json:"content"`
	Author    AuthorView `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewPostView はPostエンティティからビューを構築します。
func NewPostView(p *entity.Post) PostView {
	return PostView{
		ID:      p.ID,
		Content: p.Content,
		Author: AuthorView{
			ID:             p.Author.ID,
			Name:           p.Author.Name,
			Email:          p.Author.Email,
			Bio:            p.Author.Bio,
			ProfilePicture: p.Author.ProfilePicture,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PaginationView はフィードレスポンスのページング情報です。
type PaginationView struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalPosts  int64 `json:"totalPosts"`
	HasMore     bool  `json:"hasMore"`
}

// PostListResponse はフィード取得のレスポンスボディです。
type PostListResponse struct {
	Posts      []PostView     `json:"posts"`
	Pagination PaginationView `json:"pagination"`
}

// NewPostListResponse は1ページ分の投稿とページング情報からレスポンスを構築します。
func NewPostListResponse(posts []entity.Post, res pagination.Result) PostListResponse {
	out := make([]PostView, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostView(&posts[i]))
	}
	return PostListResponse{
		Posts: out,
		Pagination: PaginationView{
			CurrentPage: res.CurrentPage,
			TotalPages:  res.TotalPages,
			TotalPosts:  res.TotalItems,
			HasMore:     res.HasMore,
		},
	}
}

// CreatePostResponse は投稿作成成功時のレスポンスボディです。
type CreatePostResponse struct {
	Message string   `json:"message"`
	Post    PostView `json:"post"`
}
