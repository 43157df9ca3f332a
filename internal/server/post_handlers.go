package server

import (
	"buddyboost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// defaultAvatar is shown for every author until profile avatars exist.
const defaultAvatar = "🙂"

// postView is the feed representation of a post with its author attached.
type postView struct {
	ID             uint   `json:"id"`
	Content        string `json:"content"`
	UserID         uint   `json:"user_id"`
	UserName       string `json:"user_name"`
	Avatar         string `json:"avatar"`
	UserLevel      int    `json:"user_level"`
	ReactionsCount int    `json:"reactions_count"`
	CommentsCount  int    `json:"comments_count"`
	CreatedAt      string `json:"created_at"`
}

func toPostView(p *models.Post) postView {
	return postView{
		ID:             p.ID,
		Content:        p.Content,
		UserID:         p.UserID,
		UserName:       p.User.DisplayName(),
		Avatar:         defaultAvatar,
		UserLevel:      p.User.Level(),
		ReactionsCount: p.ReactionsCount,
		CommentsCount:  p.CommentsCount,
		CreatedAt:      p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetPosts handles GET /api/posts
// @Summary List feed posts
// @Description Posts newest-first with author info and reaction/comment counts
// @Tags posts
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} object{success=bool,posts=[]object}
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(c.Context(), p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}

	views := make([]postView, 0, len(posts))
	for i := range posts {
		views = append(views, toPostView(&posts[i]))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"posts":   views,
	})
}

// CreatePost handles POST /api/posts
// @Summary Create a feed post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{content=string} true "Post content"
// @Success 201 {object} object{success=bool,post=object}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), userID, req.Content)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"post":    toPostView(post),
	})
}
