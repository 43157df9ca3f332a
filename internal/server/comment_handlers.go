package server

import (
	"buddyboost/internal/models"

	"github.com/gofiber/fiber/v2"
)

// commentView is the API representation of a comment with its author attached.
type commentView struct {
	ID        uint   `json:"id"`
	Content   string `json:"content"`
	UserID    uint   `json:"user_id"`
	UserName  string `json:"user_name"`
	Avatar    string `json:"avatar"`
	PostID    uint   `json:"post_id"`
	CreatedAt string `json:"created_at"`
}

func toCommentView(cm *models.Comment) commentView {
	return commentView{
		ID:        cm.ID,
		Content:   cm.Content,
		UserID:    cm.UserID,
		UserName:  cm.User.DisplayName(),
		Avatar:    defaultAvatar,
		PostID:    cm.PostID,
		CreatedAt: cm.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetComments handles GET /api/comments/post/:id
// @Summary List a post's comments
// @Description Comments oldest-first so threads read top-down
// @Tags comments
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{success=bool,comments=[]object}
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/post/{id} [get]
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	comments, err := s.commentService.ListComments(c.Context(), postID)
	if err != nil {
		return fail(c, err)
	}

	views := make([]commentView, 0, len(comments))
	for i := range comments {
		views = append(views, toCommentView(&comments[i]))
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"comments": views,
	})
}

// CreateComment handles POST /api/comments
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{post_id=int,content=string} true "Comment"
// @Success 201 {object} object{success=bool,comment=object}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments [post]
func (s *Server) CreateComment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PostID  uint   `json:"post_id"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return fail(c, models.NewValidationError("post_id is required"))
	}

	comment, err := s.commentService.CreateComment(c.Context(), userID, req.PostID, req.Content)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}

// DeleteComment handles DELETE /api/comments/:id
// @Summary Delete own comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /comments/{id} [delete]
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	userID := currentUserID(c)

	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.DeleteComment(c.Context(), userID, commentID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Comment deleted",
	})
}
