package server

import (
	"buddyboost/internal/models"
	"buddyboost/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// GetReactions handles GET /api/reactions/post/:id
// @Summary List a post's reactions
// @Tags reactions
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} object{success=bool,reactions=[]models.Reaction}
// @Failure 404 {object} models.ErrorResponse
// @Router /reactions/post/{id} [get]
func (s *Server) GetReactions(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	reactions, err := s.reactionService.ListReactions(c.Context(), postID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"reactions": reactions,
	})
}

// ToggleReaction handles POST /api/reactions
// @Summary Toggle a reaction on a post
// @Description Same kind removes it, a different kind replaces it, none adds it
// @Tags reactions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{post_id=int,reaction_type=string} true "Reaction"
// @Success 200 {object} object{success=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /reactions [post]
func (s *Server) ToggleReaction(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		PostID uint   `json:"post_id"`
		Kind   string `json:"reaction_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}
	if req.PostID == 0 {
		return fail(c, models.NewValidationError("post_id is required"))
	}

	reaction, outcome, err := s.reactionService.ToggleReaction(c.Context(), userID, req.PostID, req.Kind)
	if err != nil {
		return fail(c, err)
	}

	if outcome == repository.ToggleRemoved {
		return c.JSON(fiber.Map{
			"success": true,
			"removed": true,
		})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"reaction": reaction,
	})
}
