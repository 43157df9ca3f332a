package server

import (
	"github.com/gofiber/fiber/v2"
)

// Profile handles GET /api/users/profile
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,user=models.User}
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/profile [get]
func (s *Server) Profile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user,
		"level":   user.Level(),
	})
}

// DeleteAccount handles DELETE /api/users/delete
// @Summary Delete the current account
// @Description Removes the account and everything it authored, then revokes outstanding tokens
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /users/delete [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := s.userService.DeleteAccount(c.Context(), userID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account deleted",
	})
}

// Leaderboard handles GET /api/users/leaderboard
// @Summary XP leaderboard
// @Tags users
// @Produce json
// @Success 200 {object} object{success=bool,leaders=[]object}
// @Router /users/leaderboard [get]
func (s *Server) Leaderboard(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)

	users, err := s.userService.Leaderboard(c.Context(), limit)
	if err != nil {
		return fail(c, err)
	}

	leaders := make([]fiber.Map, 0, len(users))
	for i := range users {
		leaders = append(leaders, fiber.Map{
			"id":    users[i].ID,
			"name":  users[i].DisplayName(),
			"xp":    users[i].XP,
			"level": users[i].Level(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"leaders": leaders,
	})
}
