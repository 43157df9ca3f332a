package server

import (
	"buddyboost/internal/models"
	"buddyboost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// DiscoverChallenges handles GET /api/challenges/discover
// @Summary List all challenges
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,challenges=[]models.Challenge}
// @Router /challenges/discover [get]
func (s *Server) DiscoverChallenges(c *fiber.Ctx) error {
	challenges, err := s.challengeService.ListChallenges(c.Context())
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"challenges": challenges,
	})
}

// MyChallenges handles GET /api/challenges/mine
// @Summary List the user's enrolled challenges with progress
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool,items=[]models.EnrolledChallenge}
// @Router /challenges/mine [get]
func (s *Server) MyChallenges(c *fiber.Ctx) error {
	userID := currentUserID(c)

	items, err := s.challengeService.ListMine(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"items":   items,
	})
}

// JoinChallenge handles POST /api/challenges/join/:id
// @Summary Join a challenge
// @Description Joining twice is a no-op reporting the existing enrollment
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /challenges/join/{id} [post]
func (s *Server) JoinChallenge(c *fiber.Ctx) error {
	userID := currentUserID(c)

	challengeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.challengeService.JoinChallenge(c.Context(), userID, challengeID)
	if err != nil {
		return fail(c, err)
	}

	if result.AlreadyJoined {
		return c.JSON(fiber.Map{
			"success":        true,
			"message":        "Already joined",
			"already_joined": true,
		})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Challenge joined",
	})
}

// CreateChallenge handles POST /api/challenges/create
// @Summary Create a custom challenge
// @Tags challenges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{title=string,description=string,category=string,duration_days=int,emoji=string} true "Challenge"
// @Success 201 {object} object{success=bool,challenge_id=int,message=string}
// @Failure 400 {object} models.ErrorResponse
// @Router /challenges/create [post]
func (s *Server) CreateChallenge(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		Category     string `json:"category"`
		DurationDays int    `json:"duration_days"`
		Emoji        string `json:"emoji"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	challenge, err := s.challengeService.CreateChallenge(c.Context(), service.CreateChallengeInput{
		CreatorID:    userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		DurationDays: req.DurationDays,
		Emoji:        req.Emoji,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"challenge_id": challenge.ID,
		"message":      "Challenge created",
	})
}

// CheckIn handles POST /api/challenges/checkin/:id
// @Summary Daily challenge check-in
// @Description Advances the streak, detects completion, awards XP
// @Tags challenges
// @Produce json
// @Security BearerAuth
// @Param id path int true "Challenge ID"
// @Success 200 {object} object{success=bool,enrollment=models.Enrollment,awarded_xp=int}
// @Failure 404 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /challenges/checkin/{id} [post]
func (s *Server) CheckIn(c *fiber.Ctx) error {
	userID := currentUserID(c)

	challengeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	result, err := s.challengeService.CheckIn(c.Context(), userID, challengeID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"enrollment": result.Enrollment,
		"completed":  result.Completed,
		"awarded_xp": result.AwardedXP,
	})
}
