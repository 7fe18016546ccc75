package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Srgrv/mern-food-ordering-app-backend/internal/validation"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/my/user (first-sync provision)
// --------------------------------------------------
func (h *Handler) CreateCurrentUser(c *gin.Context) {
	var req struct {
		Auth0ID string `json:"auth0Id"`
		Email   string `json:"email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if errs := validation.Run([]validation.Rule{
		{Field: "auth0Id", Message: "Auth0Id must be a non-empty string", Check: func() bool { return req.Auth0ID != "" }},
		{Field: "email", Message: "Email must be a non-empty string", Check: func() bool { return req.Email != "" }},
	}); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	u, created, err := h.service.Sync(c.Request.Context(), req.Auth0ID, req.Email)
	if err != nil {
		logrus.WithError(err).Error("failed to sync user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
		return
	}

	if created {
		c.JSON(http.StatusCreated, u)
		return
	}
	c.JSON(http.StatusOK, u)
}

// --------------------------------------------------
// GET /api/my/user
// --------------------------------------------------
func (h *Handler) GetCurrentUser(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	u, err := h.service.Get(c.Request.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to fetch user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, u)
}

// --------------------------------------------------
// PUT /api/my/user (full profile overwrite)
// --------------------------------------------------
func (h *Handler) UpdateCurrentUser(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req struct {
		Name         string `json:"name"`
		AddressLine1 string `json:"addressLine1"`
		City         string `json:"city"`
		Country      string `json:"country"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if errs := validation.Run([]validation.Rule{
		{Field: "name", Message: "Name must be a non-empty string", Check: func() bool { return req.Name != "" }},
		{Field: "addressLine1", Message: "AddressLine1 must be a non-empty string", Check: func() bool { return req.AddressLine1 != "" }},
		{Field: "city", Message: "City must be a non-empty string", Check: func() bool { return req.City != "" }},
		{Field: "country", Message: "Country must be a non-empty string", Check: func() bool { return req.Country != "" }},
	}); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	u, err := h.service.UpdateProfile(
		c.Request.Context(),
		userID,
		req.Name,
		req.AddressLine1,
		req.City,
		req.Country,
	)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to update user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user"})
		return
	}

	c.JSON(http.StatusOK, u)
}
