package restaurant

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Srgrv/mern-food-ordering-app-backend/internal/validation"
)

// MaxImageSize caps uploads; the file is held in memory for the
// duration of the request only.
const MaxImageSize = 5 << 20 // 5MB

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Multipart payload parsing + validation
// --------------------------------------------------

// parseInput reads the full restaurant field set out of the multipart
// form and validates it declaratively, collecting every violation.
func parseInput(c *gin.Context) (Input, []validation.FieldError) {
	name := c.PostForm("restaurantName")
	city := c.PostForm("city")
	country := c.PostForm("country")

	priceRaw := c.PostForm("deliveryPrice")
	price, priceErr := strconv.ParseFloat(priceRaw, 64)

	etaRaw := c.PostForm("estimatedDeliveryTime")
	eta, etaErr := strconv.Atoi(etaRaw)

	cuisines := c.PostFormArray("cuisines")

	var menuItems []MenuItem
	menuErr := json.Unmarshal([]byte(c.PostForm("menuItems")), &menuItems)

	rules := []validation.Rule{
		{Field: "restaurantName", Message: "RestaurantName must be a non-empty string",
			Check: func() bool { return name != "" }},
		{Field: "city", Message: "City must be a non-empty string",
			Check: func() bool { return city != "" }},
		{Field: "country", Message: "Country must be a non-empty string",
			Check: func() bool { return country != "" }},
		{Field: "deliveryPrice", Message: "DeliveryPrice must be a positive number",
			Check: func() bool { return priceErr == nil && price >= 0 }},
		{Field: "estimatedDeliveryTime", Message: "EstimatedDeliveryTime must be a positive integer",
			Check: func() bool { return etaErr == nil && eta >= 0 }},
		{Field: "cuisines", Message: "Cuisines must be a non-empty array",
			Check: func() bool {
				if len(cuisines) == 0 {
					return false
				}
				for _, cuisine := range cuisines {
					if strings.TrimSpace(cuisine) == "" {
						return false
					}
				}
				return true
			}},
		{Field: "menuItems", Message: "MenuItems must be an array",
			Check: func() bool { return menuErr == nil }},
	}

	for i := range menuItems {
		item := menuItems[i]
		rules = append(rules,
			validation.Rule{
				Field:   fmt.Sprintf("menuItems[%d].name", i),
				Message: "Menu item name must be a non-empty string",
				Check:   func() bool { return item.Name != "" },
			},
			validation.Rule{
				Field:   fmt.Sprintf("menuItems[%d].price", i),
				Message: "Menu item price must be a positive number",
				Check:   func() bool { return item.Price >= 0 },
			},
		)
	}

	if errs := validation.Run(rules); errs != nil {
		return Input{}, errs
	}

	return Input{
		RestaurantName:        name,
		City:                  city,
		Country:               country,
		DeliveryPrice:         price,
		EstimatedDeliveryTime: eta,
		Cuisines:              cuisines,
		MenuItems:             menuItems,
	}, nil
}

// parseImage extracts the single imageFile field. A missing file is an
// error only when required; an oversized one always is.
func parseImage(c *gin.Context, required bool) (*Image, func(), []validation.FieldError) {
	fileHeader, err := c.FormFile("imageFile")
	if err != nil {
		if !required {
			return nil, func() {}, nil
		}
		return nil, nil, []validation.FieldError{
			{Field: "imageFile", Message: "ImageFile is required"},
		}
	}

	if fileHeader.Size > MaxImageSize {
		return nil, nil, []validation.FieldError{
			{Field: "imageFile", Message: "Image must be smaller than 5MB"},
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, []validation.FieldError{
			{Field: "imageFile", Message: "ImageFile could not be read"},
		}
	}

	image := &Image{
		ContentType: fileHeader.Header.Get("Content-Type"),
		Body:        file,
	}
	return image, func() { file.Close() }, nil
}

// --------------------------------------------------
// GET /api/my/restaurant
// --------------------------------------------------
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	userID := c.GetString("userID")

	restaurant, err := h.service.GetByOwner(c.Request.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to fetch restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching restaurant"})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// --------------------------------------------------
// POST /api/my/restaurant
// --------------------------------------------------
func (h *Handler) CreateMyRestaurant(c *gin.Context) {
	userID := c.GetString("userID")

	in, errs := parseInput(c)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	image, closeImage, errs := parseImage(c, true)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}
	defer closeImage()

	restaurant, err := h.service.Create(c.Request.Context(), userID, in, image)
	if errors.Is(err, ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"message": "User restaurant already exists"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to create restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	c.JSON(http.StatusCreated, restaurant)
}

// --------------------------------------------------
// PUT /api/my/restaurant
// --------------------------------------------------
func (h *Handler) UpdateMyRestaurant(c *gin.Context) {
	userID := c.GetString("userID")

	in, errs := parseInput(c)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	image, closeImage, errs := parseImage(c, false)
	if errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}
	defer closeImage()

	restaurant, err := h.service.Update(c.Request.Context(), userID, in, image)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to update restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// --------------------------------------------------
// GET /api/restaurant/:restaurantId (public)
// --------------------------------------------------
func (h *Handler) GetRestaurant(c *gin.Context) {
	restaurantID := strings.TrimSpace(c.Param("restaurantId"))
	if restaurantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []validation.FieldError{
			{Field: "restaurantId", Message: "RestaurantId must be a non-empty string"},
		}})
		return
	}

	restaurant, err := h.service.GetByID(c.Request.Context(), restaurantID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Restaurant not found"})
		return
	}
	if err != nil {
		logrus.WithError(err).Error("failed to fetch restaurant")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// --------------------------------------------------
// GET /api/restaurant/search/:city (public)
// --------------------------------------------------
func (h *Handler) SearchRestaurants(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"errors": []validation.FieldError{
			{Field: "city", Message: "City must be a non-empty string"},
		}})
		return
	}

	// Missing or non-numeric page falls back to 1, never a negative skip.
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}

	params := NormalizeParams(
		city,
		c.Query("searchQuery"),
		c.Query("selectedCuisins"),
		c.Query("sortOption"),
		page,
	)

	result, err := h.service.Search(c.Request.Context(), params)
	if errors.Is(err, ErrCityNotServed) {
		c.JSON(http.StatusNotFound, result)
		return
	}
	if err != nil {
		logrus.WithError(err).Error("search failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	c.JSON(http.StatusOK, result)
}
