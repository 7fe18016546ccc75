package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Srgrv/mern-food-ordering-app-backend/internal/middleware"
	"github.com/Srgrv/mern-food-ordering-app-backend/internal/restaurant"
	"github.com/Srgrv/mern-food-ordering-app-backend/internal/user"
)

// New wires every route. Owner-scoped groups run the credential gate
// first, then identity resolution, then the handler.
func New(
	userHandler *user.Handler,
	restaurantHandler *restaurant.Handler,
	userRepo user.Repository,
) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = restaurant.MaxImageSize

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "health OK!"})
	})

	gate := middleware.JWTCheck()
	identity := middleware.IdentityParse(userRepo)

	myUser := r.Group("/api/my/user", gate)
	{
		// Profile sync runs before an internal user exists, so it only
		// passes the gate; the other routes resolve identity too.
		myUser.POST("", userHandler.CreateCurrentUser)
		myUser.GET("", identity, userHandler.GetCurrentUser)
		myUser.PUT("", identity, userHandler.UpdateCurrentUser)
	}

	myRestaurant := r.Group("/api/my/restaurant", gate, identity)
	{
		myRestaurant.GET("", restaurantHandler.GetMyRestaurant)
		myRestaurant.POST("", restaurantHandler.CreateMyRestaurant)
		myRestaurant.PUT("", restaurantHandler.UpdateMyRestaurant)
	}

	public := r.Group("/api/restaurant")
	{
		public.GET("/:restaurantId", restaurantHandler.GetRestaurant)
		public.GET("/search/:city", restaurantHandler.SearchRestaurants)
	}

	return r
}
