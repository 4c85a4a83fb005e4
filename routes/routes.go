package routes

import (
	"net/http"

	"github.com/Ajmalajjuca/Bite-check/controllers"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth     *controllers.AuthController
	User     *controllers.UserController
	Detect   *controllers.DetectController
	Calories *controllers.CalorieController
	Goals    *controllers.GoalController
	Realtime *controllers.RealtimeController
}

func SetupRouter(h *Handlers, authMW gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 10 << 20

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.Auth.SignUp)
		auth.POST("/sign-up/verify", h.Auth.VerifySignUp)
		auth.POST("/sign-in", h.Auth.SignIn)
		auth.POST("/sign-out", authMW, h.Auth.SignOut)
	}

	// Protected routes
	api := r.Group("/")
	api.Use(authMW)
	{
		api.GET("/user/profile", h.User.GetProfile)
		api.PUT("/user/profile", h.User.UpdateProfile)
		api.PUT("/user/profile/image", h.User.UpdateProfileImage)

		api.POST("/detect", h.Detect.Detect)

		api.POST("/calories", h.Calories.AddCalories)
		api.GET("/calories", h.Calories.GetByDate)
		api.GET("/calories/today", h.Calories.GetToday)
		api.GET("/calories/history", h.Calories.GetHistory)
		api.GET("/calories/month", h.Calories.GetMonth)

		api.GET("/goals", h.Goals.GetGoal)
		api.PUT("/goals", h.Goals.UpdateGoal)

		api.GET("/realtime/ws", h.Realtime.CaloriesWS)
	}

	return r
}
