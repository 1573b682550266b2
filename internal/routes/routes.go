package routes

import (
	"github.com/gin-gonic/gin"

	"givestream/internal/handlers"
	"givestream/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	jwtSecret []byte,
	authHandler *handlers.AuthHandler,
	verifyHandler *handlers.VerifyHandler,
	passwordHandler *handlers.PasswordHandler,
	draftHandler *handlers.DraftHandler,
	donationHandler *handlers.DonationHandler,
) *gin.Engine {

	// ---- public
	r.POST("/register", authHandler.Register)
	r.POST("/register/confirm", verifyHandler.ConfirmUser)
	r.POST("/register/resend", verifyHandler.ResendUser)
	r.POST("/login", authHandler.Login)

	r.POST("/password/forgot", passwordHandler.Forgot)
	r.POST("/password/reset", passwordHandler.Reset)

	// overlay widgets poll these
	r.GET("/donations/recent", donationHandler.Recent)
	r.GET("/donations/total", donationHandler.Total)
	r.GET("/donations/:id/receipt.pdf", donationHandler.Receipt)

	// ---- drafts: anonymous via X-Device-ID, or the signed-in user
	d := r.Group("/drafts", middleware.OptionalAuth(jwtSecret))
	{
		d.GET("", draftHandler.Load)
		d.PUT("", draftHandler.Save)
		d.DELETE("", draftHandler.Clear)
		d.DELETE("/all", draftHandler.ClearAll)
		d.POST("/transfer", draftHandler.Transfer)
	}

	// ---- protected
	admin := r.Group("/admin", middleware.AuthMiddleware(jwtSecret))
	{
		admin.POST("/donations/sync", donationHandler.Sync)
	}

	return r
}
