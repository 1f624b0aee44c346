package routes

import (
	"strings"
	"time"

	"cinepass-auth/internals/accounts"
	"cinepass-auth/internals/config"
	"cinepass-auth/internals/controllers"
	"cinepass-auth/internals/mailer"
	"cinepass-auth/internals/middleware"
	"cinepass-auth/internals/stores"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, log *logrus.Logger) *gin.Engine {
	r := gin.Default()

	appName := config.GetEnvAsStr("APP_NAME", "CinePass")
	codeExp := config.GetEnvAsInt("VERIFICATION_EXPIRATION_MINUTES", 10, true)

	emailManager := mailer.NewEmailManager(
		&mailer.SMTPConfig{
			Host:        config.GetEnvAsStr("SMTP_HOST", "smtp.gmail.com"),
			Port:        config.GetEnvAsInt("SMTP_PORT", 587, true),
			User:        config.GetEnv("SMTP_USER"),
			Password:    config.GetEnv("SMTP_PASSWORD"),
			AppName:     appName,
			CodeExp:     codeExp,
			SendTimeout: time.Duration(config.GetEnvAsInt("SMTP_TIMEOUT_SECONDS", 10, true)) * time.Second,
		},
	)

	userStore := stores.NewUserStore(db)
	codeStore := stores.NewCodeStore(db)
	accountSvc := accounts.NewService(userStore, codeStore, emailManager, time.Duration(codeExp)*time.Minute)
	accountCtrl := controllers.NewAccountController(accountSvc, log)

	allowedOrigins := strings.Split(config.GetEnvAsStr("CORS_ALLOWED_ORIGINS", "http://127.0.0.1:5500"), ",")
	r.Use(middleware.RequestID(log))
	r.Use(middleware.CORS(allowedOrigins))

	r.Static("/public", "./public")

	public := r.Group("/")
	{
		public.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "active",
				"message": appName + " API is running",
			})
		})
		public.POST("/signup", accountCtrl.Signup)
		public.POST("/verify", accountCtrl.Verify)
		public.POST("/resend-code", accountCtrl.ResendCode)
		public.POST("/signin", accountCtrl.Signin)
	}

	return r
}
