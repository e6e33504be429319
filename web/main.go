package main

import (
	"context"
	"encoding/base64"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"staffdesk.com/staffdesk/core"
	"staffdesk.com/staffdesk/infrastructure/communication"
	"staffdesk.com/staffdesk/infrastructure/devops"
	"staffdesk.com/staffdesk/web/handlers"
	"staffdesk.com/staffdesk/web/middlewares"
)

func main() {
	_ = godotenv.Load()

	cfg, err := devops.LoadAppConfig(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	jwtSecret, err := base64.StdEncoding.DecodeString(cfg.SigningSecret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	dm, err := core.New(cfg.DSN, 10, core.LogLevelWarn)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	if err := core.Migrate(dm.DB); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	notifier := communication.ConnectSlack()
	mailer := communication.ConnectMailer()

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/api")

	handlers.RegisterAuth(api.Group("/auth"), &handlers.AuthEndpoint{
		DB:        dm.DB,
		Secret:    jwtSecret,
		Mailer:    mailer,
		Notifier:  notifier,
		ClientURL: cfg.ClientURL,
	})

	admin := api.Group("/admin")
	admin.Use(middlewares.Authentication(jwtSecret), middlewares.RequireRole(core.RoleAdmin))
	handlers.RegisterAdmin(admin, &handlers.AdminEndpoint{
		DB:            dm.DB,
		Mailer:        mailer,
		Notifier:      notifier,
		PayslipBucket: cfg.PayslipBucket,
	})

	employee := api.Group("/employee")
	employee.Use(middlewares.Authentication(jwtSecret))
	handlers.RegisterEmployee(employee, &handlers.EmployeeEndpoint{
		DB:            dm.DB,
		PayslipBucket: cfg.PayslipBucket,
	})

	r.Run("0.0.0.0:" + cfg.Port)
}
