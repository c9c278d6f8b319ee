package main

import (
	"context"
	"fmt"
	"time"

	"bounce/config"
	"bounce/controller"
	"bounce/platform"
	"bounce/service"
	"bounce/store"

	_uuid "github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CORSMiddleware ...
// CORS (Cross-Origin Resource Sharing)
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Origin, Authorization, Accept, Accept-Encoding")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
		} else {
			c.Next()
		}
	}
}

// RequestIDMiddleware ...
// Generate a unique ID and attach it to each request for future reference or use
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		uuid := _uuid.New()
		c.Writer.Header().Set("X-Request-Id", uuid.String())
		c.Set("requestId", uuid.String())
		c.Next()
	}
}

func LogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery
		if raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		clientIP := c.ClientIP()
		method := c.Request.Method
		userAgent := c.Request.UserAgent()
		requestId := c.GetString("requestId")

		logrus.Infof(
			" [%s] %d | %v | %s | %s | %s | %s ",
			requestId,
			status,
			latency,
			clientIP,
			method,
			path,
			userAgent,
		)
	}
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "dynamodb":
		client, err := platform.NewDynamoClient(context.Background(), cfg.Dynamo)
		if err != nil {
			return nil, err
		}
		return store.NewDynamo(client, cfg.Dynamo), nil
	case "mysql":
		db, err := platform.NewDB(cfg.MySQL)
		if err != nil {
			return nil, err
		}
		return store.NewSQL(db)
	case "memory":
		return store.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

func main() {
	fmt.Println("Server started...")

	//Load the .env file
	if err := godotenv.Load(".env"); err != nil {
		fmt.Println("failed to load the env file")
	}

	logger := platform.Logger

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %s", err)
	}

	st, err := newStore(cfg)
	if err != nil {
		logger.Fatalf("store init error: %s", err)
	}

	platform.InitLLMClient(cfg)
	platform.InitSlackClient(cfg)

	r := gin.Default()
	r.Use(CORSMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LogMiddleware())

	home := service.HomeConfig{
		AppURL:       cfg.SlackAppURL,
		MonthlyLink:  cfg.StripeMonthlyLink,
		AnnualLink:   cfg.StripeAnnualLink,
		LifetimeLink: cfg.StripeLifetimeLink,
	}
	messenger := service.NewSlackMessenger(platform.SlackClient)
	users := service.NewUserService(st, messenger)
	llm := service.NewOpenAICompletions(platform.LLMClient, cfg.OpenAIModel)
	chat := service.NewChatService(st, users, llm, messenger, cfg.MaxChatLength, home)
	sweep := service.NewSweepService(st, cfg.FreeTrialDays)

	dispatcher := service.NewDispatcher(64)
	defer dispatcher.Stop()

	v1 := r.Group("/v1")
	{
		slackCtrl := controller.NewSlackController(chat, cfg, dispatcher.Enqueue)
		v1.POST("/slack/events", slackCtrl.Events)

		stripeCtrl := controller.NewStripeController(users, cfg.StripeSecret)
		v1.POST("/stripe/webhook", stripeCtrl.Webhook)

		taskCtrl := controller.NewTaskController(sweep)
		v1.POST("/tasks/sweep", taskCtrl.Sweep)
		r.GET("/healthz", taskCtrl.Health)
	}

	c := cron.New()
	c.AddFunc("0 2 * * *", func() {
		if _, err := sweep.ExpireTrials(context.Background()); err != nil {
			logger.Warnf("[scheduled task] trial sweep error, %s", err)
		}
	})
	c.Start()

	r.Run(":" + cfg.Port)
}
