package main

import (
	"log"
	"log/slog"
	"munsite/internal/config"
	"munsite/internal/handler"
	"munsite/internal/loader"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("error loading timezone: %v", err)
	}

	src, closeSource, err := cfg.OpenSource()
	if err != nil {
		log.Fatalf("error opening data source: %v", err)
	}
	defer closeSource()

	l := loader.New(src)
	pageHandler := handler.NewPageHandler(l, loc)
	meetingHandler := handler.NewMeetingHandler(l, loc)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", pageHandler.GetHome)
	r.GET("/topics", pageHandler.GetTopics)
	r.GET("/board", pageHandler.GetBoard)
	r.GET("/topic/:slug", pageHandler.GetTopic)
	r.GET("/fragment", pageHandler.GetFragment)
	r.GET("/api/meetings/next", meetingHandler.GetNextMeeting)
	r.GET("/meetings.ics", meetingHandler.GetCalendar)
	r.POST("/api/konami", handler.PostKonami)
	r.GET("/health", pageHandler.GetHealth)

	slog.Info("serving site", "source", src.Name(), "port", cfg.Port)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
