package handler

import (
	"log/slog"
	"munsite/internal/konami"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PostKonami replays a batch of key presses through a fresh detector.
func PostKonami(c *gin.Context) {
	var req KonamiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("invalid konami request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	d := konami.New(konami.Sequence)
	fired := false
	for _, key := range req.Keys {
		if d.Feed(key) {
			fired = true
		}
	}

	if fired {
		slog.Info("konami sequence entered")
	}
	c.JSON(http.StatusOK, KonamiResponse{Fired: fired, Position: d.Position()})
}
