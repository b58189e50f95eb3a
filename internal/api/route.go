package api

import (
	"Fanboard/internal/api/middleware"
	"Fanboard/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		scrapeGroup := apiGroup.Group("/scrape")
		{
			scrapeGroup.POST("", group.ScrapeHandler.Scrape)
			scrapeGroup.GET("/status", group.ScrapeHandler.Status)
		}

		apiGroup.GET("/leaderboard", group.LeaderboardHandler.Leaderboard)

		memberGroup := apiGroup.Group("/members")
		{
			memberGroup.GET("", group.LeaderboardHandler.ListMembers)
			memberGroup.GET("/lookup", group.LeaderboardHandler.Lookup)
		}

		apiGroup.GET("/report/latest", group.LeaderboardHandler.LatestReport)
		apiGroup.GET("/history/:date", group.LeaderboardHandler.History)
	}

	return r
}
