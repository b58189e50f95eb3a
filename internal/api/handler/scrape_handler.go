package handler

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/response"
	"Fanboard/internal/pkg/util"
	"Fanboard/internal/service"
	"errors"
	"io"

	"github.com/gin-gonic/gin"
)

type ScrapeHandler struct {
	scrapeSvc     service.ScrapeService
	defaultClubID string
}

func NewScrapeHandler(scrapeSvc service.ScrapeService, defaultClubID string) *ScrapeHandler {
	return &ScrapeHandler{scrapeSvc: scrapeSvc, defaultClubID: defaultClubID}
}

// Scrape 手动触发一次抓取，返回本次名单；已有任务运行时返回 409
func (s *ScrapeHandler) Scrape(c *gin.Context) {
	var req dto.ScrapeRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(c, service.ErrParamInvalid)
			return
		}
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	clubID := req.ClubID
	if clubID == "" {
		clubID = s.defaultClubID
	}

	result, err := s.scrapeSvc.Run(c.Request.Context(), clubID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Status == dto.ScrapeBusy {
		response.FailWithData(c, response.Conflict, service.ErrScrapeBusy.Error(), result)
		return
	}
	response.Success(c, result)
}

func (s *ScrapeHandler) Status(c *gin.Context) {
	response.Success(c, map[string]bool{"running": s.scrapeSvc.Running()})
}
