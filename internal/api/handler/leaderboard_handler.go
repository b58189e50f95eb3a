package handler

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/response"
	"Fanboard/internal/pkg/util"
	"Fanboard/internal/service"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardSvc service.LeaderboardService
}

func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

func (s *LeaderboardHandler) Leaderboard(c *gin.Context) {
	var query dto.LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	board, err := s.leaderboardSvc.Leaderboard(c.Request.Context(), query.Period, query.Since)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, board)
}

func (s *LeaderboardHandler) ListMembers(c *gin.Context) {
	var query dto.MembersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	members, err := s.leaderboardSvc.ListMembers(c.Request.Context(), query.Active)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, members)
}

func (s *LeaderboardHandler) Lookup(c *gin.Context) {
	var query dto.LookupQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return
	}

	stats, err := s.leaderboardSvc.Lookup(c.Request.Context(), query.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func (s *LeaderboardHandler) LatestReport(c *gin.Context) {
	r, err := s.leaderboardSvc.LatestReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, r)
}

func (s *LeaderboardHandler) History(c *gin.Context) {
	artifact, err := s.leaderboardSvc.History(c.Request.Context(), c.Param("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, artifact)
}
