package cron

import (
	"Fanboard/internal/job"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine    *cron.Cron
	spec      string
	scrapeJob *job.ScrapeJob
}

// NewCronManager spec 为带秒的六段式表达式，按 loc 时区触发
func NewCronManager(spec string, loc *time.Location, scrapeJob *job.ScrapeJob) *Manager {
	if loc == nil {
		loc = time.UTC
	}
	return &Manager{
		engine:    cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		spec:      spec,
		scrapeJob: scrapeJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.spec, s.scrapeJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "spec", s.spec)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

// Entries 已注册任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}
