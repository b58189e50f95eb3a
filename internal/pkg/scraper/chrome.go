package scraper

import (
	"Fanboard/internal/api/config"
	"Fanboard/internal/api/dto"
	"context"
	"fmt"
	log "log/slog"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
)

// RosterSource 外部名单来源
type RosterSource interface {
	FetchRoster(ctx context.Context, clubID string) ([]*dto.RawMemberRow, error)
}

// ChromeRosterSource 使用无头 Chrome 渲染俱乐部页面后解析成员表格
type ChromeRosterSource struct {
	baseURL    string
	headless   bool
	userAgent  string
	proxyURL   string
	timeout    time.Duration
	renderWait time.Duration
}

func NewChromeRosterSource(cfg config.ScraperConfig) *ChromeRosterSource {
	return &ChromeRosterSource{
		baseURL:    cfg.BaseURL,
		headless:   cfg.Headless,
		userAgent:  cfg.UserAgent,
		proxyURL:   cfg.ProxyURL,
		timeout:    time.Duration(cfg.Timeout) * time.Second,
		renderWait: time.Duration(cfg.RenderWait) * time.Second,
	}
}

// ClubURL 俱乐部主页地址
func (s *ChromeRosterSource) ClubURL(clubID string) string {
	return fmt.Sprintf("%s/club_profile?circle_id=%s", s.baseURL, url.QueryEscape(clubID))
}

// FetchRoster 每次抓取启动独立的浏览器进程，结束后释放
func (s *ChromeRosterSource) FetchRoster(ctx context.Context, clubID string) ([]*dto.RawMemberRow, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", s.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	if s.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.userAgent))
	}
	if s.proxyURL != "" {
		opts = append(opts, chromedp.ProxyServer(s.proxyURL))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	if s.timeout > 0 {
		var timeoutCancel context.CancelFunc
		browserCtx, timeoutCancel = context.WithTimeout(browserCtx, s.timeout)
		defer timeoutCancel()
	}

	target := s.ClubURL(clubID)
	log.InfoContext(ctx, "navigating to club page", "url", target)

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(target),
		chromedp.WaitVisible(MemberRowSelector, chromedp.ByQuery),
		chromedp.Sleep(s.renderWait),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render club page: %w", err)
	}

	rows, err := ParseRosterHTML(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse club page: %w", err)
	}

	log.InfoContext(ctx, "club page parsed", "html_size", len(html), "members", len(rows))
	return rows, nil
}
