package notify

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/report"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *dto.DailyReport {
	return report.BuildDailyReport("Uchoom", []*dto.MemberRecord{
		{ID: "a", Name: "Alice", Gain: 1_440_104},
		{ID: "b", Name: "Bob", Gain: 0},
	}, 3_000_000, time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC))
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(sampleReport())
	require.Len(t, payload.Embeds, 1)

	e := payload.Embeds[0]
	assert.Equal(t, "📊 Daily Check: Uchoom", e.Title)
	assert.Equal(t, "**Target:** 428,571/day (3,000,000/week)", e.Description)
	assert.Equal(t, "2024-06-01T08:00:00Z", e.Timestamp)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "Club Total", e.Fields[0].Name)
	assert.Equal(t, "📈 **+1,440,104** fans today", e.Fields[0].Value)
	assert.Equal(t, "Member Performance", e.Fields[1].Name)
	assert.Equal(t, report.Legend, e.Footer.Text)
}

func TestNotifyReport_PostsWebhook(t *testing.T) {
	var got WebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewDiscordNotifier(srv.URL)
	require.NoError(t, n.NotifyReport(context.Background(), sampleReport()))
	require.Len(t, got.Embeds, 1)
	assert.Len(t, got.Embeds[0].Fields, 2)
}

func TestNotifyReport_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	err := NewDiscordNotifier(srv.URL).NotifyReport(context.Background(), sampleReport())
	assert.Error(t, err)
}

func TestNotifyReport_NoURLIsNoop(t *testing.T) {
	assert.NoError(t, NewDiscordNotifier("").NotifyReport(context.Background(), sampleReport()))
}
