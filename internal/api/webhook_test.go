package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cricket-academy/internal/config"
	"cricket-academy/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedMatch() *domain.Match {
	return &domain.Match{
		ID:        12,
		AcademyID: 3,
		TeamAName: "Lions",
		TeamBName: "Tigers",
		Status:    domain.MatchCompleted,
		Result:    "Lions won by 10 runs",
		FinalScore: domain.FinalScore{
			TeamAScore:   160,
			TeamAWickets: 7,
			TeamABalls:   120,
			TeamBScore:   150,
			TeamBWickets: 9,
			TeamBBalls:   118,
		},
	}
}

func TestResultNotifier_Disabled(t *testing.T) {
	n := NewResultNotifier(&config.Config{}, zerolog.Nop())
	assert.False(t, n.Enabled())
	assert.NoError(t, n.NotifyMatchCompleted(context.Background(), completedMatch()))
}

func TestResultNotifier_PostsEvent(t *testing.T) {
	received := make(chan map[string]any, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		var payload map[string]any
		assert.NoError(t, json.Unmarshal(body, &payload))
		received <- payload
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewResultNotifier(&config.Config{ResultWebhookURL: srv.URL}, zerolog.Nop())
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, n.NotifyMatchCompleted(ctx, completedMatch()))

	payload := <-received
	assert.Equal(t, EventMatchCompleted, payload["event"])
	assert.Equal(t, float64(12), payload["match_id"])
	assert.Equal(t, "Lions won by 10 runs", payload["result"])
	teamB := payload["team_b"].(map[string]any)
	assert.Equal(t, "19.4", teamB["overs"])
	assert.Equal(t, float64(9), teamB["wickets"])
}

func TestResultNotifier_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewResultNotifier(&config.Config{ResultWebhookURL: srv.URL}, zerolog.Nop())
	err := n.NotifyMatchCompleted(context.Background(), completedMatch())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
