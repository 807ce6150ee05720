package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cricket-academy/internal/config"
	"cricket-academy/internal/constants"
	"cricket-academy/internal/domain"
	"cricket-academy/internal/scoring"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

const EventMatchCompleted = "match.completed"

// ResultNotifier posts completed match results to an external webhook.
// With no URL configured every call is a no-op.
type ResultNotifier struct {
	url    string
	client *fasthttp.Client
	logger zerolog.Logger
}

type ResultEvent struct {
	Event       string       `json:"event"`
	MatchID     int64        `json:"match_id"`
	AcademyID   int64        `json:"academy_id"`
	TeamAName   string       `json:"team_a_name"`
	TeamBName   string       `json:"team_b_name"`
	Venue       string       `json:"venue"`
	MatchDate   string       `json:"match_date"`
	Result      string       `json:"result"`
	TeamA       InningsTotal `json:"team_a"`
	TeamB       InningsTotal `json:"team_b"`
	CompletedAt time.Time    `json:"completed_at"`
}

type InningsTotal struct {
	Runs    int           `json:"runs"`
	Wickets int           `json:"wickets"`
	Overs   scoring.Overs `json:"overs"`
}

func NewResultNotifier(cfg *config.Config, logger zerolog.Logger) *ResultNotifier {
	n := &ResultNotifier{
		url: cfg.ResultWebhookURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         constants.WebhookTimeout,
			WriteTimeout:        constants.WebhookTimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger.With().Str("component", "result_notifier").Logger(),
	}
	if n.Enabled() {
		n.logger.Info().Msg("result webhook enabled")
	} else {
		n.logger.Debug().Msg("result webhook disabled")
	}
	return n
}

func (n *ResultNotifier) Enabled() bool {
	return n.url != ""
}

func (n *ResultNotifier) NotifyMatchCompleted(ctx context.Context, match *domain.Match) error {
	if !n.Enabled() {
		return nil
	}

	event := ResultEvent{
		Event:     EventMatchCompleted,
		MatchID:   match.ID,
		AcademyID: match.AcademyID,
		TeamAName: match.TeamAName,
		TeamBName: match.TeamBName,
		Venue:     match.Venue,
		MatchDate: match.MatchDate,
		Result:    match.Result,
		TeamA: InningsTotal{
			Runs:    match.FinalScore.TeamAScore,
			Wickets: match.FinalScore.TeamAWickets,
			Overs:   scoring.Overs(match.FinalScore.TeamABalls),
		},
		TeamB: InningsTotal{
			Runs:    match.FinalScore.TeamBScore,
			Wickets: match.FinalScore.TeamBWickets,
			Overs:   scoring.Overs(match.FinalScore.TeamBBalls),
		},
		CompletedAt: time.Now().UTC(),
	}

	if err := postJSON(ctx, n.client, n.url, event); err != nil {
		n.logger.Warn().Err(err).Int64("match_id", match.ID).Msg("result webhook failed")
		return err
	}

	n.logger.Info().Int64("match_id", match.ID).Msg("result webhook delivered")
	return nil
}

func postJSON[T any](ctx context.Context, client *fasthttp.Client, url string, payload T) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(constants.WebhookTimeout)
	}
	if err := client.DoDeadline(req, resp, deadline); err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}

	if code := resp.StatusCode(); code < fasthttp.StatusOK || code >= fasthttp.StatusMultipleChoices {
		return fmt.Errorf("webhook error: %d", code)
	}
	return nil
}
