// Package app wires configuration, storage, providers, and the sync queue
// into one application container.
package app

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/anupamd/studiq/internal/config"
	"github.com/anupamd/studiq/internal/identity"
	"github.com/anupamd/studiq/internal/llm"
	"github.com/anupamd/studiq/internal/plan"
	"github.com/anupamd/studiq/internal/quiz"
	"github.com/anupamd/studiq/internal/recommend"
	"github.com/anupamd/studiq/internal/store"
	"github.com/anupamd/studiq/internal/syncq"
	"github.com/anupamd/studiq/internal/videosearch"
)

// App holds the wired application.
type App struct {
	Config   config.Config
	Log      *zap.Logger
	Store    *store.Store
	Sessions identity.Sessions
	Queue    syncq.Queue

	Aggregator *recommend.Aggregator
	Planner    *plan.Generator
	Reconciler *syncq.Reconciler
}

// New builds the application from configuration. The AI and video tiers are
// wired only when their backends are configured; everything else works
// without them.
func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}

	var llmProvider llm.Provider
	if cfg.LLM.Configured() {
		p, err := llm.NewProvider(ctx, cfg.LLM, log)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("llm provider: %w", err)
		}
		llmProvider = p
	}

	rule := recommend.NewRuleBasedProvider()

	var aiProvider recommend.Provider
	if llmProvider != nil {
		aiProvider = recommend.NewAIProvider(llmProvider, recommend.DefaultAIConfig())
	}

	var videoProvider recommend.Provider
	if cfg.YouTubeAPIKey != "" {
		client := videosearch.NewClient(cfg.YouTubeAPIKey, log)
		videoProvider = recommend.NewVideoProvider(client, cfg.VideoLimit)
	}

	queue := syncq.NewStoreQueue(st.SyncItems())

	return &App{
		Config:     cfg,
		Log:        log,
		Store:      st,
		Sessions:   identity.Static{UserID: cfg.UserID},
		Queue:      queue,
		Aggregator: recommend.NewAggregator(rule, aiProvider, videoProvider, st.Catalog(), log),
		Planner:    plan.NewGenerator(llmProvider, rule, plan.DefaultConfig(), log),
		Reconciler: syncq.NewReconciler(queue, syncq.StoreHandlers(st), cfg.Sync, log),
	}, nil
}

// Close releases held resources.
func (a *App) Close() error {
	return a.Store.Close()
}

// Submission is the outcome of SubmitQuiz.
type Submission struct {
	Result  *quiz.Result
	Attempt int
}

// SubmitQuiz grades the answers against the quiz's key, persists the
// submission and result in one transaction, and queues an analytics event.
// Attempt numbering continues from the user's previous attempts.
func (a *App) SubmitQuiz(ctx context.Context, quizID string, answers []string) (*Submission, error) {
	userID, err := a.Sessions.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}

	q, err := a.Store.Quizzes().Find(ctx, quizID)
	if err != nil {
		return nil, err
	}

	result, err := quiz.Score(q.AnswerKey(), answers)
	if err != nil {
		return nil, err
	}

	attempt, err := a.nextAttempt(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}

	sub := &store.Submission{UserID: userID, QuizID: quizID, Attempt: attempt}
	sub.SetAnswers(answers)
	res := &store.Result{Score: result.Score, Total: result.TotalQuestions}
	res.SetIndexes(result.CorrectIndexes, result.IncorrectIndexes)
	if err := a.Store.Submissions().CreateWithResult(ctx, sub, res); err != nil {
		return nil, err
	}

	// Queued, not written directly: analytics ride the offline queue.
	event, err := json.Marshal(map[string]any{
		"quizId":  quizID,
		"attempt": attempt,
		"score":   result.Score,
		"total":   result.TotalQuestions,
	})
	if err == nil {
		_, qerr := syncq.EnqueuePayload(ctx, a.Queue, userID, syncq.DataAnalytics,
			syncq.AnalyticsPayload{Kind: "quiz_completed", Data: event})
		if qerr != nil {
			a.Log.Warn("analytics event not queued",
				zap.String("quiz_id", quizID), zap.Error(qerr))
		}
	}

	return &Submission{Result: result, Attempt: attempt}, nil
}

// Recommend runs the recommendation pipeline for the current user and
// applies the configured result cap.
func (a *App) Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error) {
	if _, err := a.Sessions.CurrentUserID(ctx); err != nil {
		return nil, err
	}

	resp, err := a.Aggregator.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}
	if limit := a.Config.ResultCap; limit > 0 && len(resp.Items) > limit {
		resp.Items = resp.Items[:limit]
	}
	return resp, nil
}

// Sync reconciles the current user's offline queue.
func (a *App) Sync(ctx context.Context) (*syncq.Report, error) {
	userID, err := a.Sessions.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return a.Reconciler.Run(ctx, userID)
}

// QueueItems lists the current user's sync queue for inspection.
func (a *App) QueueItems(ctx context.Context) ([]syncq.Item, error) {
	userID, err := a.Sessions.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return a.Queue.All(ctx, userID)
}

// Stats aggregates the current user's per-course performance.
func (a *App) Stats(ctx context.Context) ([]store.CourseStats, error) {
	userID, err := a.Sessions.CurrentUserID(ctx)
	if err != nil {
		return nil, err
	}
	return a.Store.StatsForUser(ctx, userID)
}

// PlanSignal resolves the performance signal for a quiz from the user's
// best stored attempt.
func (a *App) PlanSignal(ctx context.Context, quizID string) (recommend.Signal, error) {
	userID, err := a.Sessions.CurrentUserID(ctx)
	if err != nil {
		return recommend.Signal{}, err
	}

	meta, err := a.Store.Catalog().QuizMeta(ctx, quizID)
	if err != nil {
		return recommend.Signal{}, err
	}

	sig := recommend.Signal{
		QuizID:          meta.ID,
		CourseID:        meta.CourseID,
		ProgramID:       meta.ProgramID,
		QuizTitle:       meta.Title,
		QuizDescription: meta.Description,
		QuizTags:        meta.Tags,
		CourseTitle:     meta.CourseTitle,
	}

	subs, err := a.Store.Submissions().ForUser(ctx, userID, 0)
	if err != nil {
		return recommend.Signal{}, err
	}
	for _, sub := range subs {
		if sub.QuizID != quizID || sub.Result == nil {
			continue
		}
		if sig.Total == 0 || pct(sub.Result.Score, sub.Result.Total) > pct(sig.Score, sig.Total) {
			sig.Score = sub.Result.Score
			sig.Total = sub.Result.Total
		}
	}
	if sig.Total == 0 {
		return recommend.Signal{}, fmt.Errorf("no graded attempt for quiz %s", quizID)
	}
	return sig, nil
}

func (a *App) nextAttempt(ctx context.Context, userID, quizID string) (int, error) {
	subs, err := a.Store.Submissions().ForUser(ctx, userID, 0)
	if err != nil {
		return 0, err
	}
	max := 0
	for _, sub := range subs {
		if sub.QuizID == quizID && sub.Attempt > max {
			max = sub.Attempt
		}
	}
	return max + 1, nil
}

func pct(score, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(score) / float64(total)
}
