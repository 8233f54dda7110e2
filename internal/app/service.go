// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mirzakhani/gamerank/internal/adapters/catalog"
	jobqueue "github.com/mirzakhani/gamerank/internal/adapters/mq/queue"
	workerpool "github.com/mirzakhani/gamerank/internal/adapters/mq/worker"
	repository "github.com/mirzakhani/gamerank/internal/adapters/repository"
	"github.com/mirzakhani/gamerank/internal/adapters/sessions"
	"github.com/mirzakhani/gamerank/internal/adapters/social"
	"github.com/mirzakhani/gamerank/internal/domain/comparison"
	"github.com/mirzakhani/gamerank/internal/domain/model"
	"github.com/mirzakhani/gamerank/internal/domain/predict"
	"github.com/mirzakhani/gamerank/internal/domain/rankorder"
	"github.com/mirzakhani/gamerank/internal/domain/tastematch"
	"github.com/mirzakhani/gamerank/internal/domain/types"
	"github.com/mirzakhani/gamerank/pkg/logger"
	"github.com/mirzakhani/gamerank/pkg/metrics"
)

// Service implements the API dependencies for the ranking system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	catalog  catalog.Catalog
	social   social.Graph
	registry sessions.Registry
	jobQueue jobqueue.Queue
	engine   *predict.Engine
	pool     *workerpool.Pool

	// Batch results, keyed by job id
	batches map[string]model.BatchResult

	// Configuration
	workerCount     int
	queueSize       int
	sessionCapacity int
	maxComparisons  int
	minRanked       int
	minTasteMatch   float64

	// State
	started   bool
	startedAt time.Time
	stopCh    chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of prediction worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the prediction job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithSessionCapacity bounds the number of concurrent comparison sessions.
func WithSessionCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.sessionCapacity = capacity
		}
	}
}

// WithMaxComparisons sets the per-session comparison budget.
func WithMaxComparisons(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxComparisons = n
		}
	}
}

// WithMinRankedForPredict sets the ranked-corpus floor for predictions.
func WithMinRankedForPredict(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minRanked = n
		}
	}
}

// WithMinTasteMatch sets the taste-match floor for the friend tier.
func WithMinTasteMatch(min float64) Option {
	return func(s *Service) {
		if min >= 0 {
			s.minTasteMatch = min
		}
	}
}

// WithStore injects a pre-built repository store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCatalog injects a pre-seeded catalog.
func WithCatalog(cat catalog.Catalog) Option {
	return func(s *Service) {
		if cat != nil {
			s.catalog = cat
		}
	}
}

// WithSocialGraph injects a pre-built friendship graph.
func WithSocialGraph(graph social.Graph) Option {
	return func(s *Service) {
		if graph != nil {
			s.social = graph
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:     runtime.NumCPU() * 2,
		queueSize:       10000,
		sessionCapacity: 10000,
		maxComparisons:  comparison.DefaultMaxComparisons,
		minRanked:       predict.DefaultMinRanked,
		minTasteMatch:   predict.DefaultMinTasteMatch,
		batches:         make(map[string]model.BatchResult),
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting ranking service...")

	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	if s.catalog == nil {
		s.catalog = catalog.NewMemCatalog()
	}
	if s.social == nil {
		s.social = social.NewMemGraph()
	}
	s.registry = sessions.NewInMemoryRegistry(
		sessions.WithCapacity(s.sessionCapacity),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)
	s.engine = predict.New(
		predict.WithMinRanked(s.minRanked),
		predict.WithMinTasteMatch(s.minTasteMatch),
	)

	// The service is both the predictor and the result sink.
	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s, s)
	s.pool.Start(ctx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "ranking service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("sessionCapacity", s.sessionCapacity),
		logger.Int("maxComparisons", s.maxComparisons),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping ranking service...")

	if s.jobQueue != nil {
		_ = s.jobQueue.Close()
	}
	if s.pool != nil {
		s.pool.Stop()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "ranking service stopped")
}

// AddItem puts an item into the owner's unranked backlog.
func (s *Service) AddItem(ctx context.Context, ownerID, itemID string) (types.BacklogEntry, error) {
	item, err := s.store.AddUnranked(ctx, ownerID, itemID)
	if err != nil {
		return types.BacklogEntry{}, fmt.Errorf("add item: %w", err)
	}
	return types.BacklogEntry{
		ItemID:  item.ItemID,
		Title:   s.title(ctx, item.ItemID),
		AddedAt: item.AddedAt.UTC().Format(time.RFC3339),
	}, nil
}

// Ranking returns the owner's ranked list, best first, up to limit rows.
func (s *Service) Ranking(ctx context.Context, ownerID string, limit int) ([]types.Entry, error) {
	ranked, err := s.store.RankedList(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	entries := make([]types.Entry, 0, len(ranked))
	for _, item := range ranked {
		entries = append(entries, types.Entry{
			Position: item.Position,
			ItemID:   item.ItemID,
			Title:    s.title(ctx, item.ItemID),
		})
	}
	return entries, nil
}

// Backlog returns the owner's unranked items in arrival order.
func (s *Service) Backlog(ctx context.Context, ownerID string) ([]types.BacklogEntry, error) {
	items, err := s.store.UnrankedList(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("backlog: %w", err)
	}
	entries := make([]types.BacklogEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, types.BacklogEntry{
			ItemID:  item.ItemID,
			Title:   s.title(ctx, item.ItemID),
			AddedAt: item.AddedAt.UTC().Format(time.RFC3339),
		})
	}
	return entries, nil
}

// Move shifts a ranked item to a new position. The whole move is applied
// as one atomic batch of shifts.
func (s *Service) Move(ctx context.Context, ownerID, itemID string, position int) error {
	ranked, err := s.store.RankedList(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	before := rankorder.FromRanked(ranked)
	oldPos, err := before.PositionOf(itemID)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	after, err := before.MoveTo(oldPos, position)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	shifts := rankorder.Shifts(before, after)
	if len(shifts) == 0 {
		return nil
	}
	if err := s.store.ApplyShifts(ctx, ownerID, shifts); err != nil {
		return fmt.Errorf("move: %w", err)
	}
	return nil
}

// Unrank sends a ranked item back to the backlog, compacting positions.
func (s *Service) Unrank(ctx context.Context, ownerID, itemID string) error {
	if err := s.store.Unrank(ctx, ownerID, itemID); err != nil {
		return fmt.Errorf("unrank: %w", err)
	}
	return nil
}

// FirstPair ranks an owner's first two items in one step: the winner at
// position 1 and the loser at position 2. Both must be in the backlog.
func (s *Service) FirstPair(ctx context.Context, ownerID, winnerID, loserID string) error {
	if s.store.Count(ctx, ownerID) != 0 {
		return fmt.Errorf("first pair: list is not empty: %w", rankorder.ErrInvalidPosition)
	}
	if err := s.store.Place(ctx, ownerID, winnerID, 1); err != nil {
		return fmt.Errorf("first pair: %w", err)
	}
	if err := s.store.Place(ctx, ownerID, loserID, 2); err != nil {
		return fmt.Errorf("first pair: %w", err)
	}
	return nil
}

// StartSession opens a comparison session that places a backlog item into
// the owner's ranked list. An empty ranked list resolves immediately.
func (s *Service) StartSession(ctx context.Context, ownerID, itemID string) (types.Session, error) {
	backlog, err := s.store.UnrankedList(ctx, ownerID)
	if err != nil {
		return types.Session{}, fmt.Errorf("start session: %w", err)
	}
	inBacklog := false
	for _, item := range backlog {
		if item.ItemID == itemID {
			inBacklog = true
			break
		}
	}
	if !inBacklog {
		return types.Session{}, fmt.Errorf("start session: item %q: %w", itemID, repository.ErrNotFound)
	}

	ranked, err := s.store.RankedList(ctx, ownerID)
	if err != nil {
		return types.Session{}, fmt.Errorf("start session: %w", err)
	}
	order := rankorder.FromRanked(ranked)

	sess := comparison.New(itemID, order.Items(),
		comparison.WithMaxComparisons(s.maxComparisons),
	)

	// No opponents: the session resolves on the spot.
	if sess.State() == comparison.StateResolved {
		return s.finishSession(ctx, ownerID, sess, false)
	}

	if _, err := s.registry.Begin(ctx, ownerID, sess); err != nil {
		return types.Session{}, fmt.Errorf("start session: %w", err)
	}
	return s.sessionView(ownerID, sess), nil
}

// SessionState reports the owner's in-flight session.
func (s *Service) SessionState(ctx context.Context, ownerID string) (types.Session, error) {
	var view types.Session
	err := s.registry.Update(ctx, ownerID, func(sess *comparison.Session) error {
		view = s.sessionView(ownerID, sess)
		return nil
	})
	if err != nil {
		return types.Session{}, fmt.Errorf("session state: %w", err)
	}
	return view, nil
}

// ApplyChoice answers the current comparison. When the session resolves,
// the item is placed and the session ends.
func (s *Service) ApplyChoice(ctx context.Context, ownerID, winner string) (types.Session, error) {
	var choice comparison.Choice
	switch winner {
	case "new":
		choice = comparison.ChoiceNew
	case "opponent":
		choice = comparison.ChoiceOpponent
	default:
		return types.Session{}, fmt.Errorf("apply choice: %q: %w", winner, comparison.ErrUnknownChoice)
	}

	var view types.Session
	err := s.registry.Update(ctx, ownerID, func(sess *comparison.Session) error {
		if err := sess.Apply(choice); err != nil {
			return err
		}
		metrics.RecordComparison()

		if sess.State() == comparison.StateResolved {
			resolved, err := s.finishSession(ctx, ownerID, sess, true)
			if err != nil {
				return err
			}
			view = resolved
			return nil
		}
		view = s.sessionView(ownerID, sess)
		return nil
	})
	if err != nil {
		return types.Session{}, fmt.Errorf("apply choice: %w", err)
	}
	return view, nil
}

// UndoChoice takes back the most recent answer, restoring the previous
// comparison.
func (s *Service) UndoChoice(ctx context.Context, ownerID string) (types.Session, error) {
	var view types.Session
	err := s.registry.Update(ctx, ownerID, func(sess *comparison.Session) error {
		if err := sess.Undo(); err != nil {
			return err
		}
		metrics.RecordUndo()
		view = s.sessionView(ownerID, sess)
		return nil
	})
	if err != nil {
		return types.Session{}, fmt.Errorf("undo choice: %w", err)
	}
	return view, nil
}

// CancelSession discards the owner's in-flight session without touching
// the ranked list.
func (s *Service) CancelSession(ctx context.Context, ownerID string) error {
	err := s.registry.Update(ctx, ownerID, func(sess *comparison.Session) error {
		sess.Cancel()
		return s.registry.End(ctx, ownerID)
	})
	if err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}
	return nil
}

// finishSession places the resolved item and, when registered, ends the
// session.
func (s *Service) finishSession(ctx context.Context, ownerID string, sess *comparison.Session, registered bool) (types.Session, error) {
	position, err := sess.Position()
	if err != nil {
		return types.Session{}, fmt.Errorf("finish session: %w", err)
	}
	if err := s.store.Place(ctx, ownerID, sess.ItemID(), position); err != nil {
		return types.Session{}, fmt.Errorf("finish session: %w", err)
	}
	if registered {
		if err := s.registry.End(ctx, ownerID); err != nil {
			return types.Session{}, fmt.Errorf("finish session: %w", err)
		}
	}
	return s.sessionView(ownerID, sess), nil
}

// sessionView projects a session into its API shape.
func (s *Service) sessionView(ownerID string, sess *comparison.Session) types.Session {
	view := types.Session{
		OwnerID:     ownerID,
		ItemID:      sess.ItemID(),
		State:       sess.State().String(),
		Comparisons: sess.Comparisons(),
		CanUndo:     sess.CanUndo(),
	}
	if opponent, err := sess.Opponent(); err == nil {
		view.Opponent = opponent
	}
	if position, err := sess.Position(); err == nil {
		view.Position = position
	}
	return view
}

// TasteMatch scores ranking similarity between an owner and a friend.
func (s *Service) TasteMatch(ctx context.Context, ownerID, friendID string) (types.MatchScore, error) {
	friends, err := s.social.AreFriends(ctx, ownerID, friendID)
	if err != nil {
		return types.MatchScore{}, fmt.Errorf("taste match: %w", err)
	}
	if !friends {
		return types.MatchScore{}, fmt.Errorf("taste match: %s and %s: %w", ownerID, friendID, ErrNotFriends)
	}

	mine, err := s.matchEntries(ctx, ownerID)
	if err != nil {
		return types.MatchScore{}, fmt.Errorf("taste match: %w", err)
	}
	theirs, err := s.matchEntries(ctx, friendID)
	if err != nil {
		return types.MatchScore{}, fmt.Errorf("taste match: %w", err)
	}

	metrics.RecordTasteMatchComputed()
	return types.MatchScore{
		OwnerID:  ownerID,
		FriendID: friendID,
		Score:    tastematch.Score(mine, theirs),
		Shared:   tastematch.SharedCount(mine, theirs),
	}, nil
}

// Predict computes the prediction for one candidate item.
func (s *Service) Predict(ctx context.Context, ownerID, itemID string) (types.Prediction, error) {
	count := s.store.Count(ctx, ownerID)
	if count < s.minRanked {
		return types.Prediction{}, fmt.Errorf("predict: owner %s has %d ranked: %w", ownerID, count, ErrInsufficientRanked)
	}

	meta, err := s.catalog.Lookup(ctx, itemID)
	if err != nil {
		return types.Prediction{}, fmt.Errorf("predict: %w", err)
	}

	in, err := s.BuildPredictionContext(ctx, ownerID)
	if err != nil {
		return types.Prediction{}, fmt.Errorf("predict: %w", err)
	}

	start := time.Now()
	p := s.engine.Predict(in, candidateFrom(meta))
	metrics.RecordPredictionLatency(float64(time.Since(start).Milliseconds()))

	return predictionView(itemID, p), nil
}

// BuildPredictionContext assembles the owner's corpus and friend lists
// once so a batch of predictions can reuse it.
func (s *Service) BuildPredictionContext(ctx context.Context, ownerID string) (predict.Context, error) {
	myGames, err := s.rankedGames(ctx, ownerID)
	if err != nil {
		return predict.Context{}, err
	}

	friendIDs, err := s.social.Friends(ctx, ownerID)
	if err != nil {
		return predict.Context{}, err
	}
	friends := make([]predict.Friend, 0, len(friendIDs))
	for _, id := range friendIDs {
		games, err := s.rankedGames(ctx, id)
		if err != nil {
			return predict.Context{}, err
		}
		if len(games) == 0 {
			continue
		}
		friends = append(friends, predict.Friend{Name: id, Games: games})
	}

	return predict.Context{MyGames: myGames, Friends: friends}, nil
}

// EnqueueBatch schedules an asynchronous prediction run over many items.
func (s *Service) EnqueueBatch(ctx context.Context, ownerID string, itemIDs []string) (string, error) {
	count := s.store.Count(ctx, ownerID)
	if count < s.minRanked {
		return "", fmt.Errorf("enqueue batch: owner %s has %d ranked: %w", ownerID, count, ErrInsufficientRanked)
	}

	job := model.PredictionJob{
		JobID:    uuid.New().String(),
		OwnerID:  ownerID,
		ItemIDs:  itemIDs,
		Enqueued: time.Now(),
	}
	if ok := s.jobQueue.Enqueue(ctx, job); !ok {
		return "", fmt.Errorf("enqueue batch: %w", ErrQueueFull)
	}

	// Register the pending job so its id resolves before completion.
	s.mu.Lock()
	s.batches[job.JobID] = model.BatchResult{JobID: job.JobID, OwnerID: ownerID}
	s.mu.Unlock()

	return job.JobID, nil
}

// BatchResults reports the state of a batch prediction job.
func (s *Service) BatchResults(ctx context.Context, jobID string) (types.BatchStatus, error) {
	s.mu.RLock()
	batch, ok := s.batches[jobID]
	s.mu.RUnlock()
	if !ok {
		return types.BatchStatus{}, fmt.Errorf("batch results: job %q: %w", jobID, ErrNoBatch)
	}

	status := types.BatchStatus{
		JobID:   batch.JobID,
		OwnerID: batch.OwnerID,
		Items:   make([]types.Prediction, 0, len(batch.Items)),
	}
	if !batch.CompletedAt.IsZero() {
		status.CompletedAt = batch.CompletedAt.UTC().Format(time.RFC3339)
	}
	for _, item := range batch.Items {
		status.Items = append(status.Items, types.Prediction{
			ItemID:     item.ItemID,
			Available:  item.Predicted,
			Percentile: item.Percentile,
			Confidence: item.Confidence,
			Tiers:      item.Tiers,
		})
	}
	return status, nil
}

// PredictBatch computes predictions for a batch job. It implements the
// worker pool's Predictor interface.
func (s *Service) PredictBatch(ctx context.Context, ownerID string, itemIDs []string) ([]model.ItemPrediction, error) {
	in, err := s.BuildPredictionContext(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("predict batch: %w", err)
	}
	if len(in.MyGames) < s.minRanked {
		return nil, fmt.Errorf("predict batch: owner %s has %d ranked: %w", ownerID, len(in.MyGames), ErrInsufficientRanked)
	}

	results := make([]model.ItemPrediction, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		meta, err := s.catalog.Lookup(ctx, itemID)
		if err != nil {
			results = append(results, model.ItemPrediction{ItemID: itemID})
			continue
		}
		p := s.engine.Predict(in, candidateFrom(meta))
		if p == nil {
			results = append(results, model.ItemPrediction{ItemID: itemID})
			continue
		}
		results = append(results, model.ItemPrediction{
			ItemID:     itemID,
			Predicted:  true,
			Percentile: p.Percentile,
			Confidence: p.Confidence,
			Tiers:      p.TiersUsed,
		})
	}
	return results, nil
}

// StoreBatch records a finished batch job. It implements the worker
// pool's Sink interface.
func (s *Service) StoreBatch(ctx context.Context, jobID string, results []model.ItemPrediction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.batches[jobID]
	if !ok {
		return fmt.Errorf("store batch: job %q: %w", jobID, ErrNoBatch)
	}
	batch.Items = results
	batch.CompletedAt = time.Now()
	s.batches[jobID] = batch
	return nil
}

// GetStats returns service statistics for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"workers":         s.workerCount,
		"max_comparisons": s.maxComparisons,
		"min_ranked":      s.minRanked,
		"goroutines":      runtime.NumGoroutine(),
	}
	if s.started {
		stats["uptime"] = time.Since(s.startedAt).String()
		stats["active_sessions"] = s.registry.Size()
		stats["queue_depth"] = s.jobQueue.Len(context.Background())
		stats["pending_batches"] = len(s.batches)
	}
	return stats
}

// title resolves a display title, best effort.
func (s *Service) title(ctx context.Context, itemID string) string {
	meta, err := s.catalog.Lookup(ctx, itemID)
	if err != nil {
		return ""
	}
	return meta.Title
}

// matchEntries projects an owner's ranked list into taste-match entries.
func (s *Service) matchEntries(ctx context.Context, ownerID string) ([]tastematch.Entry, error) {
	ranked, err := s.store.RankedList(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	entries := make([]tastematch.Entry, 0, len(ranked))
	for _, item := range ranked {
		entry := tastematch.Entry{ItemID: item.ItemID, Position: item.Position}
		if meta, err := s.catalog.Lookup(ctx, item.ItemID); err == nil {
			entry.CanonicalID = meta.CanonicalID
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// rankedGames projects an owner's ranked list into the prediction corpus
// shape, joining catalog metadata.
func (s *Service) rankedGames(ctx context.Context, ownerID string) ([]predict.RankedGame, error) {
	ranked, err := s.store.RankedList(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	games := make([]predict.RankedGame, 0, len(ranked))
	for _, item := range ranked {
		game := predict.RankedGame{ItemID: item.ItemID, Position: item.Position}
		if meta, err := s.catalog.Lookup(ctx, item.ItemID); err == nil {
			game.CanonicalID = meta.CanonicalID
			game.Genres = meta.Genres
			game.Tags = meta.Tags
			game.Metacritic = meta.Metacritic
		}
		games = append(games, game)
	}
	return games, nil
}

// candidateFrom projects catalog metadata into a prediction candidate.
func candidateFrom(meta model.ItemMeta) predict.Candidate {
	return predict.Candidate{
		ItemID:      meta.ItemID,
		CanonicalID: meta.CanonicalID,
		Genres:      meta.Genres,
		Tags:        meta.Tags,
		Metacritic:  meta.Metacritic,
	}
}

// predictionView projects an engine result into its API shape.
func predictionView(itemID string, p *predict.Prediction) types.Prediction {
	if p == nil {
		return types.Prediction{ItemID: itemID}
	}

	view := types.Prediction{
		ItemID:     itemID,
		Available:  true,
		Percentile: p.Percentile,
		Confidence: p.Confidence,
		Tiers:      p.TiersUsed,
	}
	for _, tier := range p.TiersUsed {
		metrics.RecordPredictionServed(tier)
	}
	predict.SortSignals(p.FriendSignals)
	for _, sig := range p.FriendSignals {
		view.FriendSignals = append(view.FriendSignals, types.FriendSignal{
			FriendName: sig.FriendName,
			Percentile: sig.Percentile,
			TasteMatch: sig.TasteMatch,
			Weight:     sig.Weight,
		})
	}
	if p.TopGenre != nil {
		view.TopGenre = &types.Affinity{Name: p.TopGenre.Name, Score: p.TopGenre.Score}
	}
	if p.TopTag != nil {
		view.TopTag = &types.Affinity{Name: p.TopTag.Name, Score: p.TopTag.Score}
	}
	return view
}
