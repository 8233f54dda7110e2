// Package predict estimates how much an owner will enjoy an item they have
// not ranked yet, as a 0-100 percentile of their own ranked list plus a
// 1-5 confidence level.
//
// Three independent signal tiers feed a weighted blend: rankings from
// friends with compatible taste, the owner's historical genre and tag
// affinity, and a least-squares regression of the owner's rank percentiles
// against critic scores. Any tier may be unavailable; tiers degrade
// independently and silently, and only the case where no tier produced a
// usable signal surfaces as "no prediction".
//
// The blend weights, the sparse-corpus boost, and the genre-drag penalty
// are hand-tuned policy carried over as fixed behavior. They are applied
// verbatim, not derived.
package predict

import (
	"sort"
	"strings"

	"github.com/mirzakhani/gamerank/internal/domain/tastematch"
)

// Fixed policy constants for the tiers and the blend.
const (
	// DefaultMinRanked is how many ranked items the owner needs before
	// any prediction is attempted.
	DefaultMinRanked = 5

	// DefaultMinTasteMatch is the taste-match floor below which a
	// friend's ranking is not trusted as a signal.
	DefaultMinTasteMatch = 30.0

	// minTagOccurrences is the smallest co-occurrence count for a tag to
	// count as signal; genres have no such floor.
	minTagOccurrences = 2

	// smallCorpusLimit bounds the sparse-corpus boost: below this many
	// ranked items, above-average affinities are amplified to widen the
	// separation the thin data would otherwise flatten.
	smallCorpusLimit = 30

	// boostFactor scales the sparse-corpus amplification.
	boostFactor = 0.3

	// minMetacriticSamples is how many critic-scored items the
	// regression needs.
	minMetacriticSamples = 5

	// strongGenreCorpus is the corpus size at which the genre/tag tier
	// counts as "strong" for confidence purposes.
	strongGenreCorpus = 10

	// Genre-drag policy: distrust friend enthusiasm for genres the owner
	// historically dislikes.
	dragFloor       = 50.0 // genre/tag score below this drags the blend down
	dragCeiling     = 70.0 // up to this, over-strong friend signals are damped
	dragMaxPenalty  = 20.0
	dragDampFactor  = 0.4
	dragFriendCutin = 80.0 // friend percentile that triggers the damping

	maxPercentile = 100.0
)

// Tier names as reported in Prediction.TiersUsed.
const (
	TierFriends    = "friends"
	TierGenreTag   = "genre_tag"
	TierMetacritic = "metacritic"
)

// RankedGame is one entry of a user's ranked corpus with the metadata the
// tiers need. Position is the 1-based rank in a list of whatever length
// the owning slice has.
type RankedGame struct {
	ItemID      string
	CanonicalID string
	Position    int
	Genres      []string
	Tags        []string
	Metacritic  *float64
}

// canonical returns the identity used for cross-user matching.
func (g RankedGame) canonical() string {
	if g.CanonicalID != "" {
		return g.CanonicalID
	}
	return g.ItemID
}

// Friend is one friend's full ranked list.
type Friend struct {
	Name  string
	Games []RankedGame
}

// Context is the caller-assembled snapshot a prediction runs against.
// Build it once per screen and reuse it across many Predict calls.
type Context struct {
	MyGames []RankedGame
	Friends []Friend
}

// Candidate is the item being predicted.
type Candidate struct {
	ItemID      string
	CanonicalID string
	Genres      []string
	Tags        []string
	Metacritic  *float64
}

func (c Candidate) canonical() string {
	if c.CanonicalID != "" {
		return c.CanonicalID
	}
	return c.ItemID
}

// FriendSignal is one friend's contribution to the friend tier. Derived
// per call, never persisted.
type FriendSignal struct {
	FriendName string
	Percentile float64 // friend's rank of the candidate, as a percentile
	TasteMatch float64
	Weight     float64
}

// Affinity names a genre or tag and the owner's percentile score for it.
type Affinity struct {
	Name  string
	Score float64
}

// Prediction is the blended result for one candidate.
type Prediction struct {
	Percentile    float64
	Confidence    int // 1..5
	TiersUsed     []string
	FriendSignals []FriendSignal
	TopGenre      *Affinity
	TopTag        *Affinity
}

// Engine computes predictions. It is pure and safe for concurrent use:
// every call is a deterministic function of its inputs.
type Engine struct {
	minRanked     int
	minTasteMatch float64
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMinRanked overrides the ranked-corpus floor.
func WithMinRanked(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minRanked = n
		}
	}
}

// WithMinTasteMatch overrides the taste-match floor for friend signals.
func WithMinTasteMatch(min float64) Option {
	return func(e *Engine) {
		if min >= 0 {
			e.minTasteMatch = min
		}
	}
}

// New creates an Engine with the default policy.
func New(opts ...Option) *Engine {
	e := &Engine{
		minRanked:     DefaultMinRanked,
		minTasteMatch: DefaultMinTasteMatch,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Predict estimates the candidate's percentile for the context's owner.
// It returns nil when the owner's corpus is too small or no tier produced
// a usable signal; that is an absence of data, not an error.
func (e *Engine) Predict(in Context, candidate Candidate) *Prediction {
	if len(in.MyGames) < e.minRanked {
		return nil
	}

	friends := e.friendTier(in, candidate)
	genreTag := genreTagTier(in.MyGames, candidate)
	critic := metacriticTier(in.MyGames, candidate)

	weights := blendWeights(len(in.MyGames), len(friends.signals))

	// Zero out unavailable tiers before normalizing.
	if !friends.available {
		weights.friend = 0
	}
	if !genreTag.available {
		weights.genreTag = 0
	}
	if !critic.available {
		weights.metacritic = 0
	}
	total := weights.friend + weights.genreTag + weights.metacritic
	if total == 0 {
		return nil
	}
	weights.friend /= total
	weights.genreTag /= total
	weights.metacritic /= total

	friendContribution := weights.friend * friends.score

	// Genre drag: a friend signal does not override a genre the owner
	// historically dislikes.
	var penalty float64
	switch {
	case friends.available && genreTag.available && genreTag.score < dragFloor:
		penalty = (dragFloor - genreTag.score) / dragFloor * dragMaxPenalty
	case friends.available && genreTag.available &&
		genreTag.score < dragCeiling && friends.score > dragFriendCutin:
		damp := (dragCeiling - genreTag.score) / (dragCeiling - dragFloor) * dragDampFactor
		friendContribution *= 1 - damp
	}

	blended := friendContribution +
		weights.genreTag*genreTag.score +
		weights.metacritic*critic.score -
		penalty

	p := &Prediction{
		Percentile:    clamp(blended),
		FriendSignals: friends.signals,
		TopGenre:      genreTag.topGenre,
		TopTag:        genreTag.topTag,
	}
	if weights.friend > 0 {
		p.TiersUsed = append(p.TiersUsed, TierFriends)
	}
	if weights.genreTag > 0 {
		p.TiersUsed = append(p.TiersUsed, TierGenreTag)
	}
	if weights.metacritic > 0 {
		p.TiersUsed = append(p.TiersUsed, TierMetacritic)
	}
	p.Confidence = confidence(friends, genreTag, critic, len(in.MyGames))
	return p
}

// rankPercentile maps a 1-based rank in a list of total items onto
// [0,100], where rank 1 is 100.
func rankPercentile(rank, total int) float64 {
	denom := total - 1
	if denom < 1 {
		denom = 1
	}
	return (1 - float64(rank-1)/float64(denom)) * maxPercentile
}

// tierResult is one tier's outcome.
type tierResult struct {
	score     float64
	available bool
}

// friendTierResult carries the friend tier's outcome plus its signals.
type friendTierResult struct {
	tierResult
	signals  []FriendSignal
	avgMatch float64
}

// friendTier averages qualifying friends' rank percentiles for the
// candidate, weighted by taste match.
func (e *Engine) friendTier(in Context, candidate Candidate) friendTierResult {
	mine := matchEntries(in.MyGames)

	var result friendTierResult
	var weightedSum, weightTotal, matchTotal float64

	for _, friend := range in.Friends {
		match := tastematch.Score(mine, matchEntries(friend.Games))
		if match < e.minTasteMatch {
			continue
		}

		rank, ok := rankOf(friend.Games, candidate.canonical())
		if !ok {
			continue
		}

		percentile := rankPercentile(rank, len(friend.Games))
		weight := match / maxPercentile
		result.signals = append(result.signals, FriendSignal{
			FriendName: friend.Name,
			Percentile: percentile,
			TasteMatch: match,
			Weight:     weight,
		})
		weightedSum += percentile * weight
		weightTotal += weight
		matchTotal += match
	}

	if weightTotal > 0 {
		result.score = weightedSum / weightTotal
		result.avgMatch = matchTotal / float64(len(result.signals))
		result.available = true
	}
	return result
}

// matchEntries converts a ranked corpus into taste-match entries.
func matchEntries(games []RankedGame) []tastematch.Entry {
	entries := make([]tastematch.Entry, len(games))
	for i, g := range games {
		entries[i] = tastematch.Entry{
			ItemID:      g.ItemID,
			CanonicalID: g.CanonicalID,
			Position:    g.Position,
		}
	}
	return entries
}

// rankOf finds the candidate in a friend's list by canonical identity.
func rankOf(games []RankedGame, canonical string) (int, bool) {
	for _, g := range games {
		if g.canonical() == canonical {
			return g.Position, true
		}
	}
	return 0, false
}

// genreTagTierResult carries the genre/tag tier outcome plus highlights.
type genreTagTierResult struct {
	tierResult
	topGenre *Affinity
	topTag   *Affinity
}

// genreTagTier scores the candidate by the owner's historical affinity for
// its genres and tags, blending the two halves equally when both exist.
func genreTagTier(myGames []RankedGame, candidate Candidate) genreTagTierResult {
	var result genreTagTierResult

	genreScore, topGenre, genreOK := affinityScore(
		myGames, candidate.Genres, func(g RankedGame) []string { return g.Genres }, 1)
	tagScore, topTag, tagOK := affinityScore(
		myGames, candidate.Tags, func(g RankedGame) []string { return g.Tags }, minTagOccurrences)

	result.topGenre = topGenre
	result.topTag = topTag

	switch {
	case genreOK && tagOK:
		result.score = genreScore*0.5 + tagScore*0.5
		result.available = true
	case genreOK:
		result.score = genreScore
		result.available = true
	case tagOK:
		result.score = tagScore
		result.available = true
	}
	return result
}

// affinityScore averages per-feature affinities over all candidate
// features with at least minCount co-occurrences in the owner's corpus.
func affinityScore(myGames []RankedGame, features []string, get func(RankedGame) []string, minCount int) (float64, *Affinity, bool) {
	total := len(myGames)
	var sum float64
	var scored int
	var top *Affinity

	for _, feature := range features {
		var percSum float64
		var count int
		for _, g := range myGames {
			if !containsFold(get(g), feature) {
				continue
			}
			percSum += rankPercentile(g.Position, total)
			count++
		}
		if count < minCount || count == 0 {
			continue
		}

		avg := percSum / float64(count)
		if total < smallCorpusLimit && avg > dragFloor {
			avg += (avg - dragFloor) * boostFactor * countConfidence(count)
		}
		avg = clamp(avg)

		sum += avg
		scored++
		if top == nil || avg > top.Score {
			top = &Affinity{Name: feature, Score: avg}
		}
	}

	if scored == 0 {
		return 0, nil, false
	}
	return sum / float64(scored), top, true
}

// countConfidence discounts the sparse-corpus boost when few of the
// owner's items share the feature.
func countConfidence(count int) float64 {
	switch {
	case count >= 5:
		return 1.0
	case count >= 3:
		return 0.9
	default:
		return 0.75
	}
}

// containsFold reports whether list contains s, case-insensitively.
func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// metacriticTier fits a least-squares line of the owner's rank percentile
// against critic score and evaluates it at the candidate's score. The tier
// is unavailable with fewer than five scored items, zero variance in the
// scores, or an unscored candidate.
func metacriticTier(myGames []RankedGame, candidate Candidate) tierResult {
	if candidate.Metacritic == nil {
		return tierResult{}
	}

	var xs, ys []float64
	total := len(myGames)
	for _, g := range myGames {
		if g.Metacritic == nil {
			continue
		}
		xs = append(xs, *g.Metacritic)
		ys = append(ys, rankPercentile(g.Position, total))
	}
	if len(xs) < minMetacriticSamples {
		return tierResult{}
	}

	n := float64(len(xs))
	var meanX, meanY float64
	for i := range xs {
		meanX += xs[i]
		meanY += ys[i]
	}
	meanX /= n
	meanY /= n

	var varX, covXY float64
	for i := range xs {
		dx := xs[i] - meanX
		varX += dx * dx
		covXY += dx * (ys[i] - meanY)
	}
	if varX == 0 {
		return tierResult{}
	}

	slope := covXY / varX
	intercept := meanY - slope*meanX
	return tierResult{
		score:     clamp(intercept + slope**candidate.Metacritic),
		available: true,
	}
}

// tierWeights is one row of the blend policy table.
type tierWeights struct {
	friend     float64
	genreTag   float64
	metacritic float64
}

// blendWeights is the fixed lookup table selecting tier weights from the
// owner's corpus size and the number of qualifying friends.
func blendWeights(corpusSize, qualifyingFriends int) tierWeights {
	switch {
	case corpusSize < DefaultMinRanked:
		return tierWeights{friend: 0, genreTag: 0.20, metacritic: 0.80}
	case qualifyingFriends >= 2:
		return tierWeights{friend: 0.60, genreTag: 0.30, metacritic: 0.10}
	case qualifyingFriends == 1:
		return tierWeights{friend: 0.55, genreTag: 0.30, metacritic: 0.15}
	default:
		return tierWeights{friend: 0, genreTag: 0.70, metacritic: 0.30}
	}
}

// confidence maps the available signals onto a 1-5 level, evaluated in
// fixed priority order.
func confidence(friends friendTierResult, genreTag genreTagTierResult, critic tierResult, corpusSize int) int {
	qf := len(friends.signals)
	strongGenre := genreTag.available && corpusSize >= strongGenreCorpus

	switch {
	case qf >= 3 && friends.avgMatch >= 50 && strongGenre:
		return 5
	case qf >= 2 && friends.avgMatch >= 40:
		return 4
	case qf >= 2 || (strongGenre && critic.available):
		return 4
	case strongGenre:
		return 3
	case genreTag.available:
		return 2
	default:
		return 1
	}
}

// SortSignals orders friend signals by weight descending, then name, for
// stable presentation.
func SortSignals(signals []FriendSignal) {
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].Weight != signals[j].Weight {
			return signals[i].Weight > signals[j].Weight
		}
		return signals[i].FriendName < signals[j].FriendName
	})
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxPercentile {
		return maxPercentile
	}
	return v
}
