// Package service 把存储、Pipeline 与 power 引擎组装成按范围排名的服务。
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pipeline"
	"github.com/rushteam/powerrank/pkg/log"
	"github.com/rushteam/powerrank/power"
	"github.com/rushteam/powerrank/rank"
	"github.com/rushteam/powerrank/recall"
)

// Result 是一次范围排名的结果。
type Result struct {
	Scope         string            `json:"scope"`
	DampingFactor float64           `json:"dampingFactor"`
	Ranking       []core.RankedItem `json:"ranking"`
	Stats         core.RankStats    `json:"stats"`

	// Items 是 Pipeline 的原始输出，带 labels 与 meta
	Items []*core.Item `json:"-"`
}

// RankingService 按范围加载投票与设置，运行 Pipeline 得到排名。
// 无共享可变状态，可并发调用。
type RankingService struct {
	votes     core.VoteStore
	catalog   core.CatalogProvider
	settings  core.ScopeSettingsProvider
	publisher core.RankingPublisher

	pipeline    *pipeline.Pipeline
	metrics     *Metrics
	logger      log.Logger
	timeout     time.Duration
	concurrency int
}

// Option 配置 RankingService。
type Option func(*RankingService)

// WithPipeline 使用自定义节点链；链中没有 recall 节点时会自动在头部插入目录召回。
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(s *RankingService) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// WithPublisher 在排名成功后发布结果。
func WithPublisher(p core.RankingPublisher) Option {
	return func(s *RankingService) { s.publisher = p }
}

func WithMetrics(m *Metrics) Option {
	return func(s *RankingService) { s.metrics = m }
}

func WithLogger(l log.Logger) Option {
	return func(s *RankingService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTimeout 设置单次请求超时，<= 0 表示不设超时。
func WithTimeout(d time.Duration) Option {
	return func(s *RankingService) { s.timeout = d }
}

// WithConcurrency 设置 RankScopes 的并发上限。
func WithConcurrency(n int) Option {
	return func(s *RankingService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewRankingService 创建服务；默认节点链只有 rank.power。
func NewRankingService(
	votes core.VoteStore,
	catalog core.CatalogProvider,
	settings core.ScopeSettingsProvider,
	opts ...Option,
) *RankingService {
	defaults := &core.DefaultRankConfig{}
	s := &RankingService{
		votes:       votes,
		catalog:     catalog,
		settings:    settings,
		pipeline:    &pipeline.Pipeline{Name: "default", Nodes: []pipeline.Node{&rank.PowerNode{}}},
		logger:      log.Default,
		timeout:     defaults.DefaultTimeout(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rank 计算一个范围的排名。
// 投票与阻尼系数并发加载；阻尼系数越界时在构图之前返回 InvalidParameter。
func (s *RankingService) Rank(ctx context.Context, scope string) (*Result, error) {
	start := time.Now()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	res, err := s.rank(ctx, scope)
	s.observe(scope, res, err, time.Since(start))
	return res, err
}

func (s *RankingService) rank(ctx context.Context, scope string) (*Result, error) {
	var (
		votes []core.Comparison
		d     float64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.votes.Comparisons(gctx, scope)
		if err != nil {
			return fmt.Errorf("load votes: %w", err)
		}
		votes = v
		return nil
	})
	g.Go(func() error {
		v, err := s.settings.DampingFactor(gctx, scope)
		if err != nil {
			return fmt.Errorf("load damping factor: %w", err)
		}
		d = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := power.ValidateDampingFactor(d); err != nil {
		return nil, err
	}

	p := s.pipeline
	if !p.HasKind(pipeline.KindRecall) {
		p = p.Prepend(&recall.Catalog{Provider: s.catalog})
	}

	rctx := &core.RankContext{Scope: scope, DampingFactor: d, Votes: votes}
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Scope:         scope,
		DampingFactor: d,
		Ranking:       make([]core.RankedItem, 0, len(items)),
		Items:         items,
	}
	for _, it := range items {
		if it != nil {
			res.Ranking = append(res.Ranking, core.RankedItem{ItemID: it.ID, Power: it.Score})
		}
	}
	if rctx.Stats != nil {
		res.Stats = *rctx.Stats
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRanking(ctx, scope, res.Ranking); err != nil {
			return nil, fmt.Errorf("publish ranking: %w", err)
		}
	}
	return res, nil
}

func (s *RankingService) observe(scope string, res *Result, err error, elapsed time.Duration) {
	status := StatusOK
	switch {
	case err == nil && res.Stats.InsufficientData:
		status = StatusInsufficientData
		s.logger.Debugf("scope %s: %d participants, returning zero powers", scope, res.Stats.Participants)
	case err == nil:
		if !res.Stats.Converged {
			s.logger.Warnf("scope %s: not converged after %d iterations (delta %g)",
				scope, res.Stats.Iterations, res.Stats.Delta)
		}
	case core.IsInvalidParameter(err):
		status = StatusInvalidParameter
		s.logger.Errorf("scope %s: %v", scope, err)
	case core.IsFailedConvergence(err):
		status = StatusFailedConvergence
		s.logger.Errorf("scope %s: %v", scope, err)
	default:
		status = StatusError
		s.logger.Errorf("scope %s: %v", scope, err)
	}

	if s.metrics == nil {
		return
	}
	s.metrics.IncRankings(status)
	s.metrics.ObserveDuration(elapsed.Seconds())
	if err == nil {
		s.metrics.SetLastParticipants(scope, res.Stats.Participants)
		if !res.Stats.InsufficientData {
			s.metrics.ObserveIterations(res.Stats.Iterations)
		}
	}
}

// RankScopes 并发计算多个范围，并发数受 concurrency 限制；任一范围失败即取消其余并返回该错误。
func (s *RankingService) RankScopes(ctx context.Context, scopes []string) (map[string]*Result, error) {
	var (
		mu      sync.Mutex
		results = make(map[string]*Result, len(scopes))
		seen    = make(map[string]struct{}, len(scopes))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, scope := range scopes {
		if _, ok := seen[scope]; ok {
			continue
		}
		seen[scope] = struct{}{}
		g.Go(func() error {
			res, err := s.Rank(gctx, scope)
			if err != nil {
				return fmt.Errorf("scope %s: %w", scope, err)
			}
			mu.Lock()
			results[scope] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SubmitBallot 校验并保存一份 ballot。
func (s *RankingService) SubmitBallot(ctx context.Context, scope string, ballot core.Ballot) error {
	if err := ballot.Validate(); err != nil {
		return err
	}
	if err := s.votes.SaveBallot(ctx, scope, ballot); err != nil {
		s.logger.Errorf("scope %s: save ballot %s: %v", scope, ballot.ID, err)
		return fmt.Errorf("save ballot: %w", err)
	}
	s.logger.Infof("scope %s: saved ballot %s with %d preferences", scope, ballot.ID, len(ballot.Preferences))
	return nil
}
