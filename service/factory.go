package service

import (
	"context"
	"fmt"

	"github.com/rushteam/powerrank/config"
	_ "github.com/rushteam/powerrank/config/builders"
	"github.com/rushteam/powerrank/core"
	"github.com/rushteam/powerrank/pipeline"
	"github.com/rushteam/powerrank/pkg/log"
	"github.com/rushteam/powerrank/power"
	"github.com/rushteam/powerrank/rank"
	"github.com/rushteam/powerrank/store"
)

// Bundle 是 NewFromConfig 组装出的服务及其依赖，Close 释放存储连接。
type Bundle struct {
	Service *RankingService
	Votes   *store.VoteAdapter
	Store   core.KeyValueStore
}

func (b *Bundle) Close() error {
	if b == nil || b.Store == nil {
		return nil
	}
	return b.Store.Close()
}

// NewFromConfig 按配置连接 Redis、加载节点链并创建服务。
// 没有配置 pipeline_file 时使用只含 rank.power 的默认链，迭代参数取自 cfg。
func NewFromConfig(ctx context.Context, cfg *Config, opts ...Option) (*Bundle, error) {
	kv, err := store.NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	b, err := NewWithStore(cfg, kv, opts...)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	return b, nil
}

// NewWithStore 与 NewFromConfig 相同，但使用调用方提供的存储。
func NewWithStore(cfg *Config, kv core.KeyValueStore, opts ...Option) (*Bundle, error) {
	p, err := LoadPipeline(cfg)
	if err != nil {
		return nil, err
	}

	votes := store.NewVoteAdapter(kv, store.WithKeyPrefix(cfg.KeyPrefix))
	base := []Option{
		WithPipeline(p),
		WithTimeout(cfg.Timeout),
		WithConcurrency(cfg.Concurrency),
	}
	if cfg.Publish {
		base = append(base, WithPublisher(votes))
	}
	svc := NewRankingService(votes, votes, votes, append(base, opts...)...)
	log.Debugf("ranking service ready: store=%s pipeline=%s nodes=%d", kv.Name(), p.Name, len(p.Nodes))
	return &Bundle{Service: svc, Votes: votes, Store: kv}, nil
}

// LoadPipeline 读取 cfg.PipelineFile；节点链必须包含 rank 阶段。
func LoadPipeline(cfg *Config) (*pipeline.Pipeline, error) {
	if cfg.PipelineFile == "" {
		ranker := power.NewRanker(power.WithMaxIterations(cfg.MaxIterations), power.WithTolerance(cfg.Tolerance))
		return &pipeline.Pipeline{Name: "default", Nodes: []pipeline.Node{&rank.PowerNode{Ranker: ranker}}}, nil
	}

	pc, err := pipeline.LoadFromYAML(cfg.PipelineFile)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", cfg.PipelineFile, err)
	}
	p, err := config.BuildPipeline(pc)
	if err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", cfg.PipelineFile, err)
	}
	if !p.HasKind(pipeline.KindRank) {
		return nil, fmt.Errorf("pipeline %s: no rank node", cfg.PipelineFile)
	}
	return p, nil
}
