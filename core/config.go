package core

import "time"

// RankConfig 是排名相关的配置接口，用于提供默认值。
// 这些常量是实现上的可调参数，不属于对外契约。
type RankConfig interface {
	// DefaultDampingFactor 返回范围未配置时使用的阻尼系数
	DefaultDampingFactor() float64

	// DefaultMaxIterations 返回幂迭代的轮数上限
	DefaultMaxIterations() int

	// DefaultTolerance 返回相邻两轮 L1 距离的收敛阈值
	DefaultTolerance() float64

	// DefaultTimeout 返回服务层单次请求的默认超时时间
	DefaultTimeout() time.Duration
}

// DefaultRankConfig 是默认的排名配置实现。
type DefaultRankConfig struct{}

func (c *DefaultRankConfig) DefaultDampingFactor() float64 {
	return 0.85
}

func (c *DefaultRankConfig) DefaultMaxIterations() int {
	return 100
}

func (c *DefaultRankConfig) DefaultTolerance() float64 {
	return 1e-6
}

func (c *DefaultRankConfig) DefaultTimeout() time.Duration {
	return 2 * time.Second
}

var _ RankConfig = (*DefaultRankConfig)(nil)
