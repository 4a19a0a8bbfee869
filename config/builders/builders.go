// Package builders 注册内置 Node 的配置构建器；通过空导入启用：
//
//	import _ "github.com/rushteam/powerrank/config/builders"
package builders

import (
	"fmt"

	"github.com/rushteam/powerrank/config"
	"github.com/rushteam/powerrank/filter"
	"github.com/rushteam/powerrank/pipeline"
	"github.com/rushteam/powerrank/pkg/conv"
	"github.com/rushteam/powerrank/postprocess"
	"github.com/rushteam/powerrank/power"
	"github.com/rushteam/powerrank/rank"
	"github.com/rushteam/powerrank/recall"
	"github.com/rushteam/powerrank/rerank"
)

func init() {
	config.Register("recall.catalog", BuildCatalogNode)
	config.Register("rank.power", BuildPowerNode)
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("postprocess.percent", BuildPercentNode)
}

// BuildCatalogNode 构建静态目录召回（ids）；服务场景下目录由存储注入，无需配置此节点。
func BuildCatalogNode(cfg map[string]any) (pipeline.Node, error) {
	ids := conv.SliceAnyToString(cfg["ids"])
	if ids == nil {
		ids = []string{}
	}
	return &recall.Catalog{IDs: ids}, nil
}

// BuildPowerNode 读取 max_iterations、tolerance，缺省使用引擎默认值。
func BuildPowerNode(cfg map[string]any) (pipeline.Node, error) {
	defaults := power.NewRanker().Options()
	opts := power.IterateOptions{
		MaxIterations: conv.ConfigGetInt(cfg, "max_iterations", defaults.MaxIterations),
		Tolerance:     conv.ConfigGetFloat64(cfg, "tolerance", defaults.Tolerance),
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &rank.PowerNode{
		Ranker: power.NewRanker(power.WithMaxIterations(opts.MaxIterations), power.WithTolerance(opts.Tolerance)),
	}, nil
}

func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := cfg["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(filtersConfig))
	for i, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("filter #%d: expected a mapping", i)
		}
		filterType := conv.ConfigGet(filterMap, "type", "")
		switch filterType {
		case "exclude":
			ids := conv.SliceAnyToString(filterMap["item_ids"])
			if ids == nil {
				ids = []string{}
			}
			filters = append(filters, filter.NewExcludeFilter(ids, nil, ""))
		case "expr":
			f, err := filter.NewExprFilter(conv.ConfigGet(filterMap, "expr", ""))
			if err != nil {
				return nil, fmt.Errorf("filter #%d: %w", i, err)
			}
			filters = append(filters, f)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.TopNNode{N: conv.ConfigGetInt(cfg, "n", 0)}, nil
}

func BuildPercentNode(cfg map[string]any) (pipeline.Node, error) {
	return &postprocess.PercentNode{Precision: conv.ConfigGetInt(cfg, "precision", 2)}, nil
}
