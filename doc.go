// Package tripkit 是一个行程估价服务工具包：机票价格预测 + 酒店推荐。
//
// 设计要点：
// - Pipeline-first: 酒店推荐通过 Node 串联（Recall → Filter → Rank → ReRank），可由 YAML 配置替换
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测 / 规则驱动
// - Schema-first: 机票特征按训练时的列顺序编码，模型可以是本地线性模型或 KServe 远程服务
package tripkit

import "github.com/rushteam/tripkit/pipeline"

// 轻量 facade：便于用户直接 import "tripkit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
