package model

// RankModel 是排序阶段的最小抽象：输入一行的特征，输出一个可比较的分数。
type RankModel interface {
	Name() string
	Predict(features map[string]float64) (float64, error)
}
