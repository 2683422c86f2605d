package metrics

import (
	"github.com/YuminosukeSato/pla/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// checkPair は2つのラベルベクトルが空でなく同じ長さであることを検証する
func checkPair(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yPred == nil || yTrue.Len() == 0 {
		return 0, errors.NewEmptyDataError(op)
	}
	n := yTrue.Len()
	if yPred.Len() != n {
		return 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}
	return n, nil
}

// Accuracy は正解率（予測ラベルが一致したサンプルの割合）を計算する
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := checkPair("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ClassificationError は誤分類率（1 - Accuracy）を計算する
func ClassificationError(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// AccuracySlice はスライス形式の入力に対して正解率を計算する
func AccuracySlice(yTrue, yPred []float64) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewEmptyDataError("AccuracySlice")
	}
	if len(yPred) != len(yTrue) {
		return 0, errors.NewDimensionError("AccuracySlice", len(yTrue), len(yPred), 0)
	}
	return Accuracy(mat.NewVecDense(len(yTrue), yTrue), mat.NewVecDense(len(yPred), yPred))
}

// ConfusionMatrix は {-1, +1} ラベルの二値混同行列
type ConfusionMatrix struct {
	TruePositive  int
	FalsePositive int
	TrueNegative  int
	FalseNegative int
}

// NewConfusionMatrix は正例を +1、それ以外を負例として混同行列を集計する
func NewConfusionMatrix(yTrue, yPred *mat.VecDense) (*ConfusionMatrix, error) {
	n, err := checkPair("ConfusionMatrix", yTrue, yPred)
	if err != nil {
		return nil, err
	}

	cm := &ConfusionMatrix{}
	for i := 0; i < n; i++ {
		actual := yTrue.AtVec(i) > 0
		predicted := yPred.AtVec(i) > 0
		switch {
		case actual && predicted:
			cm.TruePositive++
		case !actual && predicted:
			cm.FalsePositive++
		case !actual && !predicted:
			cm.TrueNegative++
		default:
			cm.FalseNegative++
		}
	}
	return cm, nil
}

// Total はサンプル数を返す
func (cm *ConfusionMatrix) Total() int {
	return cm.TruePositive + cm.FalsePositive + cm.TrueNegative + cm.FalseNegative
}

// Dense は [[TN, FP], [FN, TP]] の2x2行列を返す（行: 実ラベル、列: 予測ラベル）
func (cm *ConfusionMatrix) Dense() *mat.Dense {
	return mat.NewDense(2, 2, []float64{
		float64(cm.TrueNegative), float64(cm.FalsePositive),
		float64(cm.FalseNegative), float64(cm.TruePositive),
	})
}

// Precision は適合率 TP / (TP + FP) を返す
// 陽性予測が一つもない場合は 0 を返し UndefinedMetricWarning を発生させる
func (cm *ConfusionMatrix) Precision() float64 {
	p, ok := cm.precision()
	if !ok {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted positive samples", 0))
	}
	return p
}

// Recall は再現率 TP / (TP + FN) を返す
// 陽性サンプルが一つもない場合は 0 を返し UndefinedMetricWarning を発生させる
func (cm *ConfusionMatrix) Recall() float64 {
	r, ok := cm.recall()
	if !ok {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no true positive samples", 0))
	}
	return r
}

// F1 は適合率と再現率の調和平均を返す
// どちらかが定義できない場合、警告は "f1" として一度だけ発生する
func (cm *ConfusionMatrix) F1() float64 {
	p, pok := cm.precision()
	r, rok := cm.recall()
	if !pok || !rok {
		errors.Warn(errors.NewUndefinedMetricWarning("f1", "precision or recall is undefined", 0))
	}
	return f1(p, r)
}

// Scores は適合率・再現率・F1をまとめて返す
// 警告は適合率と再現率についてそれぞれ高々一度だけ発生する
func (cm *ConfusionMatrix) Scores() (precision, recall, f1Score float64) {
	precision, recall = cm.Precision(), cm.Recall()
	return precision, recall, f1(precision, recall)
}

func (cm *ConfusionMatrix) precision() (float64, bool) {
	denom := cm.TruePositive + cm.FalsePositive
	if denom == 0 {
		return 0, false
	}
	return float64(cm.TruePositive) / float64(denom), true
}

func (cm *ConfusionMatrix) recall() (float64, bool) {
	denom := cm.TruePositive + cm.FalseNegative
	if denom == 0 {
		return 0, false
	}
	return float64(cm.TruePositive) / float64(denom), true
}

func f1(p, r float64) float64 {
	return errors.SafeDivide(2*p*r, p+r)
}
