package model

import "gonum.org/v1/gonum/mat"

// Fitter は行列形式の訓練データで学習できるモデルのインターフェース
type Fitter interface {
	// FitMatrix はモデルを訓練データで学習させる（X: n×d, y: n×1）
	FitMatrix(X, y mat.Matrix) error
}

// BatchPredictor は行列形式の入力をまとめて予測するモデルのインターフェース
type BatchPredictor interface {
	// PredictBatch は各行に対するラベルを返す
	PredictBatch(X mat.Matrix) (*mat.VecDense, error)
}

// WeightExporter は重みをエクスポート・インポートできるモデルのインターフェース
type WeightExporter interface {
	// ExportWeights はモデルの重みをエクスポート
	ExportWeights() (*ModelWeights, error)

	// ImportWeights はモデルの重みをインポート
	ImportWeights(weights *ModelWeights) error
}

// Classifier は二値分類器が満たすインターフェースの組み合わせ
type Classifier interface {
	Fitter
	BatchPredictor
	WeightExporter

	// IsFitted はモデルが学習済みかどうかを返す
	IsFitted() bool
}
