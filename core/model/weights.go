package model

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"math"

	"github.com/YuminosukeSato/pla/pkg/errors"
)

// WeightsVersion はシリアライズ形式のバージョン
const WeightsVersion = "1.0"

// ModelWeights はモデルの重みを表す構造体（シリアライゼーション用）
type ModelWeights struct {
	// ModelType はモデルの種類（"Perceptron" 等）
	ModelType string `json:"model_type"`

	// Version はシリアライズ形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Coefficients は特徴量ごとの重み係数（バイアスを除く）
	Coefficients []float64 `json:"coefficients"`

	// Intercept はバイアス項の重み
	Intercept float64 `json:"intercept"`

	// Features は特徴量の名前（オプション）
	Features []string `json:"features,omitempty"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters"`

	// Metadata は追加のメタデータ（学習時の統計等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`

	// Scaler は学習前に特徴量へ適用した標準化の統計量（オプション）
	Scaler *ScalerWeights `json:"scaler,omitempty"`
}

// ScalerWeights は標準化スケーラーの統計量
type ScalerWeights struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Validate は平均と標準偏差の長さが一致し、標準偏差が正の有限値であることを検証
func (sw *ScalerWeights) Validate() error {
	if len(sw.Mean) == 0 || len(sw.Mean) != len(sw.Scale) {
		return errors.NewValidationError("scaler", "mean and scale must be non-empty and of equal length", len(sw.Scale))
	}
	if err := errors.CheckNumericalStability("scaler.mean", sw.Mean, 0); err != nil {
		return err
	}
	if err := errors.CheckNumericalStability("scaler.scale", sw.Scale, 0); err != nil {
		return err
	}
	for j, v := range sw.Scale {
		if v <= 0 {
			return errors.Wrapf(errors.NewValidationError("scaler.scale", "must be positive", v), "feature %d", j)
		}
	}
	return nil
}

// ToJSON はModelWeightsをJSON形式にシリアライズ
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON はJSON形式からModelWeightsをデシリアライズ
func (mw *ModelWeights) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, mw); err != nil {
		return errors.Mark(errors.Wrap(err, "decode model weights"), errors.ErrInvalidInput)
	}
	return nil
}

// Validate はModelWeightsの妥当性を検証
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", mw.ModelType)
	}
	if mw.Version == "" {
		return errors.NewValidationError("version", "is required", mw.Version)
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return errors.NewValidationError("coefficients", "unfitted model should not have coefficients", len(mw.Coefficients))
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return errors.NewValidationError("coefficients", "fitted model must have coefficients", 0)
	}
	if err := errors.CheckNumericalStability("coefficients", mw.Coefficients, 0); err != nil {
		return err
	}
	if err := errors.CheckScalar("intercept", mw.Intercept, 0); err != nil {
		return err
	}
	if mw.Scaler != nil {
		if err := mw.Scaler.Validate(); err != nil {
			return err
		}
		if len(mw.Scaler.Mean) != len(mw.Coefficients) {
			return errors.NewDimensionError("ModelWeights.Validate", len(mw.Coefficients), len(mw.Scaler.Mean), 1)
		}
	}
	return nil
}

// Augmented はバイアスを先頭に置いた重みベクトル [intercept, coef...] を返す
func (mw *ModelWeights) Augmented() []float64 {
	w := make([]float64, 0, len(mw.Coefficients)+1)
	w = append(w, mw.Intercept)
	return append(w, mw.Coefficients...)
}

// Hash は重みのSHA-256ハッシュ値を返す（検証用）
func (mw *ModelWeights) Hash() string {
	h := sha256.New()
	h.Write([]byte(mw.ModelType))
	var buf [8]byte
	for _, v := range mw.Augmented() {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Clone はModelWeightsのディープコピーを作成
func (mw *ModelWeights) Clone() *ModelWeights {
	clone := &ModelWeights{
		ModelType:       mw.ModelType,
		Version:         mw.Version,
		Intercept:       mw.Intercept,
		IsFitted:        mw.IsFitted,
		Coefficients:    make([]float64, len(mw.Coefficients)),
		Hyperparameters: make(map[string]interface{}, len(mw.Hyperparameters)),
		Metadata:        make(map[string]interface{}, len(mw.Metadata)),
	}
	copy(clone.Coefficients, mw.Coefficients)
	if mw.Features != nil {
		clone.Features = append([]string(nil), mw.Features...)
	}
	if mw.Scaler != nil {
		clone.Scaler = &ScalerWeights{
			Mean:  append([]float64(nil), mw.Scaler.Mean...),
			Scale: append([]float64(nil), mw.Scaler.Scale...),
		}
	}
	for k, v := range mw.Hyperparameters {
		clone.Hyperparameters[k] = v
	}
	for k, v := range mw.Metadata {
		clone.Metadata[k] = v
	}
	return clone
}
