// Package preprocessing transforms features before training.
package preprocessing

import (
	"fmt"
	"math"

	"github.com/YuminosukeSato/pla/core/model"
	"github.com/YuminosukeSato/pla/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// StandardScaler は各特徴量を平均0・標準偏差1に変換する
type StandardScaler struct {
	state *model.StateManager

	// Mean は各特徴量の平均値
	Mean []float64

	// Scale は各特徴量の標準偏差（母標準偏差）
	Scale []float64
}

// NewStandardScaler は未学習のStandardScalerを作成する
//
//	scaler := preprocessing.NewStandardScaler()
//	scaled, err := scaler.FitTransform(ds.Samples)
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{state: model.NewStateManager()}
}

// NewStandardScalerFromWeights は保存済みの統計量からStandardScalerを復元する
func NewStandardScalerFromWeights(sw *model.ScalerWeights) (*StandardScaler, error) {
	if sw == nil {
		return nil, errors.NewValidationError("scaler", "must not be nil", nil)
	}
	if err := sw.Validate(); err != nil {
		return nil, err
	}
	s := NewStandardScaler()
	s.Mean = append([]float64(nil), sw.Mean...)
	s.Scale = append([]float64(nil), sw.Scale...)
	s.state.SetDimensions(len(s.Mean), 0)
	s.state.SetFitted()
	return s, nil
}

// Fit は訓練データから平均と標準偏差を計算する
func (s *StandardScaler) Fit(samples [][]float64) error {
	const op = "StandardScaler.Fit"

	X, err := toDense(op, samples)
	if err != nil {
		return err
	}
	r, c := X.Dims()

	mean := make([]float64, c)
	scale := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean[j] = stat.Mean(col, nil)
		scale[j] = math.Sqrt(stat.PopVariance(col, nil))
		// 定数列はそのまま中心化だけ行う
		if scale[j] < 1e-8 {
			scale[j] = 1
		}
	}

	s.Mean, s.Scale = mean, scale
	s.state.SetDimensions(c, r)
	s.state.SetFitted()
	return nil
}

// Transform は学習済みの統計量でデータを標準化した新しいスライスを返す
func (s *StandardScaler) Transform(samples [][]float64) ([][]float64, error) {
	if err := s.state.RequireFitted("StandardScaler", "Transform"); err != nil {
		return nil, err
	}
	out := make([][]float64, len(samples))
	for i, x := range samples {
		row, err := s.TransformRow(x)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
		out[i] = row
	}
	return out, nil
}

// TransformRow は1サンプルを標準化する
func (s *StandardScaler) TransformRow(x []float64) ([]float64, error) {
	if err := s.state.RequireFitted("StandardScaler", "TransformRow"); err != nil {
		return nil, err
	}
	if len(x) != len(s.Mean) {
		return nil, errors.NewDimensionError("StandardScaler.Transform", len(s.Mean), len(x), 1)
	}
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Scale[j]
	}
	return out, nil
}

// FitTransform は訓練データで学習し、同じデータを変換する
func (s *StandardScaler) FitTransform(samples [][]float64) ([][]float64, error) {
	if err := s.Fit(samples); err != nil {
		return nil, err
	}
	return s.Transform(samples)
}

// InverseTransform は標準化されたサンプルを元のスケールに戻す
func (s *StandardScaler) InverseTransform(samples [][]float64) ([][]float64, error) {
	if err := s.state.RequireFitted("StandardScaler", "InverseTransform"); err != nil {
		return nil, err
	}
	out := make([][]float64, len(samples))
	for i, x := range samples {
		if len(x) != len(s.Mean) {
			return nil, errors.NewDimensionError("StandardScaler.InverseTransform", len(s.Mean), len(x), 1)
		}
		out[i] = make([]float64, len(x))
		for j, v := range x {
			out[i][j] = v*s.Scale[j] + s.Mean[j]
		}
	}
	return out, nil
}

// Weights は保存用の統計量を返す
func (s *StandardScaler) Weights() (*model.ScalerWeights, error) {
	if err := s.state.RequireFitted("StandardScaler", "Weights"); err != nil {
		return nil, err
	}
	return &model.ScalerWeights{
		Mean:  append([]float64(nil), s.Mean...),
		Scale: append([]float64(nil), s.Scale...),
	}, nil
}

// IsFitted は学習済みかどうかを返す
func (s *StandardScaler) IsFitted() bool {
	return s.state.IsFitted()
}

func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler()"
	}
	return fmt.Sprintf("StandardScaler(n_features=%d)", len(s.Mean))
}

func toDense(op string, samples [][]float64) (*mat.Dense, error) {
	if len(samples) == 0 || len(samples[0]) == 0 {
		return nil, errors.NewEmptyDataError(op)
	}
	c := len(samples[0])
	X := mat.NewDense(len(samples), c, nil)
	for i, x := range samples {
		if len(x) != c {
			return nil, errors.Wrapf(errors.NewDimensionError(op, c, len(x), 1), "sample %d", i)
		}
		if err := errors.CheckNumericalStability(op, x, i); err != nil {
			return nil, err
		}
		X.SetRow(i, x)
	}
	return X, nil
}
