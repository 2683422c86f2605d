package model

import (
	"io"
	"os"

	"github.com/YuminosukeSato/pla/pkg/errors"
)

// SaveWeights はモデルの重みをJSONファイルに保存する
//
// 使用例:
//
//	p, _ := perceptron.New()
//	// ... p.Fit(samples, labels) ...
//	err := model.SaveWeights(p, "model.json")
func SaveWeights(m WeightExporter, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create model file %s", filename)
	}
	defer file.Close()

	if err := SaveWeightsToWriter(m, file); err != nil {
		return err
	}
	return file.Close()
}

// LoadWeights はJSONファイルから重みを読み込みモデルへインポートする
func LoadWeights(m WeightExporter, filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "open model file %s", filename)
	}
	defer file.Close()

	return LoadWeightsFromReader(m, file)
}

// SaveWeightsToWriter はモデルの重みをio.Writerに書き出す
func SaveWeightsToWriter(m WeightExporter, w io.Writer) error {
	weights, err := m.ExportWeights()
	if err != nil {
		return err
	}
	return EncodeWeights(weights, w)
}

// WriteWeights はエクスポート済みの重みをJSONファイルに保存する
func WriteWeights(weights *ModelWeights, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "create model file %s", filename)
	}
	defer file.Close()

	if err := EncodeWeights(weights, file); err != nil {
		return err
	}
	return file.Close()
}

// EncodeWeights は重みを検証してからJSONとしてio.Writerに書き出す
func EncodeWeights(weights *ModelWeights, w io.Writer) error {
	if err := weights.Validate(); err != nil {
		return err
	}
	data, err := weights.ToJSON()
	if err != nil {
		return errors.Wrap(err, "encode model weights")
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return errors.Wrap(err, "write model weights")
	}
	return nil
}

// LoadWeightsFromReader はio.Readerから重みを読み込みモデルへインポートする
func LoadWeightsFromReader(m WeightExporter, r io.Reader) error {
	weights, err := DecodeWeights(r)
	if err != nil {
		return err
	}
	return m.ImportWeights(weights)
}

// DecodeWeights はio.Readerから重みを読み込み検証する（モデルへはインポートしない）
func DecodeWeights(r io.Reader) (*ModelWeights, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read model weights")
	}
	weights := &ModelWeights{}
	if err := weights.FromJSON(data); err != nil {
		return nil, err
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return weights, nil
}

// ReadWeights はJSONファイルから重みを読み込む
func ReadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "open model file %s", filename)
	}
	defer file.Close()

	return DecodeWeights(file)
}
