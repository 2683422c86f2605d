package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/pla/pkg/errors"
	"github.com/YuminosukeSato/pla/pkg/log"
)

// LastColumn selects the final column of each record as the label.
const LastColumn = -1

// CSVOptions controls how LoadCSV maps records to samples.
type CSVOptions struct {
	// HasHeader treats the first record as column names.
	HasHeader bool

	// LabelColumn is the 0-based index of the label column. Negative values
	// count from the end, so LastColumn is the final column.
	LabelColumn int

	// Unlabelled reads every column as a feature and leaves Labels nil.
	Unlabelled bool

	// ZeroAsNegative maps a 0 label to -1 so 0/1 encoded files can be used.
	ZeroAsNegative bool

	// Comma is the field delimiter; ',' when zero.
	Comma rune
}

// DefaultCSVOptions reads headerless, comma separated files with the label in
// the last column.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{LabelColumn: LastColumn, Comma: ','}
}

// LoadCSV reads a dataset from r. Every field must parse as a float; blank
// lines are skipped. The result is validated before it is returned.
func LoadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	const op = "dataset.LoadCSV"

	reader := csv.NewReader(bufio.NewReader(r))
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	ds := &Dataset{}
	if !opts.Unlabelled {
		ds.Labels = []float64{}
	}

	width := -1
	labelCol := -1
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "%s: record %d", op, line), errors.ErrInvalidInput)
		}

		if width < 0 {
			width = len(rec)
			if !opts.Unlabelled {
				labelCol, err = resolveLabelColumn(opts.LabelColumn, width)
				if err != nil {
					return nil, err
				}
			}
			if opts.HasHeader {
				ds.Features = headerNames(rec, labelCol)
				continue
			}
		}

		sample, label, err := parseRecord(rec, labelCol)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: record %d", op, line)
		}
		if label == 0 && opts.ZeroAsNegative {
			label = -1
		}
		ds.Samples = append(ds.Samples, sample)
		if !opts.Unlabelled {
			ds.Labels = append(ds.Labels, label)
		}
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// LoadCSVFile opens path and reads it with LoadCSV.
func LoadCSVFile(path string, opts CSVOptions) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open dataset %s", path)
	}
	defer file.Close()

	ds, err := LoadCSV(file, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	log.GetLoggerWithName("dataset").Debug("Dataset loaded",
		log.DataPathKey, path,
		log.SamplesKey, ds.Len(),
		log.FeaturesKey, ds.NumFeatures(),
	)
	return ds, nil
}

func resolveLabelColumn(col, width int) (int, error) {
	if col < 0 {
		col += width
	}
	if col < 0 || col >= width {
		return 0, errors.NewValidationError("label_column", "outside the record", col)
	}
	if width < 2 {
		return 0, errors.NewValueError("dataset.LoadCSV", "labelled records need at least one feature column")
	}
	return col, nil
}

func headerNames(rec []string, labelCol int) []string {
	names := make([]string, 0, len(rec))
	for i, name := range rec {
		if i == labelCol {
			continue
		}
		names = append(names, strings.TrimSpace(name))
	}
	return names
}

// parseRecord splits a record into features and label. labelCol < 0 means
// the record has no label.
func parseRecord(rec []string, labelCol int) ([]float64, float64, error) {
	n := len(rec)
	if labelCol >= 0 {
		n--
	}
	sample := make([]float64, 0, n)
	var label float64
	for i, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, 0, errors.Mark(errors.Wrapf(err, "column %d", i), errors.ErrInvalidInput)
		}
		if i == labelCol {
			label = v
			continue
		}
		sample = append(sample, v)
	}
	return sample, label, nil
}

// WriteCSV writes ds to w with the label, if any, in the last column. A
// header is written when ds has feature names.
func WriteCSV(w io.Writer, ds *Dataset) error {
	writer := csv.NewWriter(w)

	if ds.Features != nil {
		header := append([]string(nil), ds.Features...)
		if ds.Labelled() {
			header = append(header, "label")
		}
		if err := writer.Write(header); err != nil {
			return errors.Wrap(err, "write header")
		}
	}

	rec := make([]string, 0, ds.NumFeatures()+1)
	for i, s := range ds.Samples {
		rec = rec[:0]
		for _, v := range s {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if ds.Labelled() {
			rec = append(rec, strconv.FormatFloat(ds.Labels[i], 'g', -1, 64))
		}
		if err := writer.Write(rec); err != nil {
			return errors.Wrapf(err, "write sample %d", i)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "flush csv")
}

// WriteCSVFile writes ds to path, replacing any existing file.
func WriteCSVFile(path string, ds *Dataset) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer file.Close()

	if err := WriteCSV(file, ds); err != nil {
		return err
	}
	return file.Close()
}
