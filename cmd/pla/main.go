// Command pla trains, applies and plots perceptron classifiers on CSV data.
//
//	pla generate --kind separable --n 200 --seed 1 --out train.csv
//	pla train --data train.csv --header --out model.json --seed 42
//	pla predict --model model.json --data train.csv --header
//	pla plot --model model.json --data train.csv --header --out boundary.png
package main

import (
	"fmt"
	"os"

	"github.com/YuminosukeSato/pla/pkg/errors"
)

func main() {
	err := errors.SafeExecute("pla", func() error {
		return newRootCmd(os.Stdout, os.Stderr).Execute()
	})
	if err != nil {
		var panicErr *errors.PanicError
		if errors.As(err, &panicErr) {
			fmt.Fprintln(os.Stderr, panicErr.String())
		}
		os.Exit(1)
	}
}
