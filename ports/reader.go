package ports

import (
	"carelens/domain/dataset"
)

// DatasetReader materializes a dataset into uniform in-memory records.
// The engine itself never touches files or databases; readers live at the
// edges and hand the engine a finished Dataset.
type DatasetReader interface {
	// Read loads the full dataset. Failures to produce uniform records
	// surface as data load errors before any check executes.
	Read() (*dataset.Dataset, error)
}
