package report

import (
	"fmt"
	"os"
)

// SequenceDump is the per-tick active track list.
type SequenceDump struct {
	DecisionRate int   `json:"decision_rate"`
	Sequence     []int `json:"sequence"`
}

// WriteSequenceFile writes the active sequence as JSON to path.
func WriteSequenceFile(path string, decisionRate int, sequence []int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create sequence dump: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close sequence dump: %w", cerr)
		}
	}()

	if sequence == nil {
		sequence = []int{}
	}
	return WriteJSON(f, SequenceDump{DecisionRate: decisionRate, Sequence: sequence})
}
