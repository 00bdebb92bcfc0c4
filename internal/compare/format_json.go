package compare

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// JSONFormatter renders a ComparisonSet with camelCase keys
type JSONFormatter struct {
	Pretty bool // indented, newline-terminated output for terminals
}

func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if !jf.Pretty {
		data, err := json.Marshal(compSet)
		if err != nil {
			return "", fmt.Errorf("failed to encode comparison of %s: %w", compSet.BaseScenarioName, err)
		}
		return string(data), nil
	}

	data, err := json.MarshalIndent(compSet, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode comparison of %s: %w", compSet.BaseScenarioName, err)
	}
	return string(data) + "\n", nil
}
