package utils

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// ParseJSONAs unmarshals LLM-produced JSON into T. Models routinely emit
// slightly broken JSON (single quotes, unquoted keys, trailing commas), so
// when plain unmarshaling fails the content is run through jsonrepair and
// unmarshaled once more before giving up.
func ParseJSONAs[T any](content string) (T, error) {
	var result T

	err := json.Unmarshal([]byte(content), &result)
	if err == nil {
		return result, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(content)
	if repairErr != nil {
		return result, fmt.Errorf("failed to unmarshal content as %T: %w (repair also failed: %v)", result, err, repairErr)
	}

	if err := json.Unmarshal([]byte(repaired), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
	}

	return result, nil
}
