// Package artifact reads the JSON and CSV records emitted by the
// simulation runs. The shapes are owned by the producing system; loaders
// here validate loosely and treat missing keys as absent data.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
)

func readJSON(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("error parsing %s: %w", path, err)
	}
	return nil
}
