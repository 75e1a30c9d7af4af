package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads and unmarshals one embedded game-data file.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read game data %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse game data %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad reads and unmarshals an embedded game-data file, panicking on
// error. The room table is compiled in, so a load failure is a build defect,
// not a runtime condition.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
