package util

import (
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYamlFile reads a YAML file and decodes its content into a value
// of type T.
func LoadYamlFile[T any](filename string) (*T, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var result T
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// JsonDumps serializes an object into a JSON string (like Python's json.dumps)
func JsonDumps(data interface{}, pretty bool) (string, error) {
	var jsonBytes []byte
	var err error

	if pretty {
		jsonBytes, err = json.MarshalIndent(data, "", "  ") // Pretty format
	} else {
		jsonBytes, err = json.Marshal(data) // Compact format
	}

	if err != nil {
		return "", err
	}
	return string(jsonBytes), nil
}
