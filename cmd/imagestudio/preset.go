package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/imagestudio/imagestudio/internal/imgio"
	"github.com/imagestudio/imagestudio/internal/transform"
)

// loadPreset reads a transformation configuration from a YAML file. The
// file uses the same field names as the configuration surface, e.g.:
//
//	width: 200
//	height: 200
//	preserve_aspect: true
//	grayscale: true
//	transparency:
//	  color: "#FFFFFF"
//	  tolerance: 30
func loadPreset(path string) (transform.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return transform.Config{}, &imgio.NotFoundError{Path: path, Err: err}
		}
		return transform.Config{}, err
	}

	var cfg transform.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return transform.Config{}, &transform.ConfigurationError{
			Param:  "preset",
			Reason: err.Error(),
		}
	}
	return cfg, nil
}
