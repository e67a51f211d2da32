package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ghodss/yaml"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
)

// printOutput renders obj as yaml or json, or calls table for the default format.
func printOutput(output string, obj any, table func(*uitable.Table)) error {
	switch strings.ToLower(output) {
	case "table":
		t := uitable.New()
		t.MaxColWidth = 60
		table(t)
		fmt.Println(t)

	case "yaml":
		yamlBytes, err := yaml.Marshal(obj)
		if err != nil {
			return errors.Wrap(err, "error formatting output")
		}
		fmt.Println(string(yamlBytes))

	case "json":
		prettyJSON, err := json.MarshalIndent(obj, "", "  ")
		if err != nil {
			return errors.Wrap(err, "error formatting output")
		}
		fmt.Println(string(prettyJSON))

	default:
		return errors.Errorf("unknown output format %q", output)
	}
	return nil
}
