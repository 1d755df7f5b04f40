// Package roster loads the static list of employees attendance sheets are generated for.
package roster

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Employee is a single roster entry
type Employee struct {
	FirstName string  `json:"firstName" yaml:"firstName"`
	LastName  string  `json:"lastName" yaml:"lastName"`
	Time      float64 `json:"time" yaml:"time"` // Employment factor, 1.0 = full-time
	Title     string  `json:"title,omitempty" yaml:"title,omitempty"`
	HideHours bool    `json:"hideHours,omitempty" yaml:"hideHours,omitempty"`
}

// FullName returns "First Last", used both for display and as a directory name
func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// document is the on-disk shape. "employess" is the key historical roster files use.
type document struct {
	Employess []Employee `json:"employess" yaml:"employess"`
	Employees []Employee `json:"employees" yaml:"employees"`
}

// Load reads the roster file. Format is chosen by extension: .yaml/.yml is YAML,
// anything else is JSON.
func Load(path string) ([]Employee, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster: %w", err)
	}

	var employees []Employee
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		employees, err = parseYAML(data)
	default:
		employees, err = parseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}

	if err := Validate(employees); err != nil {
		return nil, fmt.Errorf("invalid roster %s: %w", path, err)
	}

	return employees, nil
}

func parseJSON(data []byte) ([]Employee, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var employees []Employee
		if err := json.Unmarshal(trimmed, &employees); err != nil {
			return nil, err
		}
		return employees, nil
	}

	var doc document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.list(), nil
}

func parseYAML(data []byte) ([]Employee, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var employees []Employee
		if err := node.Content[0].Decode(&employees); err != nil {
			return nil, err
		}
		return employees, nil
	}

	var doc document
	if err := node.Decode(&doc); err != nil {
		return nil, err
	}
	return doc.list(), nil
}

func (d document) list() []Employee {
	if len(d.Employess) > 0 {
		return d.Employess
	}
	return d.Employees
}

// Validate checks every entry has a usable name and a positive employment factor
func Validate(employees []Employee) error {
	if len(employees) == 0 {
		return fmt.Errorf("no employees")
	}

	seen := make(map[string]int, len(employees))
	for i, e := range employees {
		name := e.FullName()
		if e.FirstName == "" || e.LastName == "" {
			return fmt.Errorf("employee #%d: firstName and lastName are required", i+1)
		}
		if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
			return fmt.Errorf("employee #%d: name %q is not usable as a directory name", i+1, name)
		}
		if e.Time <= 0 {
			return fmt.Errorf("employee %q: time must be positive, got %v", name, e.Time)
		}
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("employee %q listed twice (#%d and #%d)", name, prev, i+1)
		}
		seen[name] = i + 1
	}

	return nil
}
