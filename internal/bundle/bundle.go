// Package bundle loads templated manifest bundles from disk. A bundle is a
// directory with a Bundle.yaml, an optional values.yaml and a templates/
// directory whose files are rendered through text/template with the sprig
// function map before being parsed into resources.
package bundle

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/goccy/go-yaml"

	"konverge/internal/resource"
)

// Metadata is the Bundle.yaml header.
type Metadata struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description,omitempty"`
}

// Bundle is a loaded, rendered manifest bundle.
type Bundle struct {
	Path      string
	Meta      Metadata
	Values    map[string]interface{}
	Resources *resource.List
}

// Load reads, renders and parses the bundle at path.
func Load(path string) (*Bundle, error) {
	b := &Bundle{Path: path}

	if err := b.loadMetadata(); err != nil {
		return nil, err
	}
	if err := b.loadValues(); err != nil {
		return nil, err
	}
	if err := b.renderTemplates(); err != nil {
		return nil, err
	}
	b.applyLabels()
	return b, nil
}

func (b *Bundle) loadMetadata() error {
	data, err := os.ReadFile(filepath.Join(b.Path, "Bundle.yaml"))
	if err != nil {
		return fmt.Errorf("failed to read Bundle.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &b.Meta); err != nil {
		return fmt.Errorf("failed to parse Bundle.yaml: %w", err)
	}
	if b.Meta.Name == "" {
		return fmt.Errorf("Bundle.yaml has no name")
	}
	return nil
}

// loadValues reads values.yaml when present; a bundle without values is
// fine.
func (b *Bundle) loadValues() error {
	data, err := os.ReadFile(filepath.Join(b.Path, "values.yaml"))
	if os.IsNotExist(err) {
		b.Values = map[string]interface{}{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read values.yaml: %w", err)
	}
	if err := yaml.Unmarshal(data, &b.Values); err != nil {
		return fmt.Errorf("failed to parse values.yaml: %w", err)
	}
	return nil
}

// renderTemplates walks templates/, renders every YAML file and collects the
// parsed resources in file walk order.
func (b *Bundle) renderTemplates() error {
	templatesDir := filepath.Join(b.Path, "templates")

	context := map[string]interface{}{
		"Values": b.Values,
		"Bundle": map[string]interface{}{
			"Name":    b.Meta.Name,
			"Version": b.Meta.Version,
		},
	}

	list := resource.NewList()
	err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		rendered, err := b.renderFile(path, context)
		if err != nil {
			return err
		}
		entity, err := resource.ParseYAML(rendered)
		if err != nil {
			return fmt.Errorf("failed to parse rendered template %s: %w", path, err)
		}
		list.Append(entity)
		return nil
	})
	if err != nil {
		return err
	}

	b.Resources = list
	return nil
}

func (b *Bundle) renderFile(path string, context map[string]interface{}) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}

	tmpl, err := template.
		New(filepath.Base(path)).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", path, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, context); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// applyLabels stamps the standard bundle labels on every rendered resource,
// merging with whatever the templates already set.
func (b *Bundle) applyLabels() {
	standard := StandardLabels(b.Meta.Name, b.Meta.Version)
	for _, r := range b.Resources.Resources() {
		labels := r.GetLabels()
		if labels == nil {
			labels = make(map[string]string, len(standard))
		}
		for k, v := range standard {
			labels[k] = v
		}
		r.SetLabels(labels)
	}
}
