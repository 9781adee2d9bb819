package io

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"os"

	jsonpatch "github.com/evanphx/json-patch"
	"gopkg.in/yaml.v3"

	"sk2pmml/pkg/graph"
	"sk2pmml/pkg/pmml"
)

// LoadGraph decodes a YAML (or JSON) model graph document.
func LoadGraph(input io.Reader) (*graph.Node, error) {
	var root map[string]interface{}
	if err := yaml.NewDecoder(input).Decode(&root); err != nil {
		return nil, fmt.Errorf("error decoding model graph: %w", err)
	}
	return graph.FromMap(root)
}

func LoadGraphFile(path string) (*graph.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening model graph: %w", err)
	}
	defer f.Close()
	return LoadGraph(f)
}

// ApplyPatch applies a JSON merge patch (RFC 7386) to the graph rooted at node.
// Non-finite numbers survive the round trip as "nan", "inf" and "-inf" strings.
func ApplyPatch(node *graph.Node, patch []byte) (*graph.Node, error) {
	doc, err := json.Marshal(finite(node.ToMap()))
	if err != nil {
		return nil, fmt.Errorf("error encoding model graph: %w", err)
	}
	if patch, err = yamlToJSON(patch); err != nil {
		return nil, err
	}
	patched, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, fmt.Errorf("error applying patch: %w", err)
	}
	var root map[string]interface{}
	if err := json.Unmarshal(patched, &root); err != nil {
		return nil, fmt.Errorf("error decoding patched model graph: %w", err)
	}
	return graph.FromMap(root)
}

func ApplyPatchFile(node *graph.Node, path string) (*graph.Node, error) {
	patch, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading patch: %w", err)
	}
	return ApplyPatch(node, patch)
}

// yamlToJSON lets patches be written in YAML as well.
func yamlToJSON(data []byte) ([]byte, error) {
	if json.Valid(data) {
		return data, nil
	}
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("error decoding patch: %w", err)
	}
	result, err := json.Marshal(finite(v))
	if err != nil {
		return nil, fmt.Errorf("error encoding patch: %w", err)
	}
	return result, nil
}

func finite(v interface{}) interface{} {
	switch x := v.(type) {
	case float64:
		switch {
		case math.IsNaN(x):
			return "nan"
		case math.IsInf(x, 1):
			return "inf"
		case math.IsInf(x, -1):
			return "-inf"
		}
	case map[string]interface{}:
		result := make(map[string]interface{}, len(x))
		for k, e := range x {
			result[k] = finite(e)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(x))
		for i, e := range x {
			result[i] = finite(e)
		}
		return result
	}
	return v
}

// SaveDocument writes doc as indented XML with a declaration.
func SaveDocument(doc *pmml.PMML, writer io.Writer) error {
	if _, err := io.WriteString(writer, xml.Header); err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}
	encoder := xml.NewEncoder(writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}
	if _, err := io.WriteString(writer, "\n"); err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}
	return nil
}

// SaveDocumentFile encodes doc completely before creating path, so a failed encode leaves no file behind.
func SaveDocumentFile(doc *pmml.PMML, path string) error {
	var buf bytes.Buffer
	if err := SaveDocument(doc, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}
	return nil
}
