package controlflow

import (
	"encoding/json"
	"fmt"
	"os"
)

// Param is a single method parameter.
type Param struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Method is one method of a parsed type, including its control-flow
// tree when the parser was asked to emit structogram input.
type Method struct {
	Name       string  `json:"name"`
	Signature  string  `json:"signature,omitempty"`
	ReturnType string  `json:"returnType,omitempty"`
	Visibility string  `json:"visibility,omitempty"`
	Static     bool    `json:"isStatic,omitempty"`
	Params     []Param `json:"params,omitempty"`
	ControlTree *Node  `json:"controlTree,omitempty"`
}

// Document is the unit of exchange with the external parser: one parsed
// type and its methods.
type Document struct {
	Name    string   `json:"name,omitempty"`
	Methods []Method `json:"methods"`
}

// ParseDocument decodes a document from JSON.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &doc, nil
}

// ReadDocumentFile reads and decodes a document from a JSON file.
func ReadDocumentFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", path, err)
	}
	return ParseDocument(data)
}

// Method returns the method with the given name, if present.
func (d *Document) Method(name string) (*Method, bool) {
	for i := range d.Methods {
		if d.Methods[i].Name == name {
			return &d.Methods[i], true
		}
	}
	return nil, false
}

// MethodNames returns the method names in document order.
func (d *Document) MethodNames() []string {
	names := make([]string, 0, len(d.Methods))
	for _, m := range d.Methods {
		names = append(names, m.Name)
	}
	return names
}
