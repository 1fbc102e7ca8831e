package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/archetype-tools/proteusview/internal/model"
)

// JSONParser handles the JSON encoding used by the HTTP API.
type JSONParser struct{}

type jsonObject struct {
	ID         string         `json:"id"`
	Classes    []string       `json:"classes"`
	Properties []jsonProperty `json:"properties,omitempty"`
	Children   []jsonObject   `json:"children,omitempty"`
}

type jsonProperty struct {
	Name     string      `json:"name"`
	Category string      `json:"category,omitempty"`
	Value    string      `json:"value,omitempty"`
	Tooltip  string      `json:"tooltip,omitempty"`
	Traces   []jsonTrace `json:"traces,omitempty"`
}

type jsonTrace struct {
	Target string `json:"target"`
	Type   string `json:"type,omitempty"`
}

func (p *JSONParser) Parse(r io.Reader) (*model.Document, error) {
	var root jsonObject
	dec := json.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	doc, err := model.NewDocument(buildJSONObject(root))
	if err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}
	return doc, nil
}

func buildJSONObject(j jsonObject) *model.Object {
	o := &model.Object{
		ID:      j.ID,
		Classes: j.Classes,
	}
	for _, jp := range j.Properties {
		prop := model.Property{
			Name:     jp.Name,
			Category: propertyCategory(jp.Category),
			Value:    jp.Value,
			Tooltip:  jp.Tooltip,
		}
		for _, t := range jp.Traces {
			prop.Traces = append(prop.Traces, model.Trace{Target: t.Target, Type: t.Type})
		}
		o.Properties = append(o.Properties, prop)
	}
	for _, jc := range j.Children {
		o.Children = append(o.Children, buildJSONObject(jc))
	}
	return o
}
