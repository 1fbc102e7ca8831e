package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/archetype-tools/proteusview/internal/model"
)

// XMLParser handles Proteus XML documents: a single <object> root with
// nested <properties> and <children> blocks. Class tags come from the
// classes attribute, ordered general to most specific.
type XMLParser struct{}

type xmlObject struct {
	ID         string        `xml:"id,attr"`
	Classes    string        `xml:"classes,attr"`
	Properties []xmlProperty `xml:"properties>property"`
	Children   []xmlObject   `xml:"children>object"`
}

type xmlProperty struct {
	Name     string     `xml:"name,attr"`
	Category string     `xml:"category,attr"`
	Tooltip  string     `xml:"tooltip,attr"`
	Value    string     `xml:",chardata"`
	Traces   []xmlTrace `xml:"trace"`
}

type xmlTrace struct {
	Target string `xml:"target,attr"`
	Type   string `xml:"type,attr"`
}

func (p *XMLParser) Parse(r io.Reader) (*model.Document, error) {
	var root xmlObject
	dec := xml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	doc, err := model.NewDocument(buildObject(root))
	if err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}
	return doc, nil
}

func buildObject(x xmlObject) *model.Object {
	o := &model.Object{
		ID:      x.ID,
		Classes: strings.Fields(x.Classes),
	}
	for _, xp := range x.Properties {
		prop := model.Property{
			Name:     xp.Name,
			Category: propertyCategory(xp.Category),
			Tooltip:  xp.Tooltip,
		}
		if prop.Category == model.CategoryTrace {
			for _, t := range xp.Traces {
				prop.Traces = append(prop.Traces, model.Trace{Target: t.Target, Type: t.Type})
			}
		} else {
			prop.Value = strings.TrimSpace(xp.Value)
		}
		o.Properties = append(o.Properties, prop)
	}
	for _, xc := range x.Children {
		o.Children = append(o.Children, buildObject(xc))
	}
	return o
}

// propertyCategory maps the serialized category to the model, defaulting
// unknown categories to plain strings so documents from newer archetype
// sets still render through the generic fallback.
func propertyCategory(s string) model.PropertyCategory {
	switch model.PropertyCategory(s) {
	case model.CategoryString, model.CategoryMarkdown, model.CategoryDate,
		model.CategoryFloat, model.CategoryBoolean, model.CategoryEnum,
		model.CategoryFile, model.CategoryURL, model.CategoryTrace:
		return model.PropertyCategory(s)
	default:
		return model.CategoryString
	}
}
