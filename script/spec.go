// Package script loads scenes from YAML files: the entities to place and the
// behavior trees to run on them. Loop conditions are tengo expressions.
//
// A minimal scene file:
//
//	entities:
//	  - name: logo
//	    image: assets/logo.png
//	    x: 150
//	    y: 150
//	    behaviors:
//	      - sequence:
//	          - scale_to: {duration: 2, x: 0.5, y: 0.5}
//	            ease: OutCubic
//	          - wait: 0.5
//	          - fade_out: {duration: 0.3}
//	      - repeat:
//	          times: 3
//	          do:
//	            rotate_by: {duration: 1, angle: 360}
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidNode is wrapped by every error about a malformed behavior node.
var ErrInvalidNode = errors.New("script: invalid behavior node")

// Document is the top-level structure of a scene file.
type Document struct {
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec places one entity. Image is a path resolved by the content
// loader; when it is empty, Width and Height give an imageless content of
// that size.
type EntitySpec struct {
	Name      string     `yaml:"name"`
	Image     string     `yaml:"image"`
	Width     int        `yaml:"width"`
	Height    int        `yaml:"height"`
	X         float64    `yaml:"x"`
	Y         float64    `yaml:"y"`
	Scale     *float64   `yaml:"scale"`
	Rotation  float64    `yaml:"rotation"`
	Alpha     *float64   `yaml:"alpha"`
	Behaviors []NodeSpec `yaml:"behaviors"`
}

// ActionSpec carries the parameters of every action form. Unused fields are
// ignored: scale and move actions read X and Y, rotations read Angle,
// fade_to reads Alpha and blink reads Times.
type ActionSpec struct {
	Duration float64 `yaml:"duration"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Angle    float64 `yaml:"angle"`
	Alpha    float64 `yaml:"alpha"`
	Times    int     `yaml:"times"`
}

// WhileSpec is a do-while loop with a tengo condition.
type WhileSpec struct {
	Cond string    `yaml:"cond"`
	Do   *NodeSpec `yaml:"do"`
}

// RepeatSpec runs Do a fixed number of times.
type RepeatSpec struct {
	Times int       `yaml:"times"`
	Do    *NodeSpec `yaml:"do"`
}

// NodeSpec is one behavior node. Exactly one form must be set; Ease may
// accompany any action form.
type NodeSpec struct {
	ScaleTo  *ActionSpec `yaml:"scale_to"`
	ScaleBy  *ActionSpec `yaml:"scale_by"`
	MoveTo   *ActionSpec `yaml:"move_to"`
	MoveBy   *ActionSpec `yaml:"move_by"`
	RotateTo *ActionSpec `yaml:"rotate_to"`
	RotateBy *ActionSpec `yaml:"rotate_by"`
	FadeIn   *ActionSpec `yaml:"fade_in"`
	FadeOut  *ActionSpec `yaml:"fade_out"`
	FadeTo   *ActionSpec `yaml:"fade_to"`
	Blink    *ActionSpec `yaml:"blink"`
	Ease     string      `yaml:"ease"`

	Wait        *float64    `yaml:"wait"`
	WaitForever bool        `yaml:"wait_forever"`
	Sequence    []NodeSpec  `yaml:"sequence"`
	While       *WhileSpec  `yaml:"while"`
	Repeat      *RepeatSpec `yaml:"repeat"`
}

// Load reads and parses a scene file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a scene document. Unknown keys are rejected so typos in
// node forms surface as errors rather than silently empty nodes.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("unmarshal: empty document")
		}
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	return &doc, nil
}
