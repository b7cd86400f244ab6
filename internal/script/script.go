// Package script reads class descriptions written in YAML and replays them as visit calls.
//
// A script describes one class. Method code is written one instruction per line, in the syntax
// the tracer prints:
//
//	methods:
//	  - access: [public, static]
//	    name: main
//	    desc: ([Ljava/lang/String;)V
//	    code:
//	      - getstatic java/lang/System.out Ljava/io/PrintStream;
//	      - ldc "hello"
//	      - invokevirtual java/io/PrintStream.println (Ljava/lang/String;)V
//	      - return
//	      - maxs 2 1
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Class is a class script.
type Class struct {
	Version             string            `yaml:"version"`
	Access              []string          `yaml:"access"`
	Name                string            `yaml:"name"`
	Signature           string            `yaml:"signature"`
	Super               string            `yaml:"super"`
	Interfaces          []string          `yaml:"interfaces"`
	Source              string            `yaml:"source"`
	Debug               string            `yaml:"debug"`
	Module              *Module           `yaml:"module"`
	NestHost            string            `yaml:"nestHost"`
	OuterClass          *OuterClass       `yaml:"outerClass"`
	Annotations         []Annotation      `yaml:"annotations"`
	Attributes          []string          `yaml:"attributes"`
	NestMembers         []string          `yaml:"nestMembers"`
	PermittedSubclasses []string          `yaml:"permittedSubclasses"`
	InnerClasses        []InnerClass      `yaml:"innerClasses"`
	RecordComponents    []RecordComponent `yaml:"recordComponents"`
	Fields              []Field           `yaml:"fields"`
	Methods             []Method          `yaml:"methods"`
}

type OuterClass struct {
	Owner  string `yaml:"owner"`
	Method string `yaml:"method"`
	Desc   string `yaml:"desc"`
}

type InnerClass struct {
	Name   string   `yaml:"name"`
	Outer  string   `yaml:"outer"`
	Inner  string   `yaml:"inner"`
	Access []string `yaml:"access"`
}

// Annotation is an annotation with its element values. TypeRef is set for type annotations.
type Annotation struct {
	Desc      string            `yaml:"desc"`
	Visible   bool              `yaml:"visible"`
	TypeRef   *int              `yaml:"typeRef"`
	TypePath  string            `yaml:"typePath"`
	Parameter *int              `yaml:"parameter"`
	Values    []AnnotationValue `yaml:"values"`
}

// AnnotationValue is one element value. Exactly one of Value, Enum, Annotation and Array is set.
type AnnotationValue struct {
	Name       string            `yaml:"name"`
	Value      string            `yaml:"value"` // constant literal, same syntax as ldc, or true / false
	Enum       string            `yaml:"enum"`  // Ldesc;.CONSTANT
	Annotation *Annotation       `yaml:"annotation"`
	Array      []AnnotationValue `yaml:"array"`
}

type RecordComponent struct {
	Name        string       `yaml:"name"`
	Desc        string       `yaml:"desc"`
	Signature   string       `yaml:"signature"`
	Annotations []Annotation `yaml:"annotations"`
	Attributes  []string     `yaml:"attributes"`
}

type Field struct {
	Access      []string     `yaml:"access"`
	Name        string       `yaml:"name"`
	Desc        string       `yaml:"desc"`
	Signature   string       `yaml:"signature"`
	Value       string       `yaml:"value"` // constant literal
	Annotations []Annotation `yaml:"annotations"`
	Attributes  []string     `yaml:"attributes"`
}

type Parameter struct {
	Name   string   `yaml:"name"`
	Access []string `yaml:"access"`
}

type Method struct {
	Access            []string         `yaml:"access"`
	Name              string           `yaml:"name"`
	Desc              string           `yaml:"desc"`
	Signature         string           `yaml:"signature"`
	Exceptions        []string         `yaml:"exceptions"`
	Parameters        []Parameter      `yaml:"parameters"`
	AnnotationDefault *AnnotationValue `yaml:"annotationDefault"`
	Annotations       []Annotation     `yaml:"annotations"`
	Attributes        []string         `yaml:"attributes"`
	Code              []string         `yaml:"code"`
}

type Module struct {
	Name      string    `yaml:"name"`
	Access    []string  `yaml:"access"`
	Version   string    `yaml:"version"`
	MainClass string    `yaml:"mainClass"`
	Packages  []string  `yaml:"packages"`
	Requires  []Require `yaml:"requires"`
	Exports   []Export  `yaml:"exports"`
	Opens     []Export  `yaml:"opens"`
	Uses      []string  `yaml:"uses"`
	Provides  []Provide `yaml:"provides"`
}

type Require struct {
	Module  string   `yaml:"module"`
	Access  []string `yaml:"access"`
	Version string   `yaml:"version"`
}

type Export struct {
	Package string   `yaml:"package"`
	Access  []string `yaml:"access"`
	To      []string `yaml:"to"`
}

type Provide struct {
	Service string   `yaml:"service"`
	With    []string `yaml:"with"`
}

// Parse decodes a class script. Unknown keys are rejected.
func Parse(data []byte) (*Class, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var c Class
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty class script")
		}
		return nil, fmt.Errorf("failed to decode class script, %w", err)
	}
	return &c, nil
}

// Load reads and decodes the class script at path.
func Load(path string) (*Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}
