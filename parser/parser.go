// Package parser wandelt XML-, JSON- und YAML-Dokumente in models.Record um.
package parser

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	"legal-info/models"

	"github.com/clbanning/mxj/v2"
	"golang.org/x/net/html/charset"
)

var (
	ErrUnsupportedContentType = errors.New("content type not supported")
	ErrRowsNotFound           = errors.New("rows not found in document")
)

// Format ist das Eingabeformat eines Dokuments.
type Format string

const (
	FormatXML  Format = "xml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func init() {
	// mxj hat nur globale Konfiguration; der Decoder akzeptiert z.B. windows-1251.
	dec := xml.NewDecoder(nil)
	dec.Strict = false
	dec.CharsetReader = charset.NewReaderLabel
	mxj.CustomDecoder = dec
}

// FormatFromContentType ordnet einen Content-Type (mit oder ohne Parameter) einem Format zu.
func FormatFromContentType(contentType string) (Format, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}
	switch mediaType {
	case "application/xml", "text/xml":
		return FormatXML, nil
	case "application/json":
		return FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, contentType)
}

// FormatFromFilename ordnet eine Dateiendung einem Format zu.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".xml":
		return FormatXML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedContentType, name)
}

// Parser liest Dokumente; rowPath gibt an, wo im XML die Datensätze liegen.
type Parser struct {
	rowPath []string
}

func New(rowPath []string) *Parser {
	return &Parser{rowPath: rowPath}
}

// Parse dekodiert data im gegebenen Format.
func (p *Parser) Parse(format Format, data []byte) (models.Record, error) {
	switch format {
	case FormatXML:
		return p.ParseXML(data)
	case FormatJSON:
		return DecodeJSON(bytes.NewReader(data))
	case FormatYAML:
		return DecodeYAML(data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedContentType, format)
}

// ParseXML liefert die Zeilen unter rowPath: ein Mapping bei einer Zeile,
// eine Sequence bei mehreren.
func (p *Parser) ParseXML(data []byte) (models.Record, error) {
	root, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	var node any = map[string]any(root)
	for _, segment := range p.rowPath {
		m, ok := node.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrRowsNotFound, strings.Join(p.rowPath, "."))
		}
		if node, ok = m[segment]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrRowsNotFound, strings.Join(p.rowPath, "."))
		}
	}
	return models.FromAny(node), nil
}
