// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/transcript-extract/pkg/types"
)

const docxBodyPart = "word/document.xml"

// WordprocessingML namespaces: transitional and strict.
var wordNamespaces = map[string]bool{
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main": true,
	"http://purl.oclc.org/ooxml/wordprocessingml/main":             true,
}

// extractDOCX returns the document's non-blank body paragraphs followed by
// its table rows (cells joined with " | "), separated by blank lines.
func (e *Extractor) extractDOCX(path string) (string, error) {
	paragraphs, rows, err := readDOCX(path)
	if err != nil {
		e.logger.Error("docx extraction failed", zap.String("path", path), zap.Error(err))
		return "", err
	}

	parts := make([]string, 0, len(paragraphs)+len(rows))
	for _, p := range paragraphs {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	parts = append(parts, rows...)
	return strings.Join(parts, "\n\n"), nil
}

func readDOCX(path string) (paragraphs, rows []string, err error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, ioError(path, err, types.KindMalformedDocument)
	}
	defer zr.Close()

	var body *zip.File
	for _, f := range zr.File {
		if f.Name == docxBodyPart {
			body = f
			break
		}
	}
	if body == nil {
		return nil, nil, newError(types.KindMalformedDocument, path, fmt.Errorf("missing %s", docxBodyPart))
	}

	rc, err := body.Open()
	if err != nil {
		return nil, nil, newError(types.KindMalformedDocument, path, fmt.Errorf("opening %s: %w", docxBodyPart, err))
	}
	defer rc.Close()

	paragraphs, rows, err = parseDocumentXML(rc)
	if err != nil {
		return nil, nil, newError(types.KindMalformedDocument, path, fmt.Errorf("parsing %s: %w", docxBodyPart, err))
	}
	return paragraphs, rows, nil
}

// docxWalker tracks where the decoder is in the document tree. Only
// paragraphs that are direct children of w:body count as paragraphs, and
// only tables that are direct children of w:body contribute rows. Text in
// nested tables, text boxes, and non-Word namespaces (e.g. math) is skipped.
type docxWalker struct {
	stack []string

	tableLevel   int
	tableTracked bool
	rowActive    bool
	cellActive   bool

	paraLevel int
	paraKind  paraKind
	inText    bool
	text      strings.Builder

	cells     []string
	cellParas []string
	cellSpan  int
	cellMerge bool

	// prevCells is the previous row of the current top-level table, one
	// entry per grid column, used to fill vertically merged cells.
	prevCells []string

	paragraphs []string
	rows       []string
}

type paraKind int

const (
	paraIgnored paraKind = iota
	paraBody
	paraCell
)

func parseDocumentXML(r io.Reader) (paragraphs, rows []string, err error) {
	w := &docxWalker{}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			w.start(t)
		case xml.EndElement:
			w.end()
		case xml.CharData:
			if w.inText {
				w.text.Write(t)
			}
		}
	}
	return w.paragraphs, w.rows, nil
}

func (w *docxWalker) parent() string {
	if len(w.stack) == 0 {
		return ""
	}
	return w.stack[len(w.stack)-1]
}

func (w *docxWalker) collecting() bool {
	return w.paraLevel == 1 && w.paraKind != paraIgnored
}

func (w *docxWalker) start(el xml.StartElement) {
	name := ""
	if wordNamespaces[el.Name.Space] {
		name = el.Name.Local
	}
	parent := w.parent()

	switch name {
	case "tbl":
		w.tableLevel++
		if w.tableLevel == 1 {
			w.tableTracked = parent == "body"
			w.prevCells = w.prevCells[:0]
		}
	case "tr":
		if w.tableLevel == 1 && w.tableTracked {
			w.rowActive = true
			w.cells = w.cells[:0]
		}
	case "tc":
		if w.tableLevel == 1 && w.rowActive {
			w.cellActive = true
			w.cellParas = w.cellParas[:0]
			w.cellSpan = 1
			w.cellMerge = false
		}
	case "gridSpan":
		if w.tableLevel == 1 && w.cellActive {
			for _, a := range el.Attr {
				if a.Name.Local != "val" {
					continue
				}
				if n, err := strconv.Atoi(a.Value); err == nil && n > 1 {
					w.cellSpan = n
				}
			}
		}
	case "vMerge":
		// A vMerge without val="restart" continues the cell above.
		if w.tableLevel == 1 && w.cellActive {
			w.cellMerge = true
			for _, a := range el.Attr {
				if a.Name.Local == "val" && a.Value == "restart" {
					w.cellMerge = false
				}
			}
		}
	case "p":
		w.paraLevel++
		if w.paraLevel == 1 {
			w.text.Reset()
			switch {
			case parent == "body":
				w.paraKind = paraBody
			case parent == "tc" && w.tableLevel == 1 && w.cellActive:
				w.paraKind = paraCell
			default:
				w.paraKind = paraIgnored
			}
		}
	case "t":
		if w.collecting() {
			w.inText = true
		}
	case "tab":
		if w.collecting() && parent == "r" {
			w.text.WriteByte('\t')
		}
	case "br", "cr":
		if w.collecting() && parent == "r" {
			w.text.WriteByte('\n')
		}
	}

	w.stack = append(w.stack, name)
}

func (w *docxWalker) end() {
	if len(w.stack) == 0 {
		return
	}
	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]

	switch name {
	case "t":
		w.inText = false
	case "p":
		if w.paraLevel == 1 {
			switch w.paraKind {
			case paraBody:
				w.paragraphs = append(w.paragraphs, w.text.String())
			case paraCell:
				w.cellParas = append(w.cellParas, w.text.String())
			}
			w.paraKind = paraIgnored
		}
		w.paraLevel--
	case "tc":
		if w.tableLevel == 1 && w.cellActive {
			cell := strings.Join(w.cellParas, "\n")
			if col := len(w.cells); w.cellMerge && col < len(w.prevCells) {
				cell = w.prevCells[col]
			}
			for i := 0; i < w.cellSpan; i++ {
				w.cells = append(w.cells, cell)
			}
			w.cellActive = false
		}
	case "tr":
		if w.tableLevel == 1 && w.rowActive {
			w.rows = append(w.rows, strings.Join(w.cells, " | "))
			w.prevCells = append(w.prevCells[:0], w.cells...)
			w.rowActive = false
		}
	case "tbl":
		if w.tableLevel == 1 {
			w.tableTracked = false
		}
		w.tableLevel--
	}
}
