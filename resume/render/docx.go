// Package render writes a laid out resume as a WordprocessingML package.
package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"resume-generator/resume/layout"
)

// MimeType is reported for generated files; content sniffing only sees a zip.
const MimeType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Metadata fills docProps/core.xml.
type Metadata struct {
	Title   string
	Creator string
	Created time.Time
}

// zip timestamps cannot predate 1980.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// RenderDocx writes l as a .docx file.
func RenderDocx(l layout.Layout, meta Metadata) ([]byte, error) {
	if len(l.Rows) == 0 {
		return nil, errors.New("layout has no rows")
	}
	if meta.Title == "" {
		meta.Title = l.Title
	}
	if meta.Creator == "" {
		meta.Creator = l.Author
	}

	documentXML, err := encodeXMLDocument(documentNode(l))
	if err != nil {
		return nil, fmt.Errorf("encode document.xml: %w", err)
	}
	if err := validateDocumentXMLStructure(documentXML); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	stylesXML, err := encodeXMLDocument(stylesNode(l))
	if err != nil {
		return nil, fmt.Errorf("encode styles.xml: %w", err)
	}
	coreXML, err := encodeXMLDocument(coreNode(meta))
	if err != nil {
		return nil, fmt.Errorf("encode core.xml: %w", err)
	}

	parts := []struct {
		name    string
		content []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(packageRelsXML)},
		{"word/document.xml", documentXML},
		{"word/styles.xml", stylesXML},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML)},
		{"docProps/core.xml", coreXML},
		{"docProps/app.xml", []byte(appXML)},
	}

	modified := meta.Created.UTC()
	if modified.Before(zipEpoch) {
		modified = zipEpoch
	}

	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	for _, part := range parts {
		if err := writeZipFile(writer, part.name, modified, part.content); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}

func writeZipFile(writer *zip.Writer, name string, modified time.Time, content []byte) error {
	dst, err := writer.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	})
	if err != nil {
		return err
	}
	_, err = dst.Write(content)
	return err
}

func documentNode(l layout.Layout) *xmlNode {
	width := itoa(contentWidth(l.MarginMM))
	margin := itoa(mmToTwips(l.MarginMM))

	tbl := el("w:tbl").add(
		el("w:tblPr").add(
			el("w:tblStyle", "w:val", tableStyleID),
			el("w:tblW", "w:w", width, "w:type", "dxa"),
			el("w:tblLayout", "w:type", "fixed"),
			el("w:tblLook", "w:val", "04A0", "w:firstRow", "1", "w:lastRow", "0",
				"w:firstColumn", "1", "w:lastColumn", "0", "w:noHBand", "0", "w:noVBand", "1"),
		),
		el("w:tblGrid").add(el("w:gridCol", "w:w", width)),
	)
	for _, row := range l.Rows {
		tbl.add(rowNode(row, width))
	}

	body := el("w:body").add(
		tbl,
		// Word expects a paragraph between a trailing table and sectPr.
		el("w:p"),
		el("w:sectPr").add(
			el("w:pgSz", "w:w", itoa(pageWidth), "w:h", itoa(pageHeight)),
			el("w:pgMar", "w:top", margin, "w:right", margin, "w:bottom", margin, "w:left", margin,
				"w:header", "720", "w:footer", "720", "w:gutter", "0"),
			el("w:cols", "w:space", "720"),
		),
	)
	return el("w:document", "xmlns:w", wmlNamespace, "xmlns:r", relNamespace).add(body)
}

func rowNode(row layout.Row, width string) *xmlNode {
	tr := el("w:tr")
	if row.Heading && row.HeightMM > 0 {
		tr.add(el("w:trPr").add(
			el("w:trHeight", "w:val", itoa(mmToTwips(row.HeightMM)), "w:hRule", "exact"),
		))
	}

	tcPr := el("w:tcPr").add(
		el("w:tcW", "w:w", width, "w:type", "dxa"),
		bordersNode(row.BottomBorder),
	)
	if row.VAlignBottom {
		tcPr.add(el("w:vAlign", "w:val", "bottom"))
	}

	return tr.add(el("w:tc").add(tcPr, paragraphNode(row)))
}

func bordersNode(keepBottom bool) *xmlNode {
	border := func(side string, keep bool) *xmlNode {
		if keep {
			return el("w:"+side, "w:val", "single", "w:sz", "4", "w:space", "0", "w:color", "auto")
		}
		return el("w:"+side, "w:val", "nil", "w:sz", "0", "w:space", "0", "w:color", "auto")
	}
	return el("w:tcBorders").add(
		border("top", false),
		border("left", false),
		border("bottom", keepBottom),
		border("right", false),
		border("insideH", false),
		border("insideV", false),
	)
}

func paragraphNode(row layout.Row) *xmlNode {
	p := el("w:p")
	if row.Centered {
		p.add(el("w:pPr").add(el("w:jc", "w:val", "center")))
	}
	if row.Text == "" {
		return p
	}

	style := RunStyleFor(row)
	rPr := el("w:rPr")
	if style.Bold {
		rPr.add(el("w:b"))
	}
	if style.Color != "" {
		rPr.add(el("w:color", "w:val", style.Color))
	}
	if style.Size > 0 {
		rPr.add(el("w:sz", "w:val", itoa(style.Size)), el("w:szCs", "w:val", itoa(style.Size)))
	}

	r := el("w:r")
	if len(rPr.Children) > 0 {
		r.add(rPr)
	}
	for i, line := range strings.Split(row.Text, "\n") {
		if i > 0 {
			r.add(el("w:br"))
		}
		r.add(el("w:t", "xml:space", "preserve").add(text(line)))
	}
	return p.add(r)
}
