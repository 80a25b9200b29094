package render

import (
	"time"

	"resume-generator/resume/layout"
)

const contentTypesXML = xmlHeader +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xmlHeader +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const appXML = xmlHeader +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>resume-generator</Application>` +
	`</Properties>`

// requiredParts must be present in every generated package.
var requiredParts = []string{
	"[Content_Types].xml",
	"_rels/.rels",
	"word/document.xml",
	"word/styles.xml",
	"word/_rels/document.xml.rels",
	"docProps/core.xml",
	"docProps/app.xml",
}

func stylesNode(l layout.Layout) *xmlNode {
	size := itoa(halfPoints(l.FontSize))
	fonts := func() *xmlNode {
		return el("w:rFonts", "w:ascii", l.FontName, "w:hAnsi", l.FontName, "w:eastAsia", l.FontName, "w:cs", l.FontName)
	}
	tableBorder := func(side string) *xmlNode {
		return el("w:"+side, "w:val", "single", "w:sz", "4", "w:space", "0", "w:color", "auto")
	}

	return el("w:styles", "xmlns:w", wmlNamespace).add(
		el("w:docDefaults").add(
			el("w:rPrDefault").add(el("w:rPr").add(
				fonts(),
				el("w:sz", "w:val", size),
				el("w:szCs", "w:val", size),
			)),
			el("w:pPrDefault").add(el("w:pPr").add(
				el("w:spacing", "w:after", "0", "w:line", "240", "w:lineRule", "auto"),
			)),
		),
		el("w:style", "w:type", "paragraph", "w:default", "1", "w:styleId", "Normal").add(
			el("w:name", "w:val", "Normal"),
			el("w:qFormat"),
			el("w:rPr").add(fonts(), el("w:sz", "w:val", size), el("w:szCs", "w:val", size)),
		),
		el("w:style", "w:type", "table", "w:default", "1", "w:styleId", "TableNormal").add(
			el("w:name", "w:val", "Normal Table"),
			el("w:tblPr").add(el("w:tblCellMar").add(
				el("w:top", "w:w", "0", "w:type", "dxa"),
				el("w:left", "w:w", "108", "w:type", "dxa"),
				el("w:bottom", "w:w", "0", "w:type", "dxa"),
				el("w:right", "w:w", "108", "w:type", "dxa"),
			)),
		),
		el("w:style", "w:type", "table", "w:styleId", tableStyleID).add(
			el("w:name", "w:val", "Table Grid"),
			el("w:basedOn", "w:val", "TableNormal"),
			el("w:tblPr").add(el("w:tblBorders").add(
				tableBorder("top"),
				tableBorder("left"),
				tableBorder("bottom"),
				tableBorder("right"),
				tableBorder("insideH"),
				tableBorder("insideV"),
			)),
		),
	)
}

func coreNode(meta Metadata) *xmlNode {
	root := el("cp:coreProperties",
		"xmlns:cp", "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		"xmlns:dc", "http://purl.org/dc/elements/1.1/",
		"xmlns:dcterms", "http://purl.org/dc/terms/",
		"xmlns:dcmitype", "http://purl.org/dc/dcmitype/",
		"xmlns:xsi", "http://www.w3.org/2001/XMLSchema-instance",
	)
	root.add(
		el("dc:title").add(text(meta.Title)),
		el("dc:creator").add(text(meta.Creator)),
		el("cp:lastModifiedBy").add(text(meta.Creator)),
	)
	if !meta.Created.IsZero() {
		stamp := meta.Created.UTC().Format(time.RFC3339)
		root.add(
			el("dcterms:created", "xsi:type", "dcterms:W3CDTF").add(text(stamp)),
			el("dcterms:modified", "xsi:type", "dcterms:W3CDTF").add(text(stamp)),
		)
	}
	return root
}
