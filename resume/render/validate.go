package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInvalidPackage is returned for bytes that are not a usable .docx file.
var ErrInvalidPackage = errors.New("invalid docx package")

// Validate checks that docx holds every required part and a well formed body.
func Validate(docx []byte) error {
	files, err := readParts(docx)
	if err != nil {
		return err
	}
	for _, name := range requiredParts {
		if _, ok := files[name]; !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidPackage, name)
		}
	}
	if err := validateDocumentXMLStructure(files["word/document.xml"]); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	return nil
}

// DocumentText returns the text of every paragraph in document order, one
// paragraph per line. Breaks inside a paragraph become newlines too.
func DocumentText(docx []byte) (string, error) {
	files, err := readParts(docx)
	if err != nil {
		return "", err
	}
	documentXML, ok := files["word/document.xml"]
	if !ok {
		return "", fmt.Errorf("%w: missing word/document.xml", ErrInvalidPackage)
	}
	root, err := parseXMLDocument(documentXML)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}

	var paragraphs []string
	walkXML(root, func(n *xmlNode) bool {
		if isElement(n, "p") {
			if text := paragraphText(n); text != "" {
				paragraphs = append(paragraphs, text)
			}
		}
		return true
	})
	return strings.Join(paragraphs, "\n"), nil
}

func readParts(docx []byte) (map[string][]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPackage, err)
	}
	files := make(map[string][]byte, len(reader.File))
	for _, file := range reader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidPackage, file.Name, err)
		}
		files[strings.ReplaceAll(file.Name, "\\", "/")] = content
	}
	return files, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// validateDocumentXMLStructure rejects a foreign root, nested paragraphs and
// run properties that follow text.
func validateDocumentXMLStructure(documentXML []byte) error {
	decoder := xml.NewDecoder(bytes.NewReader(documentXML))
	var stack []xml.Name
	type runState struct {
		seenText bool
	}
	var runs []runState

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("document.xml parse failed: %w\n%s", err, firstLines(string(documentXML), 5))
		}
		switch t := token.(type) {
		case xml.StartElement:
			if len(stack) == 0 && !isWmlElement(t.Name, "document") {
				return fmt.Errorf("document.xml root is %s:%s, want w:document", t.Name.Space, t.Name.Local)
			}
			stack = append(stack, t.Name)
			if isWmlElement(t.Name, "p") {
				for i := len(stack) - 2; i >= 0; i-- {
					if isWmlElement(stack[i], "p") {
						return errors.New("document.xml has nested <w:p>")
					}
				}
			}
			if isWmlElement(t.Name, "r") {
				runs = append(runs, runState{})
			}
			if isWmlElement(t.Name, "t") && len(runs) > 0 {
				runs[len(runs)-1].seenText = true
			}
			if isWmlElement(t.Name, "rPr") && len(runs) > 0 && runs[len(runs)-1].seenText {
				return errors.New("document.xml has <w:rPr> after <w:t> in a run")
			}
		case xml.EndElement:
			if isWmlElement(t.Name, "r") && len(runs) > 0 {
				runs = runs[:len(runs)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) != 0 {
		return errors.New("document.xml is truncated")
	}
	return nil
}

func isWmlElement(name xml.Name, local string) bool {
	return name.Local == local && name.Space == wmlNamespace
}
