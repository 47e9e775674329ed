package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dslipak/pdf"
	"github.com/otiai10/gosseract/v2"
)

// AllowedExtensions is the set of upload extensions the pipeline accepts.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".docx": true,
	".txt":  true,
}

// Allowed reports whether the filename carries an accepted extension.
func Allowed(filename string) bool {
	return AllowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Text extracts plain text from the file at path, dispatching on its
// extension. Unknown extensions yield an empty string rather than an error
// so that the pipeline degrades silently instead of failing.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return fromPDF(path)
	case ".png", ".jpg", ".jpeg":
		return fromImage(path)
	case ".txt":
		return fromPlainText(path)
	case ".docx":
		return fromDOCX(path)
	}
	return "", nil
}

// fromPDF concatenates per-page text across the whole document in page order.
func fromPDF(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}

// fromImage runs tesseract OCR over the image. Output is whatever the OCR
// engine returns, lossy and best-effort.
func fromImage(path string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImage(path); err != nil {
		return "", fmt.Errorf("loading image for ocr: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("running ocr: %w", err)
	}
	return text, nil
}

// fromPlainText reads the file as text, dropping undecodable bytes.
func fromPlainText(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading text file: %w", err)
	}
	return strings.ToValidUTF8(string(content), ""), nil
}

// fromDOCX treats the file as a ZIP archive, locates word/document.xml and
// walks its paragraphs in document order, joined by newlines.
func fromDOCX(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening docx archive: %w", err)
	}
	defer r.Close()

	var documentXML *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			documentXML = f
			break
		}
	}
	if documentXML == nil {
		return "", fmt.Errorf("invalid docx: missing word/document.xml")
	}

	rc, err := documentXML.Open()
	if err != nil {
		return "", fmt.Errorf("opening word/document.xml: %w", err)
	}
	defer rc.Close()

	return decodeDocumentXML(rc)
}

// decodeDocumentXML stream-decodes a WordprocessingML body into paragraph
// texts separated by newlines.
func decodeDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)

	var paragraphs []string
	var current strings.Builder
	inParagraph := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decoding document xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inParagraph = true
				current.Reset()
			case "tab":
				if inParagraph {
					current.WriteString("\t")
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				paragraphs = append(paragraphs, current.String())
				inParagraph = false
			}
		case xml.CharData:
			if inParagraph {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
