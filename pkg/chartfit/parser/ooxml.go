package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

// readZipFile returns the content of name, or nil if the part is absent.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, nil
}

// readElementText collects the character data of the current element.
func readElementText(decoder *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return sb.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return sb.String(), nil
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func attrInt(se xml.StartElement, local string) (int64, bool) {
	v, err := strconv.ParseInt(attr(se, local), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// resolveRelativePath resolves a relationship target against the
// directory of the part that owns the relationship.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		for strings.HasPrefix(target, "../") {
			target = strings.TrimPrefix(target, "../")
		}
		return "xl/" + target
	}
	if strings.HasPrefix(target, "/xl/") {
		return target[1:]
	}
	if strings.HasPrefix(target, "/") {
		return baseDir + target
	}
	return baseDir + "/" + target
}

// relsPathFor returns the relationships part of a part under dir.
func relsPathFor(partPath, dir string) string {
	relsPath := strings.Replace(partPath, dir+"/", dir+"/_rels/", 1)
	return strings.Replace(relsPath, ".xml", ".xml.rels", 1)
}

// relationships returns Id to Target for every relationship of the given
// kind (the last segment of the relationship type URI).
func relationships(data []byte, kind string) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "Relationship" {
			continue
		}
		if strings.HasSuffix(strings.ToLower(attr(se, "Type")), "/"+kind) {
			result[attr(se, "Id")] = attr(se, "Target")
		}
	}
	return result
}

// sheetParts maps sheet names to their worksheet part paths.
func sheetParts(r *zip.Reader) map[string]string {
	result := make(map[string]string)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return result
	}
	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return result
	}
	targets := relationships(wbRelsXML, "worksheet")

	decoder := xml.NewDecoder(strings.NewReader(string(workbookXML)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "sheet" {
			continue
		}
		name, rID := attr(se, "name"), attr(se, "id")
		if target, ok := targets[rID]; ok && name != "" {
			result[name] = resolveRelativePath(target, "xl")
		}
	}
	return result
}

// sheetDrawing returns the drawing part of a worksheet part, if any.
func sheetDrawing(r *zip.Reader, sheetPath string) string {
	relsXML, err := readZipFile(r, relsPathFor(sheetPath, "xl/worksheets"))
	if err != nil || relsXML == nil {
		return ""
	}
	for _, target := range relationships(relsXML, "drawing") {
		return resolveRelativePath(target, "xl/drawings")
	}
	return ""
}
