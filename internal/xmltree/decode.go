package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"

	"github.com/clbanning/mxj/v2"
	"golang.org/x/net/html/charset"

	"github.com/aalvaropc/s3lens/internal/domain"
)

var (
	errNoRoot          = errors.New("no root element")
	errMultipleRoots   = errors.New("more than one root element")
	errTextOutsideRoot = errors.New("character data outside the root element")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func init() {
	mxj.XmlCharsetReader = charset.NewReaderLabel
}

// Decode parses data as an XML document.
//
// A nil or empty input fails with a no_data SerializationError. Input that is not a
// well-formed document with exactly one root element fails with
// data_serialization_failed. A leading byte-order mark is skipped and declared
// non-UTF-8 encodings are transcoded. Decode is pure: the same bytes always produce
// equal trees.
func Decode(data []byte) (*Tree, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(data) == 0 {
		return nil, &domain.SerializationError{
			Kind:   domain.SerializationNoData,
			Reason: "response body is empty",
		}
	}

	root, err := checkWellFormed(data)
	if err != nil {
		return nil, domain.NewDataSerializationFailed("xml is not well-formed", err)
	}

	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, domain.NewDataSerializationFailed("xml could not be decoded", err)
	}

	return &Tree{
		root: Node{name: root, value: m[root]},
		doc:  m,
	}, nil
}

// checkWellFormed runs a strict token pass over data and returns the root element name.
// mxj accepts trailing garbage and sibling roots, so structure is enforced here first.
func checkWellFormed(data []byte) (string, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = true
	d.CharsetReader = charset.NewReaderLabel

	var (
		root  string
		depth int
	)
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if root != "" {
					return "", errMultipleRoots
				}
				root = t.Name.Local
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) > 0 {
				return "", errTextOutsideRoot
			}
		}
	}

	if root == "" {
		return "", errNoRoot
	}
	return root, nil
}
