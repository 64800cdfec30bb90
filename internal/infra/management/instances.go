// Where: cli/internal/infra/management/instances.go
// What: Role instance extraction from deployment documents.
// Why: The listing call returns a full deployment; only instance names matter.
package management

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Namespace is the XML namespace of management API documents.
const Namespace = "http://schemas.microsoft.com/windowsazure"

const elementInstanceName = "InstanceName"

// ParseInstanceNames collects the text of every InstanceName element in
// Namespace, at any depth, in document order.
func ParseInstanceNames(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)
	names := []string{}
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return names, nil
		}
		if err != nil {
			return nil, errors.Wrap(err, "parse deployment")
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Space != Namespace || start.Name.Local != elementInstanceName {
			continue
		}
		var name string
		if err := decoder.DecodeElement(&name, &start); err != nil {
			return nil, errors.Wrap(err, "parse InstanceName")
		}
		names = append(names, strings.TrimSpace(name))
	}
}
