package output

import (
	"encoding/json"

	"github.com/ukaji3/twbmeta-go/pkg/twbmeta/models"
	"gopkg.in/yaml.v3"
)

// ToJSON serializes md as JSON.
func ToJSON(md *models.Metadata, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(md, "", "  ")
	}
	return json.Marshal(md)
}

// ToYAML serializes md as YAML.
func ToYAML(md *models.Metadata) ([]byte, error) {
	return yaml.Marshal(md)
}
