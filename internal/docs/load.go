package docs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/diogo/wallchat/internal/api"
	apierrors "github.com/diogo/wallchat/internal/errors"
	"github.com/diogo/wallchat/internal/models"
)

// LoadFile reads a help document from disk. .yaml and .yml files are
// decoded as YAML, anything else as JSON; both use the /help shape.
func LoadFile(path string) (*models.HelpDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return api.ParseHelp(data)
	}
}

// ParseYAML decodes a help document written as YAML
func ParseYAML(data []byte) (*models.HelpDocument, error) {
	var raw struct {
		Endpoints *[]models.EndpointDescriptor `yaml:"endpoints"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apierrors.NewParseError(err.Error(), "")
	}
	if raw.Endpoints == nil {
		return &models.HelpDocument{}, apierrors.NewParseError("missing endpoints", api.PathEndpoints)
	}
	return &models.HelpDocument{Endpoints: *raw.Endpoints}, nil
}
