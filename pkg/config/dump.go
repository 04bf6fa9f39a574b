package config

import (
	"encoding/json"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/siyuan-infoblox/ts-imports-group/pkg/errors"
)

// Output formats supported by Encode.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
	FormatJSON = "json"
)

// Encode writes a layer in the given file format, in the same schema config files use.
func Encode(w io.Writer, l Layer, format string) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return errors.Wrap(err, errors.ErrMsgFailedToEncodeConfigDump)
		}
		return errors.Wrap(enc.Close(), errors.ErrMsgFailedToEncodeConfigDump)
	case FormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(l), errors.ErrMsgFailedToEncodeConfigDump)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(l), errors.ErrMsgFailedToEncodeConfigDump)
	default:
		return &errors.ConfigError{Field: "output", Message: fmt.Sprintf("unknown format %q", format)}
	}
}
