package meshfabric

import (
	"encoding/json"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// WriteToFile serializes desc and writes it to filename. Serialization to
// json or to yaml is selected based on the extension of filename.
func (desc *NetworkConfigDesc) WriteToFile(filename string) error {
	pathExt := path.Ext(filename)
	var bytes []byte
	var merr error

	switch pathExt {
	case ".yaml", ".YAML", ".yml":
		bytes, merr = yaml.Marshal(*desc)
	case ".json", ".JSON":
		bytes, merr = json.MarshalIndent(*desc, "", "\t")
	default:
		merr = &UnsupportedConfigExtensionError{Extension: pathExt}
	}
	if merr != nil {
		return merr
	}

	f, cerr := os.Create(filename)
	if cerr != nil {
		return cerr
	}
	defer f.Close()

	_, werr := f.Write(bytes)
	return werr
}

// UnsupportedConfigExtensionError reports a network config file extension
// that is neither YAML nor JSON.
type UnsupportedConfigExtensionError struct {
	Extension string
}

func (e *UnsupportedConfigExtensionError) Error() string {
	return "networkconfig: unsupported file extension " + e.Extension + " (want .yaml, .yml, or .json)"
}

// LoadNetworkConfig reads and deserializes a NetworkConfigDesc from
// filename. If dict is non-empty its bytes are used directly instead of
// reading the file, so a caller that already has the config in memory
// (e.g. embedded, or fetched over the network) can skip the filesystem
// round trip. useYAML selects the codec.
func LoadNetworkConfig(filename string, useYAML bool, dict []byte) (*NetworkConfigDesc, error) {
	var err error
	if len(dict) == 0 {
		dict, err = os.ReadFile(filename)
		if err != nil {
			return nil, err
		}
	}

	desc := &NetworkConfigDesc{}
	if useYAML {
		err = yaml.Unmarshal(dict, desc)
	} else {
		err = json.Unmarshal(dict, desc)
	}
	if err != nil {
		return nil, err
	}
	return desc, nil
}
