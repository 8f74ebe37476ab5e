package mapping

import (
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/glyphref/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// WriteJSON writes m as indented JSON without HTML escaping.
func WriteJSON(w io.Writer, m *Mapping) error {
	return utils.EncodeJSON(w, m.OrderedMap, true)
}

// WriteMsgpack writes m as a msgpack map.
func WriteMsgpack(w io.Writer, m *Mapping) error {
	return msgpack.NewEncoder(w).Encode(m.OrderedMap)
}

// WriteFile writes m to path in the given format.
func WriteFile(path string, m *Mapping, format FileFormat) error {
	file, err := utils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	switch format {
	case FormatJSON:
		err = WriteJSON(file, m)
	case FormatMsgpack:
		err = WriteMsgpack(file, m)
	default:
		err = fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debugf("Wrote %d mapping entries to %s (%s)", m.Len(), path, format)
	return file.Close()
}

// ReadJSON decodes a JSON mapping.
func ReadJSON(r io.Reader) (*Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m := New(0)
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadMsgpack decodes a msgpack mapping.
func ReadMsgpack(r io.Reader) (*Mapping, error) {
	m := New(0)
	if err := msgpack.NewDecoder(r).Decode(m.OrderedMap); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads a mapping file, detecting its format from the extension.
func Load(path string) (*Mapping, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var m *Mapping
	switch format {
	case FormatJSON:
		m, err = ReadJSON(file)
	case FormatMsgpack:
		m, err = ReadMsgpack(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	log.Debugf("Loaded %d mapping entries from %s", m.Len(), path)
	return m, nil
}
