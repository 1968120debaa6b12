package scene

import (
	"encoding/json"
	"fmt"
	"io"
)

// RenderJSON encodes a scene as indented JSON.
func RenderJSON(sc Scene) ([]byte, error) {
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteJSON writes RenderJSON's output to w.
func WriteJSON(w io.Writer, sc Scene) error {
	data, err := RenderJSON(sc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
