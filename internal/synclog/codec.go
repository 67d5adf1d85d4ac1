package synclog

import (
	"encoding/json"
	"encoding/xml"
	"fmt"

	"dirsync/internal/model"
	"dirsync/internal/syncerr"
)

// Codec converts a SyncRun to and from one log artifact format.
type Codec interface {
	Encode(run model.SyncRun) ([]byte, error)
	Decode(data []byte) (model.SyncRun, error)
	Ext() string
}

func CodecFor(format model.Format) (Codec, error) {
	switch format {
	case model.FormatStructured:
		return xmlCodec{}, nil
	case model.FormatTagged:
		return jsonCodec{}, nil
	default:
		return nil, syncerr.InvalidInput("select codec", "unknown format %q", string(format))
	}
}

type xmlDocument struct {
	XMLName xml.Name         `xml:"syncLog"`
	Entries []model.LogEntry `xml:"entry"`
}

type xmlCodec struct{}

func (xmlCodec) Encode(run model.SyncRun) ([]byte, error) {
	body, err := xml.MarshalIndent(xmlDocument{Entries: run}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode xml: %w", err)
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	return append(out, '\n'), nil
}

func (xmlCodec) Decode(data []byte) (model.SyncRun, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode xml: %w", err)
	}

	if err := validate(doc.Entries); err != nil {
		return nil, err
	}

	return append(model.SyncRun{}, doc.Entries...), nil
}

func (xmlCodec) Ext() string {
	return "xml"
}

type jsonCodec struct{}

func (jsonCodec) Encode(run model.SyncRun) ([]byte, error) {
	if run == nil {
		run = model.SyncRun{}
	}

	out, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode json: %w", err)
	}

	return append(out, '\n'), nil
}

func (jsonCodec) Decode(data []byte) (model.SyncRun, error) {
	var run model.SyncRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to decode json: %w", err)
	}

	if err := validate(run); err != nil {
		return nil, err
	}

	if run == nil {
		run = model.SyncRun{}
	}
	return run, nil
}

func (jsonCodec) Ext() string {
	return "json"
}

// validate catches entries whose action element was missing entirely, which
// UnmarshalText never sees.
func validate(entries []model.LogEntry) error {
	for i, e := range entries {
		if !e.Action.Valid() {
			return fmt.Errorf("entry %d (%s): missing or invalid action", i, e.FilePath)
		}
	}

	return nil
}
