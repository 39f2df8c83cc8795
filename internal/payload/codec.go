// Package payload encodes the data attached to an exact-alarm
// registration. Payloads carry a one-byte format prefix so an external
// exact-alarm service speaking protobuf can interoperate with the
// default JSON encoding.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"

	chimepb "github.com/chimelabs/chime/proto/gen"
)

// Format represents the serialization format of a payload
type Format byte

const (
	// FormatJSON is the default encoding
	FormatJSON Format = 0x00

	// FormatProtobuf is used when the payload implements proto.Message
	FormatProtobuf Format = 0x01
)

var (
	// ErrUnknownFormat is returned when the payload format cannot be determined
	ErrUnknownFormat = errors.New("unknown payload format")

	// ErrMarshalFailed is returned when marshaling fails
	ErrMarshalFailed = errors.New("failed to marshal payload")

	// ErrUnmarshalFailed is returned when unmarshaling fails
	ErrUnmarshalFailed = errors.New("failed to unmarshal payload")
)

// Fired is the payload registered with the exact-alarm primitive and
// handed back when an occurrence fires.
type Fired struct {
	AlarmID      string    `json:"alarm_id"`
	Kind         string    `json:"kind"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Codec marshals and unmarshals payloads with format detection
type Codec struct {
	// DefaultFormat is used when serializing new payloads
	DefaultFormat Format
}

// NewJSONCodec creates a codec that defaults to JSON
func NewJSONCodec() *Codec {
	return &Codec{DefaultFormat: FormatJSON}
}

// NewProtobufCodec creates a codec that defaults to protobuf
func NewProtobufCodec() *Codec {
	return &Codec{DefaultFormat: FormatProtobuf}
}

// Marshal serializes a payload with the configured default format,
// prepending the format byte.
func (c *Codec) Marshal(v interface{}) ([]byte, error) {
	return c.MarshalWithFormat(v, c.DefaultFormat)
}

// MarshalWithFormat serializes a payload using the specified format
func (c *Codec) MarshalWithFormat(v interface{}, format Format) ([]byte, error) {
	var data []byte
	var err error

	switch format {
	case FormatJSON:
		data, err = json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w (JSON): %v", ErrMarshalFailed, err)
		}

	case FormatProtobuf:
		msg, ok := v.(proto.Message)
		if !ok {
			return nil, fmt.Errorf("%w: value does not implement proto.Message", ErrMarshalFailed)
		}
		data, err = proto.Marshal(msg)
		if err != nil {
			return nil, fmt.Errorf("%w (Protobuf): %v", ErrMarshalFailed, err)
		}

	default:
		return nil, fmt.Errorf("%w: format %d", ErrUnknownFormat, format)
	}

	result := make([]byte, len(data)+1)
	result[0] = byte(format)
	copy(result[1:], data)
	return result, nil
}

// Unmarshal deserializes a payload, detecting the format from its prefix.
func (c *Codec) Unmarshal(data []byte, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: empty payload", ErrUnmarshalFailed)
	}

	format, body, err := c.DetectFormat(data)
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(body, v); err != nil {
			return fmt.Errorf("%w (JSON): %v", ErrUnmarshalFailed, err)
		}
		return nil

	case FormatProtobuf:
		msg, ok := v.(proto.Message)
		if !ok {
			return fmt.Errorf("%w: value does not implement proto.Message", ErrUnmarshalFailed)
		}
		if err := proto.Unmarshal(body, msg); err != nil {
			return fmt.Errorf("%w (Protobuf): %v", ErrUnmarshalFailed, err)
		}
		return nil

	default:
		return fmt.Errorf("%w: format %d", ErrUnknownFormat, format)
	}
}

// DetectFormat returns the format and the payload without its prefix.
// Prefix-less JSON (starting with '{' or '[') is accepted for payloads
// produced by external registrars.
func (c *Codec) DetectFormat(data []byte) (Format, []byte, error) {
	if len(data) == 0 {
		return FormatJSON, nil, fmt.Errorf("%w: empty payload", ErrUnknownFormat)
	}

	format := Format(data[0])
	switch format {
	case FormatJSON, FormatProtobuf:
		if len(data) < 2 {
			return format, nil, fmt.Errorf("%w: payload too short", ErrUnmarshalFailed)
		}
		return format, data[1:], nil

	default:
		if data[0] == '{' || data[0] == '[' {
			return FormatJSON, data, nil
		}
		return FormatJSON, data, fmt.Errorf("%w: unknown format byte 0x%02X", ErrUnknownFormat, data[0])
	}
}

// EncodeFired is a convenience wrapper for the common registration path.
// The protobuf default format serializes through the generated wire
// message; JSON serializes the payload struct directly.
func (c *Codec) EncodeFired(alarmID, kind string, registeredAt time.Time) ([]byte, error) {
	f := &Fired{
		AlarmID:      alarmID,
		Kind:         kind,
		RegisteredAt: registeredAt,
	}
	if c.DefaultFormat == FormatProtobuf {
		return c.MarshalWithFormat(FiredToProto(f), FormatProtobuf)
	}
	return c.Marshal(f)
}

// DecodeFired decodes a fired-occurrence payload of either format.
func (c *Codec) DecodeFired(data []byte) (*Fired, error) {
	format, _, err := c.DetectFormat(data)
	if err != nil {
		return nil, err
	}

	if format == FormatProtobuf {
		var pb chimepb.Fired
		if err := c.Unmarshal(data, &pb); err != nil {
			return nil, err
		}
		return FiredFromProto(&pb), nil
	}

	var f Fired
	if err := c.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}
