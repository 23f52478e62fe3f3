package push

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a required argument is missing.
var ErrInvalidArgument = errors.New("invalid argument")

// Message is a single team inbox push.
//
// The required fields are set by [NewMessage] and cannot be changed
// afterwards. The optional fields are nil when absent; absent fields are left
// out of the request body entirely.
type Message struct {
	source      string
	fromAddress string
	subject     string
	content     string
	ok          bool

	// FromName is the display name of the sender.
	FromName *string
	// ReplyTo is the address replies are sent to.
	ReplyTo *string
	// Project labels the message with a project name.
	Project *string
	// Tags is a comma-separated list of tags.
	Tags *string
	// Links is a comma-separated list of links.
	Links *string
}

// NewMessage creates a message with the four required fields. Empty strings
// are accepted. content may contain HTML.
func NewMessage(source, fromAddress, subject, content string) *Message {
	return &Message{
		source:      source,
		fromAddress: fromAddress,
		subject:     subject,
		content:     content,
		ok:          true,
	}
}

// String returns a pointer to v, for setting optional [Message] fields.
func String(v string) *string {
	return &v
}

func (m *Message) Source() string      { return m.source }
func (m *Message) FromAddress() string { return m.fromAddress }
func (m *Message) Subject() string     { return m.subject }
func (m *Message) Content() string     { return m.content }

type property struct {
	name  string
	value *string
}

// properties lists the message properties in wire order.
func (m *Message) properties() []property {
	return []property{
		{"Source", &m.source},
		{"FromAddress", &m.fromAddress},
		{"Subject", &m.subject},
		{"Content", &m.content},
		{"FromName", m.FromName},
		{"ReplyTo", m.ReplyTo},
		{"Project", m.Project},
		{"Tags", m.Tags},
		{"Links", m.Links},
	}
}

func (m *Message) validate() error {
	if m == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidArgument)
	}

	if !m.ok {
		return fmt.Errorf("%w: message must be created with NewMessage", ErrInvalidArgument)
	}

	return nil
}

// MarshalJSON encodes the message as a team inbox request body. Property
// names are mapped with [FieldName] and nil optional fields are omitted.
func (m *Message) MarshalJSON() ([]byte, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	buf.WriteByte('{')

	first := true

	for _, p := range m.properties() {
		if p.value == nil {
			continue
		}

		if !first {
			buf.WriteByte(',')
		}

		first = false

		key, err := json.Marshal(FieldName(p.name))
		if err != nil {
			return nil, err
		}

		value, err := json.Marshal(*p.value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// Fields holds the parts of a message for [Client.SendFields]. The four
// string fields are required; the pointer fields are optional and nil when
// absent.
type Fields struct {
	Source      string
	FromAddress string
	Subject     string
	Content     string

	FromName *string
	ReplyTo  *string
	Project  *string
	Tags     *string
	Links    *string
}

// Message builds a [Message] from f.
func (f Fields) Message() *Message {
	m := NewMessage(f.Source, f.FromAddress, f.Subject, f.Content)
	m.FromName = f.FromName
	m.ReplyTo = f.ReplyTo
	m.Project = f.Project
	m.Tags = f.Tags
	m.Links = f.Links

	return m
}
