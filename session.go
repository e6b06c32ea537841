/*

Session value and its textual form.

*/

package memsession

import (
	"bytes"
	"encoding/json"
	"reflect"
	"time"
)

// cookieAttr is the name of the member holding the cookie in the textual form
// of a Session. It cannot be used as an attribute name.
const cookieAttr = "cookie"

// Cookie describes the session cookie as seen by the web middleware.
// Only MaxAge is interpreted by the store; the rest is carried along.
//
// Members of the textual form that have no field here, or whose value does not
// fit the field (e.g. "expires": false), are kept verbatim and written back by
// MarshalJSON, so a cookie survives a load and store unchanged.
type Cookie struct {
	// MaxAge is the remaining lifetime of the cookie in milliseconds.
	MaxAge *float64

	// OriginalMaxAge is the lifetime the cookie was issued with, in milliseconds.
	OriginalMaxAge *float64

	Expires  *time.Time
	Path     string
	Domain   string
	Secure   bool
	HTTPOnly bool
	SameSite string

	extra map[string]json.RawMessage // Members not held by the fields above
}

// cookieFields lists the members of the textual form backed by Cookie fields.
func (c *Cookie) cookieFields() map[string]interface{} {
	return map[string]interface{}{
		"maxAge":         &c.MaxAge,
		"originalMaxAge": &c.OriginalMaxAge,
		"expires":        &c.Expires,
		"path":           &c.Path,
		"domain":         &c.Domain,
		"secure":         &c.Secure,
		"httpOnly":       &c.HTTPOnly,
		"sameSite":       &c.SameSite,
	}
}

// MarshalJSON writes the non-zero fields and the carried members.
func (c Cookie) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(c.extra)+8)
	for k, v := range c.extra {
		m[k] = v
	}
	for k, p := range c.cookieFields() {
		if v := reflect.ValueOf(p).Elem(); !v.IsZero() {
			m[k] = v.Interface()
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the members of a JSON object. A member is decoded into
// its field if its value fits and is not null or the zero value; otherwise
// it is carried verbatim. Only a non-object input is an error.
func (c *Cookie) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if m == nil {
		return nil
	}

	*c = Cookie{}
	fields := c.cookieFields()
	for k, raw := range m {
		if p, ok := fields[k]; ok && decodeField(raw, p) {
			continue
		}
		if c.extra == nil {
			c.extra = make(map[string]json.RawMessage)
		}
		c.extra[k] = raw
	}
	return nil
}

// decodeField decodes raw into the field pointed to by p, leaving the field
// untouched and reporting false if raw does not fit or decodes to the zero value.
func decodeField(raw json.RawMessage, p interface{}) bool {
	field := reflect.ValueOf(p).Elem()
	v := reflect.New(field.Type())
	if err := json.Unmarshal(raw, v.Interface()); err != nil || v.Elem().IsZero() {
		return false
	}
	field.Set(v.Elem())
	return true
}

// Session is a serializable session: arbitrary attributes plus cookie metadata.
//
// A Session is a plain value; it is not safe for concurrent modification.
type Session struct {
	// ID is the session id. It is not part of the stored form;
	// MemcacheStore.Get() and the cookie manager fill it in.
	ID string

	// Cookie is the cookie metadata, optional.
	Cookie *Cookie

	attrs map[string]interface{}
}

// SessOptions defines options that may be passed when creating a new Session.
// All fields are optional.
type SessOptions struct {
	// ID of the session.
	ID string

	// Initial attributes; values from the map are copied.
	Attrs map[string]interface{}

	// Max age of the session cookie; no cookie is attached if zero.
	MaxAge time.Duration
}

// NewSession returns a new, empty Session.
func NewSession() *Session {
	return NewSessionOptions(&SessOptions{})
}

// NewSessionOptions returns a new Session with the specified options.
func NewSessionOptions(o *SessOptions) *Session {
	s := &Session{
		ID:    o.ID,
		attrs: make(map[string]interface{}, len(o.Attrs)),
	}
	for k, v := range o.Attrs {
		s.SetAttr(k, v)
	}
	if o.MaxAge != 0 {
		s.SetMaxAge(o.MaxAge)
	}
	return s
}

// Attr returns the value of an attribute stored in the session.
func (s *Session) Attr(name string) interface{} {
	return s.attrs[name]
}

// SetAttr sets the value of an attribute stored in the session.
// Pass the nil value to delete the attribute.
// The name "cookie" is reserved for the Cookie field and is ignored.
func (s *Session) SetAttr(name string, value interface{}) {
	if name == cookieAttr {
		return
	}
	if value == nil {
		delete(s.attrs, name)
		return
	}
	if s.attrs == nil {
		s.attrs = make(map[string]interface{})
	}
	s.attrs[name] = value
}

// Attrs returns a copy of all the attribute values stored in the session.
func (s *Session) Attrs() map[string]interface{} {
	m := make(map[string]interface{}, len(s.attrs))
	for k, v := range s.attrs {
		m[k] = v
	}
	return m
}

// MaxAge returns the cookie max age in milliseconds.
// ok is false if the session has no cookie or the cookie has no numeric max age.
func (s *Session) MaxAge() (ms float64, ok bool) {
	if s == nil || s.Cookie == nil || s.Cookie.MaxAge == nil {
		return 0, false
	}
	return *s.Cookie.MaxAge, true
}

// SetMaxAge sets both the max age and the original max age of the cookie,
// attaching a cookie if the session has none.
func (s *Session) SetMaxAge(d time.Duration) {
	if s.Cookie == nil {
		s.Cookie = &Cookie{}
	}
	ms := float64(d.Milliseconds())
	orig := ms
	s.Cookie.MaxAge = &ms
	s.Cookie.OriginalMaxAge = &orig
}

// MarshalJSON encodes the attributes as members of a JSON object,
// with the cookie under the "cookie" member.
func (s *Session) MarshalJSON() ([]byte, error) {
	m := make(map[string]interface{}, len(s.attrs)+1)
	for k, v := range s.attrs {
		m[k] = v
	}
	if s.Cookie != nil {
		m[cookieAttr] = s.Cookie
	}
	return json.Marshal(m)
}

// UnmarshalJSON is the inverse of MarshalJSON. The ID is left untouched.
// A JSON null leaves the session unchanged.
func (s *Session) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	var cookie *Cookie
	if raw, ok := m[cookieAttr]; ok {
		if err := json.Unmarshal(raw, &cookie); err != nil {
			return err
		}
		delete(m, cookieAttr)
	}

	attrs := make(map[string]interface{}, len(m))
	for k, raw := range m {
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		attrs[k] = v
	}

	s.Cookie = cookie
	s.attrs = attrs
	return nil
}

// isNull tells if data is the JSON null literal.
func isNull(data []byte) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("null"))
}
