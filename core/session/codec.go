package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const cookieKey = "cookie"

// cookieJSON is the serialized form of Cookie. Field names follow the
// conventional session cookie layout so payloads stay readable by other stores.
type cookieJSON struct {
	OriginalMaxAge any             `json:"originalMaxAge"`
	Expires        json.RawMessage `json:"expires"`
	Secure         bool            `json:"secure,omitempty"`
	HTTPOnly       bool            `json:"httpOnly,omitempty"`
	Domain         string          `json:"domain,omitempty"`
	Path           string          `json:"path,omitempty"`
	SameSite       string          `json:"sameSite,omitempty"`
}

var (
	jsonNull  = json.RawMessage("null")
	jsonFalse = json.RawMessage("false")
)

// Encode serializes the full session into its stored textual form.
// Output is deterministic: application fields are emitted in sorted key order
// and cookie.expires is written as an RFC 3339 UTC timestamp.
func Encode(s Session) (string, error) {
	c := cookieJSON{
		OriginalMaxAge: s.Cookie.OriginalMaxAge,
		Expires:        jsonNull,
		Secure:         s.Cookie.Secure,
		HTTPOnly:       s.Cookie.HTTPOnly,
		Domain:         s.Cookie.Domain,
		Path:           s.Cookie.Path,
		SameSite:       s.Cookie.SameSite,
	}
	if s.Cookie.Expires != nil {
		ts, err := json.Marshal(s.Cookie.Expires.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return "", errors.Join(ErrFormat, err)
		}
		c.Expires = ts
	}

	doc := make(map[string]any, len(s.Data)+1)
	for k, v := range s.Data {
		if k == cookieKey {
			continue
		}
		doc[k] = v
	}
	doc[cookieKey] = c

	b, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Join(ErrFormat, err)
	}
	return string(b), nil
}

// Decode parses a stored payload back into a session.
// Any malformed input, including an unparsable cookie.expires, yields an error
// wrapping ErrFormat.
func Decode(raw string) (Session, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Session{}, errors.Join(ErrFormat, err)
	}
	if doc == nil {
		return Session{}, errors.Join(ErrFormat, errors.New("payload is not an object"))
	}

	var s Session
	if rawCookie, ok := doc[cookieKey]; ok {
		c, err := decodeCookie(rawCookie)
		if err != nil {
			return Session{}, err
		}
		s.Cookie = c
		delete(doc, cookieKey)
	}

	if len(doc) > 0 {
		s.Data = make(map[string]any, len(doc))
		for k, v := range doc {
			var val any
			if err := unmarshalNumbers(v, &val); err != nil {
				return Session{}, errors.Join(ErrFormat, fmt.Errorf("field %q: %w", k, err))
			}
			s.Data[k] = val
		}
	}

	return s, nil
}

func decodeCookie(raw json.RawMessage) (Cookie, error) {
	if bytes.Equal(bytes.TrimSpace(raw), jsonNull) {
		return Cookie{}, nil
	}

	var c cookieJSON
	if err := unmarshalNumbers(raw, &c); err != nil {
		return Cookie{}, errors.Join(ErrFormat, fmt.Errorf("cookie: %w", err))
	}

	expires, err := parseExpires(c.Expires)
	if err != nil {
		return Cookie{}, errors.Join(ErrFormat, fmt.Errorf("cookie.expires: %w", err))
	}

	return Cookie{
		Expires:        expires,
		OriginalMaxAge: c.OriginalMaxAge,
		Path:           c.Path,
		Domain:         c.Domain,
		SameSite:       c.SameSite,
		HTTPOnly:       c.HTTPOnly,
		Secure:         c.Secure,
	}, nil
}

// parseExpires accepts an RFC 3339 string or a number of Unix milliseconds.
// A missing, null or false value means no expiry; false is what browser-session
// cookies carry in payloads written by other stores.
func parseExpires(raw json.RawMessage) (*time.Time, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) || bytes.Equal(raw, jsonFalse) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, err
		}
		t = t.UTC()
		return &t, nil
	default:
		var ms json.Number
		if err := json.Unmarshal(raw, &ms); err != nil {
			return nil, err
		}
		n, err := ms.Int64()
		if err != nil {
			return nil, err
		}
		t := time.UnixMilli(n).UTC()
		return &t, nil
	}
}

// unmarshalNumbers decodes raw into v keeping numbers as json.Number, so
// integers beyond 2^53 survive a decode and re-encode unchanged.
func unmarshalNumbers(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// ExtractExpiry returns the application-level expiry of s.
// The boolean is false when the cookie carries no expiry.
func ExtractExpiry(s Session) (time.Time, bool) {
	if s.Cookie.Expires == nil {
		return time.Time{}, false
	}
	return *s.Cookie.Expires, true
}
