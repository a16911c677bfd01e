package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// MaxLimit is the largest page a client may ask for.
const MaxLimit = 500

// ErrInvalidCursor is returned when cursor decoding fails.
var ErrInvalidCursor = errors.New("invalid cursor")

// PageRequest holds the optional paging parameters of a list request.
// Without a limit the whole list is returned.
type PageRequest struct {
	// Cursor is an opaque string from a previous response's NextCursor.
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit"  validate:"omitempty,min=1,max=500"`
}

// Page is one slice of a list.
type Page[T any] struct {
	Items      []T
	NextCursor string
	HasMore    bool
}

type cursorData struct {
	Offset int `json:"o"`
}

// EncodeCursor encodes a list offset.
func EncodeCursor(offset int) string {
	b, err := json.Marshal(cursorData{Offset: offset})
	if err != nil {
		return ""
	}

	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeCursor decodes a cursor produced by EncodeCursor. An empty cursor is
// offset 0.
func DecodeCursor(encoded string) (int, error) {
	if encoded == "" {
		return 0, nil
	}

	b, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return 0, ErrInvalidCursor
	}

	var data cursorData
	if err := json.Unmarshal(b, &data); err != nil || data.Offset < 0 {
		return 0, ErrInvalidCursor
	}

	return data.Offset, nil
}

// Paginate returns the page of items selected by req.
func Paginate[T any](items []T, req PageRequest) (Page[T], error) {
	offset, err := DecodeCursor(req.Cursor)
	if err != nil {
		return Page[T]{}, err
	}

	if offset > len(items) {
		offset = len(items)
	}
	rest := items[offset:]

	if req.Limit <= 0 || len(rest) <= req.Limit {
		return Page[T]{Items: rest}, nil
	}

	return Page[T]{
		Items:      rest[:req.Limit],
		NextCursor: EncodeCursor(offset + req.Limit),
		HasMore:    true,
	}, nil
}
