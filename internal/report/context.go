package report

import (
	"bytes"
	"encoding/json"
	"net/url"
	"path"
	"strings"
)

// ContextKind decides how an attachment is rendered
type ContextKind string

const (
	ContextText  ContextKind = "text"
	ContextLink  ContextKind = "link"
	ContextImage ContextKind = "image"
	ContextVideo ContextKind = "video"
	ContextJSON  ContextKind = "json"
)

// ContextItem is one attachment added to a test while it ran
type ContextItem struct {
	Title string
	Kind  ContextKind
	Value string
}

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".webp": true, ".bmp": true}
var videoExts = map[string]bool{".mp4": true, ".webm": true, ".ogg": true, ".mov": true}

// DecodeContext turns the raw context of a test into attachments. The
// reporter stores it as a JSON-encoded string holding a string, a
// {title, value} object or an array of either.
func DecodeContext(raw json.RawMessage) []ContextItem {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return []ContextItem{classify("", string(raw))}
	}
	// Unwrap the JSON-encoded string layer when present
	if s, ok := value.(string); ok {
		var inner any
		if err := json.Unmarshal([]byte(s), &inner); err == nil {
			value = inner
		}
	}

	if list, ok := value.([]any); ok {
		var items []ContextItem
		for _, v := range list {
			items = append(items, decodeItem(v))
		}
		return items
	}
	return []ContextItem{decodeItem(value)}
}

func decodeItem(v any) ContextItem {
	if obj, ok := v.(map[string]any); ok {
		if _, hasValue := obj["value"]; hasValue {
			title, _ := obj["title"].(string)
			if s, ok := obj["value"].(string); ok {
				return classify(title, s)
			}
			return structured(title, obj["value"])
		}
	}
	if s, ok := v.(string); ok {
		return classify("", s)
	}
	return structured("", v)
}

func structured(title string, v any) ContextItem {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ContextItem{Title: title, Kind: ContextText}
	}
	return ContextItem{Title: title, Kind: ContextJSON, Value: string(data)}
}

// classify recognises links and media paths. Everything else is text and
// is escaped by the template.
func classify(title, s string) ContextItem {
	item := ContextItem{Title: title, Kind: ContextText, Value: s}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || strings.ContainsAny(trimmed, " \n\t<>\"") {
		return item
	}

	p := trimmed
	isURL := false
	if u, err := url.Parse(trimmed); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		p = u.Path
		isURL = true
	} else if err != nil || (u.Scheme != "" && len(u.Scheme) > 1) {
		// other schemes (javascript:, data:) stay text
		return item
	}

	ext := strings.ToLower(path.Ext(p))
	switch {
	case imageExts[ext]:
		item.Kind = ContextImage
	case videoExts[ext]:
		item.Kind = ContextVideo
	case isURL:
		item.Kind = ContextLink
	}
	item.Value = trimmed
	return item
}
