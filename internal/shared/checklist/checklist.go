package checklist

import (
	"strings"
)

// Item is one checklist row. Status is free text for most stages ("Done",
// "Cleared") or a condition for asset clearance; Comment accompanies a checked
// or non-default status.
type Item struct {
	Label   string `json:"label"`
	Status  string `json:"status"`
	Comment string `json:"comment"`
}

const (
	entrySeparator   = " # "
	commentSeparator = " || "
	statusSeparator  = " : "
)

// Build packs items into the persisted representation:
//
//	"<label> : <status> || <comment> # <label2> : <status2> || <comment2>"
//
// Labels and comments must not contain "#" or "||"; the round-trip guarantee
// only holds for such inputs.
func Build(items []Item) string {
	if len(items) == 0 {
		return ""
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, it.Label+statusSeparator+it.Status+commentSeparator+it.Comment)
	}
	return strings.Join(parts, entrySeparator)
}

// Parse decodes the packed representation produced by Build. It tolerates
// entries with no comment segment, an empty comment after "||", and the
// literal string "null" as no comment, all of which occur in stored rows.
func Parse(packed string) []Item {
	packed = strings.TrimSpace(packed)
	if packed == "" || packed == "null" {
		return nil
	}

	entries := strings.Split(packed, "#")
	items := make([]Item, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		body := entry
		comment := ""
		if idx := strings.Index(entry, "||"); idx >= 0 {
			body = entry[:idx]
			comment = strings.TrimSpace(entry[idx+2:])
		}
		if comment == "null" {
			comment = ""
		}

		label := strings.TrimSpace(body)
		status := ""
		if idx := strings.LastIndex(body, ":"); idx >= 0 {
			label = strings.TrimSpace(body[:idx])
			status = strings.TrimSpace(body[idx+1:])
		}

		items = append(items, Item{Label: label, Status: status, Comment: comment})
	}
	return items
}

// Labels returns just the labels, preserving order.
func Labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}
