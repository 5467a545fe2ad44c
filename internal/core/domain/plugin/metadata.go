package plugindomain

import (
	"strconv"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// ParseMetadata builds a Plugin from the contents of an info.json file.
//
// Optional string fields that are missing or not strings are left absent,
// and non-string items in authors and tags are skipped. The only hard
// requirement is that every permission is an object with a string "type".
func ParseMetadata(folder string, data []byte) (*Plugin, error) {
	if !utf8.Valid(data) {
		return nil, &MetadataParseError{Folder: folder, Reason: "file is not valid UTF-8"}
	}
	if !gjson.ValidBytes(data) {
		return nil, &MetadataParseError{Folder: folder, Reason: "file is not valid JSON"}
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, &MetadataParseError{Folder: folder, Reason: "top level value must be an object"}
	}

	p := NewPlugin(folder)
	p.Name = optionalString(doc, "name")
	p.Description = optionalString(doc, "description")
	p.Homepage = optionalString(doc, "homepage")
	p.Version = optionalString(doc, "version")
	p.Licence = optionalString(doc, "licence")
	p.Authors = stringList(doc, "authors")
	p.Tags = stringList(doc, "tags")

	perms := doc.Get("permissions")
	if perms.IsArray() {
		for i, item := range perms.Array() {
			typ := item.Get("type")
			if !item.IsObject() || typ.Type != gjson.String {
				return nil, &MetadataParseError{
					Folder: folder,
					Reason: "permission " + strconv.Itoa(i) + " has no \"type\"",
				}
			}
			p.Permissions = append(p.Permissions, Permission{Type: typ.Str})
		}
	}

	return p, nil
}

func optionalString(doc gjson.Result, key string) *string {
	v := doc.Get(key)
	if v.Type != gjson.String {
		return nil
	}
	s := v.Str
	return &s
}

func stringList(doc gjson.Result, key string) []string {
	out := []string{}
	v := doc.Get(key)
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, item gjson.Result) bool {
		if item.Type == gjson.String {
			out = append(out, item.Str)
		}
		return true
	})
	return out
}
