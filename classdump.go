// Package classdump is the single entry point the package design calls
// for: raw class-file bytes in, a pretty-printed JSON document out. It
// composes classfile.Parse with classjson.Serialize and is the only
// surface the WASM tools under wasm/ call into.
package classdump

import (
	"encoding/json"

	"github.com/tha2015/class-file-visualizer/classfile"
	"github.com/tha2015/class-file-visualizer/classjson"
)

// Decode parses a class file and renders it as a two-space-indented JSON
// string. Any parse failure is returned unwrapped from classfile.Parse;
// the serializer itself never fails on a valid model.
func Decode(data []byte) (string, error) {
	cf, err := classfile.Parse(data)
	if err != nil {
		return "", err
	}
	doc := classjson.Serialize(cf)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
