// Command jardump is the WASM façade for batch-decoding every .class entry
// inside a JAR or plain ZIP archive, reusing the same classdump.Decode
// entry point the single-file classdump tool calls. Archive walking is
// adapted from the zip-reading tool this project's WASM layer is modeled
// on; the per-entry payload is now a decoded class-file JSON document
// instead of raw file content.
package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"syscall/js"

	"github.com/tha2015/class-file-visualizer/classdump"
)

const maxTotalSize = 100 * 1024 * 1024 // 100MB: reject archives exceeding this

// ClassEntry is one .class member of the archive, decoded or reported as
// failed without aborting the rest of the batch.
type ClassEntry struct {
	Path  string `json:"path"`
	Size  int64  `json:"size"`
	JSON  string `json:"json,omitempty"`
	Error string `json:"error,omitempty"`
}

// ParseResult is the top-level structure returned to JavaScript.
type ParseResult struct {
	Entries      []ClassEntry `json:"entries"`
	SkippedCount int          `json:"skippedCount"`
}

// parseJarBytes walks a zip/jar archive from an in-memory byte slice,
// decoding every ".class" member with classdump.Decode. Non-.class members
// (manifests, resources, nested jars) are counted in SkippedCount and
// otherwise ignored -- this tool's only concern is class files.
func parseJarBytes(data []byte) (*ParseResult, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Entries: make([]ClassEntry, 0, len(r.File))}

	for _, f := range r.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			result.SkippedCount++
			continue
		}

		entry := ClassEntry{Path: f.Name, Size: int64(f.UncompressedSize64)}

		rc, err := f.Open()
		if err != nil {
			entry.Error = err.Error()
			result.Entries = append(result.Entries, entry)
			continue
		}
		buf, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			entry.Error = err.Error()
			result.Entries = append(result.Entries, entry)
			continue
		}

		out, err := classdump.Decode(buf)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.JSON = out
		}
		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

func jsError(msg string) any {
	return js.Global().Get("Promise").Call("reject",
		js.Global().Get("Error").New(msg))
}

func main() {
	// __wasm_parseJar(Uint8Array) -> Promise<string>
	// Decode every .class member of a jar/zip archive in-memory.
	// Returns JSON ParseResult.
	js.Global().Set("__wasm_parseJar", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) != 1 {
			return jsError("parseJar requires exactly 1 argument (Uint8Array)")
		}

		handler := js.FuncOf(func(_ js.Value, promise []js.Value) any {
			resolve := promise[0]
			reject := promise[1]

			go func() {
				jsArr := args[0]
				length := jsArr.Get("length").Int()

				if length > maxTotalSize {
					reject.Invoke(js.Global().Get("Error").New("Archive too large (>100MB)"))
					return
				}

				data := make([]byte, length)
				js.CopyBytesToGo(data, jsArr)

				result, err := parseJarBytes(data)
				if err != nil {
					reject.Invoke(js.Global().Get("Error").New("Failed to parse jar: " + err.Error()))
					return
				}

				jsonBytes, err := json.Marshal(result)
				if err != nil {
					reject.Invoke(js.Global().Get("Error").New("Failed to serialize result: " + err.Error()))
					return
				}

				resolve.Invoke(string(jsonBytes))
			}()

			return nil
		})

		return js.Global().Get("Promise").New(handler)
	}))

	// Block forever -- the WASM instance must stay alive to serve calls.
	select {}
}
