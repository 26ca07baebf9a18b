// Command classdump is the WASM façade the browser-side tree viewer loads:
// it exposes a single global function that turns raw class-file bytes into
// the JSON document classjson.Serialize produces. All of the actual parsing
// and rendering lives in the classfile and classjson packages; this file
// only bridges to syscall/js.
package main

import (
	"syscall/js"

	"github.com/tha2015/class-file-visualizer/classdump"
)

func jsError(msg string) any {
	return js.Global().Get("Promise").Call("reject",
		js.Global().Get("Error").New(msg))
}

func main() {
	// __wasm_parseClass(Uint8Array) -> Promise<string>
	// Parse a Java .class file from raw bytes. Resolves with the pretty
	// printed JSON document; rejects with an Error whose message is
	// "Failed to parse class file: " followed by the ParseError's message.
	js.Global().Set("__wasm_parseClass", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) != 1 {
			return jsError("parseClass requires exactly 1 argument (Uint8Array)")
		}

		handler := js.FuncOf(func(_ js.Value, promise []js.Value) any {
			resolve := promise[0]
			reject := promise[1]

			go func() {
				jsArr := args[0]
				length := jsArr.Get("length").Int()

				data := make([]byte, length)
				js.CopyBytesToGo(data, jsArr)

				out, err := classdump.Decode(data)
				if err != nil {
					reject.Invoke(js.Global().Get("Error").New("Failed to parse class file: " + err.Error()))
					return
				}

				resolve.Invoke(out)
			}()

			return nil
		})

		return js.Global().Get("Promise").New(handler)
	}))

	// Block forever -- the WASM instance must stay alive to serve calls.
	select {}
}
