//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/regalagram/sspe-sub014/internal/editor"
	"github.com/regalagram/sspe-sub014/internal/transform"
)

var ed *editor.Editor

func main() {
	ed = editor.New()

	// Create the engine API object
	sspeEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	sspeEngine.Set("loadDocument", js.FuncOf(loadDocument))
	sspeEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	sspeEngine.Set("setSelection", js.FuncOf(setSelection))
	sspeEngine.Set("setZoom", js.FuncOf(setZoom))
	sspeEngine.Set("setProportionalLock", js.FuncOf(setProportionalLock))
	sspeEngine.Set("onPointerDown", js.FuncOf(onPointerDown))
	sspeEngine.Set("startMove", js.FuncOf(startMove))
	sspeEngine.Set("onPointerMove", js.FuncOf(onPointerMove))
	sspeEngine.Set("onPointerUp", js.FuncOf(onPointerUp))
	sspeEngine.Set("onCancel", js.FuncOf(onCancel))
	sspeEngine.Set("undo", js.FuncOf(undo))
	sspeEngine.Set("redo", js.FuncOf(redo))
	sspeEngine.Set("setStateChangeCallback", js.FuncOf(setStateChangeCallback))

	// --- Queries (frontend ← backend) ---
	sspeEngine.Set("resolveSelection", js.FuncOf(resolveSelection))
	sspeEngine.Set("getBoundsAndHandles", js.FuncOf(getBoundsAndHandles))
	sspeEngine.Set("isActive", js.FuncOf(isActive))
	sspeEngine.Set("activeMode", js.FuncOf(activeMode))
	sspeEngine.Set("isProportionalLockActive", js.FuncOf(isProportionalLockActive))
	sspeEngine.Set("getDocument", js.FuncOf(getDocument))
	sspeEngine.Set("getSelection", js.FuncOf(getSelection))

	// Register on global scope
	js.Global().Set("sspeEngine", sspeEngine)

	// Signal that WASM is ready
	js.Global().Set("sspeWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	if err := ed.LoadDocument(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	ed.LoadSampleDocument()
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setSelection(this js.Value, args []js.Value) interface{} {
	pointIDs := stringSlice(args, 0)
	subPathIDs := stringSlice(args, 1)
	ed.SetSelection(pointIDs, subPathIDs)
	return nil
}

func setZoom(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetZoom(args[0].Float())
	return nil
}

func setProportionalLock(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetProportionalLock(args[0].Bool())
	return nil
}

func onPointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return nil
	}
	ed.OnPointerDown(args[0].String(), args[1].Float(), args[2].Float())
	return nil
}

func startMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.StartMove(args[0].Float(), args[1].Float())
	return nil
}

func onPointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.OnPointerMove(args[0].Float(), args[1].Float())
	return nil
}

func onPointerUp(this js.Value, args []js.Value) interface{} {
	ed.OnPointerUp()
	return nil
}

func onCancel(this js.Value, args []js.Value) interface{} {
	ed.OnCancel()
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Redo())
}

// setStateChangeCallback subscribes a JS function to gesture state machine
// transitions. The callback receives the mode string ("scale", "rotate",
// "move", or "" for idle) exactly once per transition; the frontend
// re-renders the handle overlay only when this fires.
func setStateChangeCallback(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		ed.Transform().OnStateChange(nil)
		return nil
	}

	callback := args[0]
	ed.Transform().OnStateChange(func(s transform.State) {
		callback.Invoke(ed.ActiveMode())
	})
	return nil
}

// --- Query Handlers ---

func resolveSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.ResolveSelection())
}

func getBoundsAndHandles(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.BoundsAndHandlesJSON())
}

func isActive(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.IsActive())
}

func activeMode(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.ActiveMode())
}

func isProportionalLockActive(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.IsProportionalLockActive())
}

func getDocument(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.DocumentJSON())
}

func getSelection(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.SelectionJSON())
}

func stringSlice(args []js.Value, i int) []string {
	if len(args) <= i || args[i].Type() != js.TypeObject {
		return nil
	}
	arr := args[i]
	out := make([]string, arr.Length())
	for j := 0; j < arr.Length(); j++ {
		out[j] = arr.Index(j).String()
	}
	return out
}
