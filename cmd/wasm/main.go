//go:build js && wasm

package main

import (
	"context"
	"syscall/js"

	"docsearch/internal/adapter/dom"
	"docsearch/internal/client"
	"github.com/sirupsen/logrus"
)

var searcher *client.Searcher

func init() {
	// The browser console is the only sink; drop timestamps.
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})

	origin := js.Global().Get("location").Get("origin").String()
	searcher = client.New(origin, dom.NewSurface())
}

func main() {
	c := make(chan struct{})

	js.Global().Set("executeSearch", js.FuncOf(executeSearch))

	<-c
}

// executeSearch(query) returns a Promise that settles once the results
// region has been rendered, or rejects with the error message.
func executeSearch(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return rejected("usage: executeSearch(query)")
	}
	query := args[0].String()

	var handler js.Func
	handler = js.FuncOf(func(this js.Value, p []js.Value) interface{} {
		resolve, reject := p[0], p[1]
		go func() {
			defer handler.Release()
			if err := searcher.Search(context.Background(), query); err != nil {
				reject.Invoke(js.Global().Get("Error").New(err.Error()))
				return
			}
			resolve.Invoke()
		}()
		return nil
	})

	return js.Global().Get("Promise").New(handler)
}

func rejected(msg string) interface{} {
	return js.Global().Get("Promise").Call("reject", js.Global().Get("Error").New(msg))
}
