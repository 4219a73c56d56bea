package registry_test

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/veela/pkg/fontmeta"
	"github.com/matzehuels/veela/pkg/registry"
)

func ExampleWrite() {
	entries := []registry.Entry{{
		Key: "Inter-Bold",
		Metadata: fontmeta.Metadata{
			Base64: "d09GMg==",
			Family: "Inter",
			Style:  "normal",
			Weight: fontmeta.Numeric(700),
		},
	}}
	_ = registry.Write(os.Stdout, entries, registry.WriteOptions{Format: registry.FormatJSON})
	// Output:
	// {
	//   "Inter-Bold": {
	//     "base64": "d09GMg==",
	//     "family": "Inter",
	//     "style": "normal",
	//     "weight": 700,
	//     "compressed": false
	//   }
	// }
}

func ExampleMemo() {
	reg := registry.Registry{
		"Inter-Regular": {Family: "Inter", Style: "normal", Weight: fontmeta.Numeric(400)},
	}
	memo := registry.NewMemo(registry.Static(reg))

	r, _ := memo.Load(context.Background())
	fmt.Println(r.Keys(), memo.Loaded())
	// Output: [Inter-Regular] true
}
