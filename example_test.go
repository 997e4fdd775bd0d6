package chatgraph_test

import (
	"fmt"
	"log"

	"github.com/aretw0/chatgraph"
	"github.com/aretw0/chatgraph/pkg/adapters/memory"
	"github.com/aretw0/chatgraph/pkg/domain"
)

type stdout struct{}

func (stdout) OnResponseReady(text string) { fmt.Println(text) }
func (stdout) OnAvatarReady(*domain.Avatar) {}

// ExampleController shows a two-node graph driven by keywords.
func ExampleController() {
	def := memory.NewDefinitionSource(`
<TYPE:NODE><ID:0><ANSWER:Ask me about rust.>
<TYPE:NODE><ID:1><ANSWER:Rust is a systems language.>
<TYPE:EDGE><ID:0><PARENT:0><CHILD:1><KEYWORD:rust>
`)
	avatar := memory.NewAvatarSource("bot.png", []byte("\x89PNG\r\n\x1a\n"))

	ctrl := chatgraph.New(
		chatgraph.WithResponder(stdout{}),
		chatgraph.WithGreeting(true),
	)
	if err := ctrl.Initialize(def, avatar); err != nil {
		log.Fatal(err)
	}

	_ = ctrl.RouteUserMessage("What about Rust?")
	// Output:
	// Ask me about rust.
	// Rust is a systems language.
}
