package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/chatgraph"
	"github.com/aretw0/chatgraph/pkg/adapters/memory"
)

func TestManager_LockLifecycle(t *testing.T) {
	bp, err := chatgraph.Compile(
		memory.NewDefinitionSource("<TYPE:NODE><ID:0><ANSWER:hi>"),
		memory.NewAvatarSource("a.png", []byte{1}),
	)
	if err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(bp, memory.NewStore())
	ctx := context.Background()
	count := 1000

	for i := 0; i < count; i++ {
		sid := fmt.Sprintf("session-%d", i)
		_, _ = mgr.Send(ctx, sid, "hello")
		_ = mgr.Delete(ctx, sid)
	}

	if lockCount := len(mgr.locks); lockCount != 0 {
		t.Errorf("memory leak detected: %d locks remaining after Delete", lockCount)
	}
}
