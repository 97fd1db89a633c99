package relay

import (
	"context"
	"errors"
	"sync"
)

type dispatchCall struct {
	Kind     Kind
	ChatID   int64
	OriginID string
}

type fakeOrigin struct {
	mu         sync.Mutex
	url        string
	resolveErr error
	resolves   int
	// accept lists kinds that succeed; all others fail.
	accept   map[Kind]bool
	calls    []dispatchCall
	ctxErrAt []error
}

func (f *fakeOrigin) ResolveFile(ctx context.Context, originID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolves++
	if f.resolveErr != nil {
		return "", f.resolveErr
	}
	return f.url + "/" + originID, nil
}

func (f *fakeOrigin) Dispatch(ctx context.Context, kind Kind, chatID int64, originID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, dispatchCall{Kind: kind, ChatID: chatID, OriginID: originID})
	f.ctxErrAt = append(f.ctxErrAt, ctx.Err())
	if f.accept[kind] {
		return nil
	}
	return errors.New("Bad Request: wrong file type")
}

func (f *fakeOrigin) kinds() []Kind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Kind, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.Kind)
	}
	return out
}
