package tracker

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/colonyops/techtrack/internal/core/kv/kvtest"
	"github.com/colonyops/techtrack/internal/core/tech"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

type message struct {
	level string
	text  string
}

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []message
}

func (n *recordingNotifier) add(level, format string, args ...any) int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, message{level: level, text: fmt.Sprintf(format, args...)})
	return int64(len(n.msgs))
}

func (n *recordingNotifier) Successf(f string, a ...any) int64 { return n.add("success", f, a...) }
func (n *recordingNotifier) Infof(f string, a ...any) int64    { return n.add("info", f, a...) }
func (n *recordingNotifier) Warnf(f string, a ...any) int64    { return n.add("warning", f, a...) }
func (n *recordingNotifier) Errorf(f string, a ...any) int64   { return n.add("error", f, a...) }

func (n *recordingNotifier) last() message {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.msgs) == 0 {
		return message{}
	}
	return n.msgs[len(n.msgs)-1]
}

// sequentialIDs returns an id generator yielding id-1, id-2, ...
func sequentialIDs() func() tech.ID {
	n := 0
	return func() tech.ID {
		n++
		return tech.ID(fmt.Sprintf("id-%d", n))
	}
}

func newTestRepo(t *testing.T, store *kvtest.Memory, opts ...Option) *Repository {
	t.Helper()

	base := []Option{
		WithClock(func() time.Time { return testNow }),
		WithIDGenerator(sequentialIDs()),
	}
	r := NewRepository(store, zerolog.Nop(), append(base, opts...)...)
	r.Load(context.Background())
	return r
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var ve *tech.ValidationError
	require.ErrorAs(t, err, &ve)

	names := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		names = append(names, fe.Field)
	}
	return names
}
