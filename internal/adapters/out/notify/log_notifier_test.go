package notify_test

import (
	"bytes"
	"log/slog"
	"testing"

	"logistics/internal/adapters/out/notify"
	"logistics/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier_Send(t *testing.T) {
	var buf bytes.Buffer
	notifier := notify.NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	err := notifier.Send(t.Context(), ports.Notification{Title: "New order", Link: "/orders/1"}, []string{"a", "b"})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "title=\"New order\"")
	assert.Contains(t, buf.String(), "recipients=2")
}
