package log

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForContext_IncluiIdentificadores(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	hook := test.NewGlobal()
	defer hook.Reset()
	logrus.SetLevel(logrus.DebugLevel)
	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithWorkspaceID(ctx, "ws-1")

	ForContext(ctx).Info("mensagem")

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, correlationID, entry.Data[correlationIDField])
	assert.Equal(t, "ws-1", entry.Data[workspaceIDField])
	assert.Equal(t, correlationID, GetCorrelationID(ctx))
}

func TestWithField_FiltraEmDesenvolvimento(t *testing.T) {
	t.Setenv("APP_ENV", "dev")

	hook := test.NewGlobal()
	defer hook.Reset()
	L = &logger{entry: logrus.NewEntry(logrus.StandardLogger())}

	L.WithField("irrelevante", 1).WithField("tier", "ad").Info("mensagem")

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.NotContains(t, entry.Data, "irrelevante")
	assert.Equal(t, "ad", entry.Data["tier"])
}
