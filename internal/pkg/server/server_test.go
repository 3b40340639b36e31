package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGracefulServer_RunStopsOnCancel(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })

	gs := NewGracefulServer(e, logger.NewNopLogger(), "127.0.0.1:0", time.Second)

	var order []string
	gs.Register("first", func(context.Context) error {
		order = append(order, "first")
		return nil
	})
	gs.Register("second", func(context.Context) error {
		order = append(order, "second")
		return errors.New("ignored")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- gs.Run(ctx) }()

	require.Eventually(t, func() bool { return e.ListenerAddr() != nil }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestGracefulServer_RunReturnsListenError(t *testing.T) {
	e := echo.New()
	e.HideBanner = true
	gs := NewGracefulServer(e, logger.NewNopLogger(), "256.0.0.1:bad", 0)

	cleaned := false
	gs.Register("db", func(context.Context) error {
		cleaned = true
		return nil
	})

	err := gs.Run(context.Background())

	assert.Error(t, err)
	assert.True(t, cleaned)
}
