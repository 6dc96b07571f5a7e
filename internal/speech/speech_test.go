package speech

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recognize")
	require.NoError(t, os.WriteFile(path, []byte("#!/usr/bin/env bash\n"+body+"\n"), 0o755))
	return path
}

func TestCommandRecognizerNormalizesOutput(t *testing.T) {
	r := NewCommandRecognizer([]string{writeScript(t, `echo "  Сделай   СКРИНШОТ "`)})
	text, err := r.Listen(context.Background())
	require.NoError(t, err)
	require.Equal(t, "сделай скриншот", text)
}

func TestCommandRecognizerEmptyOutputIsNoSpeech(t *testing.T) {
	r := NewCommandRecognizer([]string{writeScript(t, `echo "   "`)})
	_, err := r.Listen(context.Background())
	require.ErrorIs(t, err, ErrNoSpeech)
}

func TestCommandRecognizerFailureIsUnavailable(t *testing.T) {
	r := NewCommandRecognizer([]string{writeScript(t, `echo "mic busy" >&2; exit 3`)})
	_, err := r.Listen(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	require.Contains(t, err.Error(), "mic busy")

	_, err = NewCommandRecognizer(nil).Listen(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCommandRecognizerHonorsCancel(t *testing.T) {
	r := NewCommandRecognizer([]string{writeScript(t, `exec sleep 5`)})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Listen(ctx)
	require.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestScriptedRecognizer(t *testing.T) {
	r := NewScripted("Привет", " ")
	text, err := r.Listen(context.Background())
	require.NoError(t, err)
	require.Equal(t, "привет", text)

	_, err = r.Listen(context.Background())
	require.ErrorIs(t, err, ErrNoSpeech)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Listen(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func startHealthServer(t *testing.T, status healthpb.HealthCheckResponse_ServingStatus) grpc.DialOption {
	t.Helper()

	lis := bufconn.Listen(1 << 16)
	srv := grpc.NewServer()
	hs := health.NewServer()
	hs.SetServingStatus("", status)
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})
}

func TestProbeServing(t *testing.T) {
	dialer := startHealthServer(t, healthpb.HealthCheckResponse_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, Probe(ctx, "passthrough:///bufnet", dialer))
	require.NoError(t, WaitReady(ctx, "passthrough:///bufnet", 10*time.Millisecond, dialer))
}

func TestProbeNotServing(t *testing.T) {
	dialer := startHealthServer(t, healthpb.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	err := Probe(ctx, "passthrough:///bufnet", dialer)
	require.Error(t, err)
	require.Contains(t, err.Error(), "NOT_SERVING")
}

func TestWaitReadyGivesUpWithContext(t *testing.T) {
	dialer := startHealthServer(t, healthpb.HealthCheckResponse_NOT_SERVING)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	err := WaitReady(ctx, "passthrough:///bufnet", 20*time.Millisecond, dialer)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestProbeEmptyTarget(t *testing.T) {
	require.Error(t, Probe(context.Background(), " "))
}
