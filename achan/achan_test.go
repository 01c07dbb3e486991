// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package achan

import (
	"context"
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/async/errkit"
)

func TestDisconnectionIsClassifiable(t *testing.T) {
	s, r := New[int](2)
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	_, err := r.Receive(context.Background())
	if !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", err)
	}
	if !errors.Is(err, errkit.Disconnected) {
		t.Fatalf("expected classification errkit.Disconnected, got %v", err)
	}
}

func TestTrySendFullAndTryReceiveEmpty(t *testing.T) {
	s, r := New[int](2, WithoutSpin())

	if err := s.TrySend(1); err != nil {
		t.Fatalf("TrySend(1): %v", err)
	}
	if err := s.TrySend(2); err != nil {
		t.Fatalf("TrySend(2): %v", err)
	}
	if err := s.TrySend(3); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if !errors.Is(ErrFull, errkit.WouldBlock) {
		t.Fatal("ErrFull must classify as errkit.WouldBlock")
	}

	s2, r2 := New[int](2, WithoutSpin())
	_ = s2
	if _, err := r2.TryReceive(); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if !errors.Is(ErrEmpty, errkit.WouldBlock) {
		t.Fatal("ErrEmpty must classify as errkit.WouldBlock")
	}

	if v, err := r.TryReceive(); err != nil || v != 1 {
		t.Fatalf("expected (1, nil), got (%d, %v)", v, err)
	}
}

func TestSendTimesOutOnFullChannel(t *testing.T) {
	s, _ := New[int](1, WithoutSpin())
	if err := s.TrySend(1); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Send(ctx, 2); !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if !errors.Is(ErrTimeout, errkit.TimedOut) {
		t.Fatal("ErrTimeout must classify as errkit.TimedOut")
	}
}

func TestReceiveBlocksThenUnblocksOnSend(t *testing.T) {
	s, r := New[string](4, WithoutSpin())
	done := make(chan struct{})
	var got string
	var gotErr error
	go func() {
		got, gotErr = r.Receive(context.Background())
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	if err := s.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Receive never woke up after Send")
	}
	if gotErr != nil || got != "hello" {
		t.Fatalf("expected (\"hello\", nil), got (%q, %v)", got, gotErr)
	}
}

func TestReceiveOnEmptyChannelBlocksUntilClose(t *testing.T) {
	s, r := New[int](2, WithoutSpin())
	done := make(chan struct{})
	var recvErr error
	go func() {
		_, recvErr = r.Receive(context.Background())
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("Receive returned before the channel was closed")
	default:
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Receive never woke up after Close")
	}
	if !errors.Is(recvErr, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected, got %v", recvErr)
	}
}

func TestPendingValuesDrainAfterClose(t *testing.T) {
	s, r := New[int](4, WithoutSpin())
	if err := s.TrySend(10); err != nil {
		t.Fatalf("TrySend: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	v, err := r.TryReceive()
	if err != nil || v != 10 {
		t.Fatalf("expected to drain the pending value, got (%d, %v)", v, err)
	}
	if _, err := r.TryReceive(); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected once drained, got %v", err)
	}
}

func TestCloneKeepsChannelOpenUntilAllSendersClose(t *testing.T) {
	s1, r := New[int](2, WithoutSpin())
	s2 := s1.Clone()

	if err := s1.Close(); err != nil {
		t.Fatalf("Close s1: %v", err)
	}
	if err := s2.TrySend(1); err != nil {
		t.Fatalf("expected channel to remain open after only one of two senders closed, got %v", err)
	}
	if err := s2.Close(); err != nil {
		t.Fatalf("Close s2: %v", err)
	}
	if err := s2.TrySend(2); !errors.Is(err, ErrDisconnected) {
		t.Fatalf("expected ErrDisconnected after last sender closed, got %v", err)
	}
	_ = r
}
