package api_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/momentics/wsession/api"
)

func TestSendResultCompleteOnce(t *testing.T) {
	r := api.NewSendResult()
	r.Complete(nil)
	r.Complete(fmt.Errorf("late failure"))

	require.NoError(t, r.Err())
	select {
	case <-r.Done():
	default:
		t.Fatal("Done channel not closed after Complete")
	}
}

func TestSendResultErrPending(t *testing.T) {
	r := api.NewSendResult()
	require.NoError(t, r.Err())
	r.Complete(fmt.Errorf("boom"))
	require.Error(t, r.Err())
}

func TestSendResultConcurrentComplete(t *testing.T) {
	r := api.NewSendResult()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				r.Complete(nil)
			} else {
				r.Complete(fmt.Errorf("racer %d", i))
			}
		}(i)
	}
	wg.Wait()
	select {
	case <-r.Done():
	default:
		t.Fatal("handle never settled")
	}
}

func TestSendResultWaitContext(t *testing.T) {
	r := api.NewSendResult()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)

	r.Complete(nil)
	require.NoError(t, r.Wait(context.Background()))
}

func TestCompletedSendResult(t *testing.T) {
	r := api.CompletedSendResult(api.NewError(api.ErrCodeInvalidArgument, "bad payload"))
	require.Equal(t, api.ErrCodeInvalidArgument, api.CodeOf(r.Err()))
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, api.ErrCodeOK, api.CodeOf(nil))
	require.Equal(t, api.ErrCodeInternal, api.CodeOf(fmt.Errorf("plain")))
	wrapped := fmt.Errorf("wrap: %w", api.NewError(api.ErrCodeIllegalState, "nope"))
	require.True(t, api.IsIllegalState(wrapped))
}
