package chat_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diogo/wallchat/internal/api"
	"github.com/diogo/wallchat/internal/chat"
	apierrors "github.com/diogo/wallchat/internal/errors"
	"github.com/diogo/wallchat/internal/models"
)

func TestWidget_SubmitMessage(t *testing.T) {
	mock := &api.MockClient{}
	w := chat.NewWidget(mock)
	w.SetWall("<p>old</p>")
	w.SetInput("  hi there  ")

	action, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, chat.ActionMessage, action.Kind)

	posted, renamed := mock.Calls()
	require.Equal(t, []string{"hi there"}, posted)
	require.Empty(t, renamed)

	require.Empty(t, w.Input())
	require.Equal(t, "<p>old</p>"+models.SendingPlaceholder+"<div>hi there</div>", w.Wall())
}

func TestWidget_SubmitRename(t *testing.T) {
	mock := &api.MockClient{}
	w := chat.NewWidget(mock)
	w.SetInput("/rename  Ada Love lace")

	action, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.Equal(t, chat.ActionRename, action.Kind)

	posted, renamed := mock.Calls()
	require.Empty(t, posted)
	require.Equal(t, []string{"AdaLovelace"}, renamed)
	require.Empty(t, w.Input())
	require.Contains(t, w.Wall(), models.SendingPlaceholder)
}

func TestWidget_SubmitEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		mock := &api.MockClient{}
		w := chat.NewWidget(mock)
		w.SetWall("wall")
		w.SetInput(input)

		action, err := w.Submit(context.Background())
		require.NoError(t, err)
		require.Equal(t, chat.ActionNone, action.Kind)

		posted, renamed := mock.Calls()
		require.Empty(t, posted)
		require.Empty(t, renamed)
		require.Equal(t, input, w.Input(), "input must be left unchanged")
		require.Equal(t, "wall", w.Wall())
	}
}

func TestWidget_SubmitErrorStillClearsInput(t *testing.T) {
	mock := &api.MockClient{PostErr: errors.New("boom")}
	w := chat.NewWidget(mock)
	w.SetInput("hello")

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
	require.Empty(t, w.Input())
}

func TestWidget_PrepareThenDispatch(t *testing.T) {
	mock := &api.MockClient{}
	w := chat.NewWidget(mock)
	w.SetInput("queued")

	action, ok := w.Prepare()
	require.True(t, ok)
	posted, _ := mock.Calls()
	require.Empty(t, posted, "Prepare must not hit the network")

	require.NoError(t, w.Dispatch(context.Background(), action))
	posted, _ = mock.Calls()
	require.Equal(t, []string{"queued"}, posted)
}

func TestWidget_DispatchNone(t *testing.T) {
	mock := &api.MockClient{}
	w := chat.NewWidget(mock)

	require.NoError(t, w.Dispatch(context.Background(), chat.Action{Kind: chat.ActionNone}))
	posted, renamed := mock.Calls()
	require.Empty(t, posted)
	require.Empty(t, renamed)
}

func TestWidget_PollReplacesWall(t *testing.T) {
	mock := &api.MockClient{WallVal: "<p>server</p>"}
	w := chat.NewWidget(mock, chat.WithInterval(5*time.Millisecond))

	w.SetInput("pending")
	_, ok := w.Prepare()
	require.True(t, ok)
	require.Contains(t, w.Wall(), "pending")

	updates := make(chan api.WallUpdate, 16)
	require.NoError(t, w.Start(context.Background(), func(u api.WallUpdate) {
		select {
		case updates <- u:
		default:
		}
	}))
	defer w.Stop()

	select {
	case u := <-updates:
		require.NoError(t, u.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("no poll update")
	}
	require.Equal(t, "<p>server</p>", w.Wall(), "poll replaces the wall wholesale")
}

func TestWidget_PollErrorKeepsWall(t *testing.T) {
	mock := &api.MockClient{WallErr: errors.New("down")}
	w := chat.NewWidget(mock, chat.WithInterval(time.Hour))
	w.SetWall("kept")

	got := make(chan api.WallUpdate, 1)
	require.NoError(t, w.Start(context.Background(), func(u api.WallUpdate) {
		select {
		case got <- u:
		default:
		}
	}))
	defer w.Stop()

	select {
	case u := <-got:
		require.Error(t, u.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("no poll update")
	}
	require.Equal(t, "kept", w.Wall())
}

func TestWidget_Lifecycle(t *testing.T) {
	w := chat.NewWidget(&api.MockClient{}, chat.WithInterval(time.Hour))

	require.NoError(t, w.Stop())
	require.False(t, w.Running())

	require.NoError(t, w.Start(context.Background(), nil))
	require.True(t, w.Running())
	require.ErrorIs(t, w.Start(context.Background(), nil), apierrors.ErrWidgetStarted)

	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	require.False(t, w.Running())

	require.NoError(t, w.Start(context.Background(), nil))
	require.NoError(t, w.Stop())
}

func TestWidget_ConcurrentUse(t *testing.T) {
	mock := &api.MockClient{WallVal: "w"}
	w := chat.NewWidget(mock, chat.WithInterval(time.Millisecond))
	require.NoError(t, w.Start(context.Background(), nil))
	defer w.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				w.SetInput("msg")
				_, _ = w.Submit(context.Background())
				_ = w.Wall()
			}
		}()
	}
	wg.Wait()

	posted, _ := mock.Calls()
	require.NotEmpty(t, posted)
	for _, p := range posted {
		require.Equal(t, "msg", p)
	}
}
