package notifier

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"VidHub.com/cmd/model"
	"VidHub.com/pkg/mq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterPushUnregister(t *testing.T) {
	h := NewHub()
	a1 := h.Register(1)
	a2 := h.Register(1)
	b := h.Register(2)

	assert.True(t, h.Online(1))
	assert.Equal(t, 2, h.OnlineUsers())

	assert.Equal(t, 2, h.Push(1, []byte("hi")))
	assert.Equal(t, []byte("hi"), <-a1.Send())
	assert.Equal(t, []byte("hi"), <-a2.Send())
	assert.Len(t, b.Send(), 0)

	h.Unregister(a1)
	h.Unregister(a2)
	assert.False(t, h.Online(1))
	assert.Equal(t, 0, h.Push(1, []byte("gone")))

	select {
	case <-a1.Done():
	default:
		t.Fatal("client should be closed after unregister")
	}
	// 重复注销不应 panic
	h.Unregister(a1)
}

func TestPushOfflineUser(t *testing.T) {
	h := NewHub()
	assert.Equal(t, 0, h.Push(42, []byte("x")))
}

func TestSlowClientIsDropped(t *testing.T) {
	h := NewHub()
	c := h.Register(7)
	for i := 0; i < sendBuffer; i++ {
		require.Equal(t, 1, h.Push(7, []byte("m")))
	}
	assert.Equal(t, 0, h.Push(7, []byte("overflow")))
	assert.False(t, h.Online(7))
	<-c.Done()
}

func TestConcurrentAccess(t *testing.T) {
	h := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(uid int64) {
			defer wg.Done()
			c := h.Register(uid % 5)
			h.Push(uid%5, []byte("x"))
			h.Unregister(c)
		}(int64(i))
	}
	wg.Wait()
	assert.Equal(t, 0, h.OnlineUsers())
}

func TestHandleNotificationEvent(t *testing.T) {
	h := NewHub()
	c := h.Register(100)
	videoID := int64(5)
	event := &mq.NotificationEvent{
		EventID:    "e1",
		Recipients: []int64{100, 200},
		Notification: &model.Notification{
			Id:      9,
			Type:    "comment",
			Message: "someone commented",
			VideoId: &videoID,
		},
		Sender: &model.UserPublic{Id: 3, Name: "alice"},
	}
	require.NoError(t, h.HandleNotificationEvent(context.Background(), event))

	var msg struct {
		Event string `json:"event"`
		Data  struct {
			Id      string `json:"id"`
			Message string `json:"message"`
			Read    bool   `json:"read"`
			Sender  struct {
				Name string `json:"name"`
			} `json:"sender"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(<-c.Send(), &msg))
	assert.Equal(t, EventNotification, msg.Event)
	assert.Equal(t, "9", msg.Data.Id)
	assert.Equal(t, "someone commented", msg.Data.Message)
	assert.False(t, msg.Data.Read)
	assert.Equal(t, "alice", msg.Data.Sender.Name)
}
