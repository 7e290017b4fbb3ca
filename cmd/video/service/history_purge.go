package service

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld 其他实例正在执行
var ErrLockHeld = errors.New("purge lock held by another instance")

type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// RedsyncLocker 基于 redis 的互斥锁，多实例部署时只有一个实例执行清理
type RedsyncLocker struct {
	mutex *redsync.Mutex
}

func NewRedsyncLocker(client *redis.Client, name string, expiry time.Duration) *RedsyncLocker {
	rs := redsync.New(goredis.NewPool(client))
	return &RedsyncLocker{mutex: rs.NewMutex(name, redsync.WithExpiry(expiry), redsync.WithTries(1))}
}

func (l *RedsyncLocker) Lock(ctx context.Context) (func(), error) {
	if err := l.mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		if errors.Is(err, redsync.ErrFailed) || errors.As(err, &taken) {
			return nil, ErrLockHeld
		}
		return nil, err
	}
	return func() {
		if _, err := l.mutex.UnlockContext(context.Background()); err != nil {
			hlog.Warnf("release purge lock failed: %v", err)
		}
	}, nil
}

type HistoryPurgeJob struct {
	store     HistoryPurger
	locker    Locker
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

// NewHistoryPurgeJob locker 为 nil 时不加锁，单实例部署使用
func NewHistoryPurgeJob(store HistoryPurger, locker Locker, retention, interval time.Duration) *HistoryPurgeJob {
	return &HistoryPurgeJob{
		store:     store,
		locker:    locker,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}
}

// RunOnce 删除 retention 之前的观看记录，锁被占用时跳过
func (j *HistoryPurgeJob) RunOnce(ctx context.Context) (int64, error) {
	if j.locker != nil {
		unlock, err := j.locker.Lock(ctx)
		if err != nil {
			if errors.Is(err, ErrLockHeld) {
				hlog.CtxDebugf(ctx, "history purge skipped: %v", err)
				return 0, nil
			}
			return 0, err
		}
		defer unlock()
	}
	cutoff := j.now().Add(-j.retention)
	n, err := j.store.PurgeHistory(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		hlog.CtxInfof(ctx, "purged %d watch history rows older than %s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}

// Start 阻塞运行直到 ctx 结束
func (j *HistoryPurgeJob) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		if _, err := j.RunOnce(ctx); err != nil {
			hlog.CtxErrorf(ctx, "history purge failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
