package utils

import (
	"errors"
	"sync"
	"time"
)

const (
	epoch          = int64(1704067200000) // 2024-01-01
	nodeBits       = uint(10)
	sequenceBits   = uint(12)
	maxNodeID      = int64(-1 ^ (-1 << nodeBits))
	maxSequence    = int64(-1 ^ (-1 << sequenceBits))
	timestampShift = sequenceBits + nodeBits
	nodeIDShift    = sequenceBits
)

// Snowflake 生成按时间递增的 int64 主键
type Snowflake struct {
	mutex    sync.Mutex
	lastTime int64
	nodeID   int64
	sequence int64
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	if nodeID < 0 || nodeID > maxNodeID {
		return nil, errors.New("node ID out of range")
	}
	return &Snowflake{nodeID: nodeID}, nil
}

func (s *Snowflake) NextID() int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now().UnixMilli()
	if now < s.lastTime {
		// 时钟回拨，等到上一次的时间点
		time.Sleep(time.Duration(s.lastTime-now) * time.Millisecond)
		now = time.Now().UnixMilli()
	}

	if now == s.lastTime {
		s.sequence = (s.sequence + 1) & maxSequence
		if s.sequence == 0 {
			for now <= s.lastTime {
				now = time.Now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}
	s.lastTime = now

	return ((now - epoch) << timestampShift) | (s.nodeID << nodeIDShift) | s.sequence
}

var (
	globalSnowflake *Snowflake
	snowflakeOnce   sync.Once
)

// InitSnowflake 设置全局节点号，需在第一次 NextID 之前调用
func InitSnowflake(nodeID int64) error {
	sf, err := NewSnowflake(nodeID)
	if err != nil {
		return err
	}
	snowflakeOnce.Do(func() { globalSnowflake = sf })
	return nil
}

// NextID 全局 ID 生成，未初始化时使用节点 1
func NextID() int64 {
	snowflakeOnce.Do(func() { globalSnowflake, _ = NewSnowflake(1) })
	return globalSnowflake.NextID()
}
