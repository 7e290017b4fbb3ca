package vote

import "VidHub.com/pkg/constants"

type Action int

const (
	ActionCreate Action = iota + 1
	ActionDelete
	ActionUpdate
)

// Change 一次投票引起的记录变化与计数增量
type Change struct {
	Action       Action
	Type         string
	LikeDelta    int64
	DislikeDelta int64
}

func Valid(t string) bool {
	return t == constants.VoteLike || t == constants.VoteDislike
}

// Transition current 为空表示尚未投票；重复同一投票即撤销，相反投票则改票
func Transition(current, requested string) Change {
	var c Change
	switch current {
	case "":
		c.Action = ActionCreate
		c.Type = requested
		c.add(requested, 1)
	case requested:
		c.Action = ActionDelete
		c.add(requested, -1)
	default:
		c.Action = ActionUpdate
		c.Type = requested
		c.add(current, -1)
		c.add(requested, 1)
	}
	return c
}

func (c *Change) add(t string, delta int64) {
	if t == constants.VoteLike {
		c.LikeDelta += delta
	} else {
		c.DislikeDelta += delta
	}
}

// Apply 在内存中应用增量，计数不会小于 0
func Apply(likes, dislikes int64, c Change) (int64, int64) {
	likes += c.LikeDelta
	dislikes += c.DislikeDelta
	if likes < 0 {
		likes = 0
	}
	if dislikes < 0 {
		dislikes = 0
	}
	return likes, dislikes
}
