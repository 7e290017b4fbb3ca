package vote

import (
	"testing"

	"VidHub.com/pkg/constants"
	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		requested string
		want      Change
	}{
		{"like from none", "", constants.VoteLike, Change{Action: ActionCreate, Type: constants.VoteLike, LikeDelta: 1}},
		{"like again", constants.VoteLike, constants.VoteLike, Change{Action: ActionDelete, LikeDelta: -1}},
		{"dislike on liked", constants.VoteLike, constants.VoteDislike, Change{Action: ActionUpdate, Type: constants.VoteDislike, LikeDelta: -1, DislikeDelta: 1}},
		{"dislike from none", "", constants.VoteDislike, Change{Action: ActionCreate, Type: constants.VoteDislike, DislikeDelta: 1}},
		{"dislike again", constants.VoteDislike, constants.VoteDislike, Change{Action: ActionDelete, DislikeDelta: -1}},
		{"like on disliked", constants.VoteDislike, constants.VoteLike, Change{Action: ActionUpdate, Type: constants.VoteLike, LikeDelta: 1, DislikeDelta: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Transition(tt.current, tt.requested))
		})
	}
}

func TestToggleRoundTrip(t *testing.T) {
	const l, d = 5, 3

	first := Transition("", constants.VoteLike)
	likes, dislikes := Apply(l, d, first)
	assert.Equal(t, int64(l+1), likes)
	assert.Equal(t, int64(d), dislikes)

	second := Transition(first.Type, constants.VoteLike)
	likes, dislikes = Apply(likes, dislikes, second)
	assert.Equal(t, int64(l), likes)
	assert.Equal(t, int64(d), dislikes)
	assert.Equal(t, "", second.Type)
}

func TestApplyNeverNegative(t *testing.T) {
	likes, dislikes := Apply(0, 0, Transition(constants.VoteLike, constants.VoteDislike))
	assert.Equal(t, int64(0), likes)
	assert.Equal(t, int64(1), dislikes)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(constants.VoteLike))
	assert.True(t, Valid(constants.VoteDislike))
	assert.False(t, Valid("love"))
	assert.False(t, Valid(""))
}
