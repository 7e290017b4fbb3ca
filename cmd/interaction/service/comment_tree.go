package service

import (
	"sort"

	"VidHub.com/cmd/model"
)

// BuildCommentTree 输入为同一视频的全部评论（按创建时间升序）。
// 顶层评论按时间倒序，回复按时间正序；找不到父评论的回复不会出现在结果中
func BuildCommentTree(comments []*model.Comment, requester int64) []*model.CommentNode {
	nodes := make(map[int64]*model.CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.Id] = &model.CommentNode{
			Comment: c,
			IsOwner: requester != 0 && c.UserId == requester,
			Replies: []*model.CommentNode{},
		}
	}

	roots := make([]*model.CommentNode, 0)
	for _, c := range comments {
		node := nodes[c.Id]
		if c.IsTopLevel() {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentId]; ok && parent != node {
			parent.Replies = append(parent.Replies, node)
		}
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].CreatedAt.After(roots[j].CreatedAt)
	})
	return roots
}
