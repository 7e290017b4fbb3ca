package handlers

import (
	"context"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/cmd/video/service"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
)

func (p *PlaylistParam) request() *service.PlaylistRequest {
	return &service.PlaylistRequest{Title: p.Title, Description: p.Description, Visibility: p.Visibility}
}

func CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var req PlaylistParam
	if err := common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Playlist.Create(ctx, common.CurrentUser(c), req.request())
	})
}

func GetPlaylist(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Playlist.Get(ctx, common.CurrentUser(c), id)
	})
}

func UserPlaylists(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Playlist.ListByUser(ctx, common.CurrentUser(c), id)
	})
}

func UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	var req PlaylistParam
	if err = common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.Handle(c, func() (interface{}, error) {
		return svc.Playlist.Update(ctx, common.CurrentUser(c), id, req.request())
	})
}

func DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Playlist.Delete(ctx, common.CurrentUser(c), id); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

func AddPlaylistVideo(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	var req PlaylistVideoParam
	if err = common.Bind(c, &req); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if req.VideoId <= 0 {
		common.SendResponse(c, errno.ParamErr.WithMessage("video_id is required"), nil)
		return
	}
	if err = svc.Playlist.AddVideo(ctx, common.CurrentUser(c), id, req.VideoId); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}

func RemovePlaylistVideo(ctx context.Context, c *app.RequestContext) {
	id, err := common.PathID(c, "id")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	videoId, err := common.PathID(c, "videoId")
	if err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	if err = svc.Playlist.RemoveVideo(ctx, common.CurrentUser(c), id, videoId); err != nil {
		common.SendResponse(c, err, nil)
		return
	}
	common.SendResponse(c, errno.Success, nil)
}
