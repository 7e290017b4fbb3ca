package handlers

import (
	"context"
	"runtime"
	"time"

	"VidHub.com/cmd/api/handlers/common"
	"VidHub.com/cmd/api/svc"
	"VidHub.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

var startedAt = time.Now()

type Status struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsed    uint64  `json:"memory_used"`
	MemoryTotal   uint64  `json:"memory_total"`
	Goroutines    int     `json:"goroutines"`
	OnlineUsers   int     `json:"online_users"`
}

func Health(ctx context.Context, c *app.RequestContext) {
	uptime := time.Since(startedAt)
	st := &Status{
		Status:        "ok",
		Uptime:        uptime.Truncate(time.Second).String(),
		UptimeSeconds: int64(uptime.Seconds()),
		Goroutines:    runtime.NumGoroutine(),
	}
	if svc.Hub != nil {
		st.OnlineUsers = svc.Hub.OnlineUsers()
	}
	// 采集失败只影响对应字段
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		hlog.CtxWarnf(ctx, "read cpu usage failed: %v", err)
	} else if len(percents) > 0 {
		st.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		hlog.CtxWarnf(ctx, "read memory usage failed: %v", err)
	} else {
		st.MemoryPercent = vm.UsedPercent
		st.MemoryUsed = vm.Used
		st.MemoryTotal = vm.Total
	}
	common.SendResponse(c, errno.Success, st)
}
