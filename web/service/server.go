package service

import (
	"os"
	"runtime"
	"time"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/logger"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Status is the host summary shown on the administrator dashboard.
type Status struct {
	Hostname string    `json:"hostname"`
	Cpu      float64   `json:"cpu"`
	CpuCores int       `json:"cpuCores"`
	Uptime   uint64    `json:"uptime"`
	Loads    []float64 `json:"loads"`
	Mem      struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"mem"`
	Disk struct {
		Current uint64 `json:"current"`
		Total   uint64 `json:"total"`
	} `json:"disk"`
	AppStats struct {
		Version string `json:"version"`
		Threads int    `json:"threads"`
		Mem     uint64 `json:"mem"`
		Uptime  uint64 `json:"uptime"`
	} `json:"appStats"`
}

var startTime = time.Now()

type ServerService struct{}

// GetStatus collects the host status. Probes that fail are logged and left zero.
func (s *ServerService) GetStatus() *Status {
	status := &Status{}

	var err error
	status.Hostname, err = os.Hostname()
	if err != nil {
		logger.Warning("get hostname failed:", err)
	}

	percents, err := cpu.Percent(0, false)
	if err != nil {
		logger.Warning("get cpu percent failed:", err)
	} else if len(percents) > 0 {
		status.Cpu = percents[0]
	}

	status.CpuCores, err = cpu.Counts(false)
	if err != nil {
		logger.Warning("get cpu cores count failed:", err)
	}

	upTime, err := host.Uptime()
	if err != nil {
		logger.Warning("get uptime failed:", err)
	} else {
		status.Uptime = upTime
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Warning("get virtual memory failed:", err)
	} else {
		status.Mem.Current = memInfo.Used
		status.Mem.Total = memInfo.Total
	}

	diskInfo, err := disk.Usage(config.GetDBFolderPath())
	if err != nil {
		logger.Warning("get disk usage failed:", err)
	} else {
		status.Disk.Current = diskInfo.Used
		status.Disk.Total = diskInfo.Total
	}

	if runtime.GOOS != "windows" {
		avgState, err := load.Avg()
		if err != nil {
			logger.Warning("get load avg failed:", err)
		} else {
			status.Loads = []float64{avgState.Load1, avgState.Load5, avgState.Load15}
		}
	}

	var rtm runtime.MemStats
	runtime.ReadMemStats(&rtm)
	status.AppStats.Version = config.GetVersion()
	status.AppStats.Threads = runtime.NumGoroutine()
	status.AppStats.Mem = rtm.Sys
	status.AppStats.Uptime = uint64(time.Since(startTime).Seconds())

	return status
}

// GetLogs returns the newest buffered log lines at or above level.
func (s *ServerService) GetLogs(count int, level string) []string {
	if count < 1 || count > 10000 {
		count = 100
	}
	if level == "" {
		level = "info"
	}
	return logger.GetLogs(count, level)
}
